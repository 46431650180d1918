package dxf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yofu/dxf"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/ports"
)

func init() {
	factory.RegisterGenerator(ports.FileTypeDXF, New())
}

type DxfGenerator struct{}

func New() ports.FileGenerator {
	return &DxfGenerator{}
}

// Generate saves an ASCII drawing holding a single line, then appends
// 999 comment groups until the file is exactly size bytes.
func (g *DxfGenerator) Generate(path string, size int64) error {
	dwg := dxf.NewDrawing()
	if _, err := dwg.Line(0.0, 0.0, 0.0, 100.0, 100.0, 0.0); err != nil {
		return err
	}
	if err := dwg.SaveAs(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	baseSize := info.Size()
	if baseSize > size {
		os.Remove(path)
		return fmt.Errorf("cannot generate drawing of %d bytes, minimum DXF is %d bytes", size, baseSize)
	}
	if baseSize == size {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := writeComments(w, size-baseSize); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

const (
	// "999\n" + text + "\n"
	commentOverhead = 5
	maxCommentText  = 255
	maxComment      = commentOverhead + maxCommentText
)

// writeComments writes exactly n bytes of comment groups. n is split into
// groups between commentOverhead and maxComment bytes long; gaps shorter
// than one empty comment are filled with blank lines.
func writeComments(w io.Writer, n int64) error {
	if n < commentOverhead {
		_, err := io.WriteString(w, strings.Repeat("\n", int(n)))
		return err
	}
	groups := (n + maxComment - 1) / maxComment
	for i := int64(0); i < groups; i++ {
		// With more than one group each share exceeds maxComment/2.
		l := n / groups
		if i < n%groups {
			l++
		}
		text := strings.Repeat("X", int(l-commentOverhead))
		if _, err := io.WriteString(w, "999\n"+text+"\n"); err != nil {
			return err
		}
	}
	return nil
}
