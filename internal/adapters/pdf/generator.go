package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signintech/gopdf"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/ports"
)

func init() {
	factory.RegisterGenerator(ports.FileTypePDF, New())
}

func New() ports.FileGenerator {
	return &PDFGenerator{}
}

// PDFGenerator renders a one-page document with gopdf and pads it with
// comment lines after the end-of-file marker, which readers ignore.
type PDFGenerator struct{}

func (g *PDFGenerator) Generate(outPath string, sizeBytes int64) error {
	doc, err := render()
	if err != nil {
		return err
	}
	if int64(len(doc)) > sizeBytes {
		return fmt.Errorf("requested size %d bytes is too small for a minimal PDF structure (minimum %d bytes)", sizeBytes, len(doc))
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", outPath, err)
	}
	defer file.Close()

	if _, err := file.Write(doc); err != nil {
		return fmt.Errorf("failed to write PDF body: %w", err)
	}
	if err := writeCommentPadding(file, sizeBytes-int64(len(doc))); err != nil {
		return fmt.Errorf("failed to pad PDF: %w", err)
	}
	return file.Close()
}

// render draws a frame on an A4 page. No fonts are embedded, so the output
// needs nothing from disk.
func render() ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()
	pdf.SetLineWidth(1)
	w, h := gopdf.PageSizeA4.W, gopdf.PageSizeA4.H
	pdf.Line(20, 20, w-20, 20)
	pdf.Line(w-20, 20, w-20, h-20)
	pdf.Line(w-20, h-20, 20, h-20)
	pdf.Line(20, h-20, 20, 20)

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

const maxCommentLine = 256

// writeCommentPadding appends exactly n bytes as "%XXX...\n" lines. A lone
// leftover byte becomes a bare newline.
func writeCommentPadding(w io.Writer, n int64) error {
	line := []byte("%" + strings.Repeat("X", maxCommentLine-2) + "\n")
	for n > 0 {
		if n == 1 {
			_, err := w.Write([]byte("\n"))
			return err
		}
		l := int64(len(line))
		if n < l {
			l = n
		}
		chunk := append(line[:l-1:l-1], '\n')
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		n -= l
	}
	return nil
}
