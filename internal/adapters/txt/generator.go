package txt

import (
	"bufio"
	"math/rand/v2"
	"os"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/ports"
)

func init() {
	gen := New()
	factory.RegisterGenerator(ports.FileTypeTXT, gen)
	factory.RegisterGenerator(ports.FileTypeLog, gen)
	factory.RegisterGenerator(ports.FileTypeMD, gen)
}

// TxtGenerator fills files with random printable ASCII (0x20-0x7E).
type TxtGenerator struct{}

func New() ports.FileGenerator {
	return &TxtGenerator{}
}

func (g *TxtGenerator) Generate(path string, size int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const printableStart, printableEnd = 0x20, 0x7E
	w := bufio.NewWriterSize(f, 8192)
	for written := int64(0); written < size; written++ {
		if err := w.WriteByte(byte(printableStart + rand.IntN(printableEnd-printableStart+1))); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
