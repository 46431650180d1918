package empty

import (
	"fmt"
	"os"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/ports"
)

func init() {
	factory.RegisterGenerator(ports.FileTypeEmpty, New())
}

// EmptyGenerator creates zero-byte files, truncating any existing file of
// the same name.
type EmptyGenerator struct{}

func New() ports.FileGenerator {
	return &EmptyGenerator{}
}

func (g *EmptyGenerator) Generate(path string, size int64) error {
	if size != 0 {
		return fmt.Errorf("empty files have no content, got size %d", size)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return f.Close()
}
