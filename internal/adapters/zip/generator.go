package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/ports"
	"github.com/hailam/randfiles/internal/utils"
)

func init() {
	factory.RegisterGenerator(ports.FileTypeZIP, New())
}

// EntryName is the single stored entry of every generated archive.
const EntryName = "data.bin"

// ZipGenerator writes an archive holding one uncompressed entry of random
// bytes, sized so the whole archive is exactly the requested length.
type ZipGenerator struct{}

func New() ports.FileGenerator {
	return &ZipGenerator{}
}

func (g *ZipGenerator) Generate(path string, size int64) error {
	overhead := Overhead()
	if size < overhead {
		return fmt.Errorf("requested size %d too small, minimum is %d", size, overhead)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.CreateHeader(entryHeader())
	if err != nil {
		return err
	}
	if err := utils.WriteRandomBytes(w, size-overhead); err != nil {
		return err
	}
	// Close writes the data descriptor and central directory.
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

// Overhead is the size of an archive whose entry holds no data.
func Overhead() int64 {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	zw.CreateHeader(entryHeader())
	zw.Close()
	return int64(buf.Len())
}

// entryHeader leaves Modified zero so no timestamp extra field is written
// and the overhead stays constant.
func entryHeader() *zip.FileHeader {
	return &zip.FileHeader{Name: EntryName, Method: zip.Store}
}
