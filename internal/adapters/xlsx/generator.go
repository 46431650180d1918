package xlsx

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/names"
	"github.com/hailam/randfiles/internal/ports"
	"github.com/hailam/randfiles/internal/utils"
)

func init() {
	factory.RegisterGenerator(ports.FileTypeXLSX, New())
}

const (
	sheet     = "Sheet1"
	cellWidth = 20
	// excelize.TotalRows less the header row.
	maxRows    = excelize.TotalRows - 1
	sampleRows = 64
)

type XlsxGenerator struct{}

func New() ports.FileGenerator {
	return &XlsxGenerator{}
}

// Generate writes a workbook with a column of random cells, as many as fit,
// then pads the archive with a stored entry to hit size exactly.
func (g *XlsxGenerator) Generate(path string, size int64) error {
	book, err := fitWorkbook(size)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := utils.PadZip(f, book, size); err != nil {
		return fmt.Errorf("pad xlsx: %w", err)
	}
	return f.Close()
}

type candidate struct {
	book   []byte
	padded int64
}

func build(rows int) (candidate, error) {
	book, err := buildWorkbook(rows)
	if err != nil {
		return candidate{}, err
	}
	padded, err := utils.PaddedZipSize(book)
	if err != nil {
		return candidate{}, err
	}
	return candidate{book: book, padded: padded}, nil
}

// fitWorkbook searches for the largest row count whose padded size fits.
// Cell contents are random, so sizes are only roughly monotonic in rows;
// the best fitting build seen is kept.
func fitWorkbook(size int64) ([]byte, error) {
	best, err := build(0)
	if err != nil {
		return nil, err
	}
	if best.padded > size {
		return nil, fmt.Errorf("target size %d too small for xlsx, minimum is %d", size, best.padded)
	}

	sample, err := build(sampleRows)
	if err != nil {
		return nil, err
	}
	perRow := (sample.padded - best.padded) / sampleRows
	if perRow < 1 {
		perRow = 1
	}
	hi := int64(maxRows)
	if est := 2*(size-best.padded)/perRow + 1; est < hi {
		hi = est
	}

	lo := int64(0)
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		c, err := build(int(mid))
		if err != nil {
			return nil, err
		}
		if c.padded <= size {
			best, lo = c, mid
		} else {
			hi = mid - 1
		}
	}
	return best.book, nil
}

func buildWorkbook(rows int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue(sheet, "A1", "X"); err != nil {
		return nil, err
	}
	for r := 2; r <= rows+1; r++ {
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, names.String(nil, cellWidth)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx with %d rows: %w", rows, err)
	}
	return buf.Bytes(), nil
}
