package utils

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

var sizeSuffixes = map[string]int64{
	"": 1, "B": 1,
	"K": 1 << 10, "KB": 1 << 10,
	"M": 1 << 20, "MB": 1 << 20,
	"G": 1 << 30, "GB": 1 << 30,
}

// ParseSize parses strings like "500", "10K", "4MB", "1G" into a number of bytes.
func ParseSize(sizeStr string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(sizeStr))
	if s == "" {
		return 0, errors.New("size string is empty")
	}
	numPart, suffix := s, ""
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		numPart, suffix = s[:i], s[i:]
	}
	if numPart == "" {
		return 0, fmt.Errorf("invalid size number in '%s'", sizeStr)
	}
	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %w", err)
	}
	mult, ok := sizeSuffixes[suffix]
	if !ok {
		return 0, fmt.Errorf("unknown size suffix '%s'", suffix)
	}
	if n > math.MaxInt64/mult {
		return 0, fmt.Errorf("size '%s' overflows", sizeStr)
	}
	return n * mult, nil
}

// ParseCount parses the number of files to create. Negative counts are
// accepted and mean "create nothing".
func ParseCount(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ErrDelayRange reports a delay that parsed as a number but is too long to
// wait for.
var ErrDelayRange = errors.New("delay out of range")

// ParseDelay parses a pause given in (possibly fractional) seconds.
// NaN, zero and negative values yield 0, meaning no pause. Values past the
// longest time.Duration fail the range check with ErrDelayRange.
func ParseDelay(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(secs) || secs <= 0 {
		return 0, nil
	}
	ns := secs * float64(time.Second)
	if math.IsInf(secs, 1) || ns >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v seconds exceeds the maximum wait of %v", ErrDelayRange, secs, time.Duration(math.MaxInt64))
	}
	return time.Duration(ns), nil
}

// WriteRandomBytes writes n pseudo-random bytes to w.
func WriteRandomBytes(w io.Writer, n int64) error {
	buf := make([]byte, 64*1024)
	for n > 0 {
		chunk := buf
		if n < int64(len(chunk)) {
			chunk = chunk[:n]
		}
		fillRandom(chunk)
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		n -= int64(len(chunk))
	}
	return nil
}

func fillRandom(b []byte) {
	for i := 0; i < len(b); i += 8 {
		v := rand.Uint64()
		for j := i; j < i+8 && j < len(b); j++ {
			b[j] = byte(v)
			v >>= 8
		}
	}
}

// PadEntryName is the stored entry PadZip appends.
const PadEntryName = "pad.bin"

// PadZip copies the entries of archive to w and appends an uncompressed
// PadEntryName entry sized so the result is exactly target bytes.
func PadZip(w io.Writer, archive []byte, target int64) error {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	// An empty pad entry gives the fixed part; the stored payload adds to it
	// byte for byte.
	var base bytes.Buffer
	if err := rewriteZip(&base, zr, 0); err != nil {
		return err
	}
	needed := target - int64(base.Len())
	if needed < 0 {
		return fmt.Errorf("archive needs %d bytes, target is %d", base.Len(), target)
	}
	if needed == 0 {
		_, err := base.WriteTo(w)
		return err
	}
	return rewriteZip(w, zr, needed)
}

// PaddedZipSize reports the smallest size PadZip can produce for archive.
func PaddedZipSize(archive []byte) (int64, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return 0, fmt.Errorf("read archive: %w", err)
	}
	cw := &countingWriter{}
	if err := rewriteZip(cw, zr, 0); err != nil {
		return 0, err
	}
	return cw.n, nil
}

func rewriteZip(w io.Writer, zr *zip.Reader, pad int64) error {
	zw := zip.NewWriter(w)
	for _, f := range zr.File {
		if err := zw.Copy(f); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	pw, err := zw.CreateHeader(&zip.FileHeader{Name: PadEntryName, Method: zip.Store})
	if err != nil {
		return err
	}
	if err := WriteZeros(pw, pad); err != nil {
		return err
	}
	return zw.Close()
}

// WriteZeros writes n zero bytes to w.
func WriteZeros(w io.Writer, n int64) error {
	zero := make([]byte, 32*1024)
	for n > 0 {
		chunk := zero
		if n < int64(len(chunk)) {
			chunk = chunk[:n]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		n -= int64(len(chunk))
	}
	return nil
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}
