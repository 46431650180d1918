package dxf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yofu/dxf"

	"github.com/hailam/randfiles/internal/ports"
)

func minDxfSize(t *testing.T) int64 {
	t.Helper()
	tempPath := filepath.Join(t.TempDir(), "min.dxf")
	dwg := dxf.NewDrawing()
	if _, err := dwg.Line(0.0, 0.0, 0.0, 100.0, 100.0, 0.0); err != nil {
		t.Fatal(err)
	}
	if err := dwg.SaveAs(tempPath); err != nil {
		t.Fatalf("Failed to save minimal DXF for size calculation: %v", err)
	}
	info, err := os.Stat(tempPath)
	if err != nil {
		t.Fatal(err)
	}
	return info.Size()
}

func TestDxfGenerator_Generate(t *testing.T) {
	var generator ports.FileGenerator = New()
	tempDir := t.TempDir()

	minSize := minDxfSize(t)
	if minSize <= 0 {
		t.Fatalf("minimum DXF size %d is invalid", minSize)
	}

	testCases := []struct {
		name       string
		targetSize int64
		expectErr  bool
	}{
		{"ZeroSize", 0, true},
		{"TooSmallSize", minSize - 1, true},
		{"ExactMinSize", minSize, false},
		{"PlusOne", minSize + 1, false},
		{"PlusFour", minSize + 4, false},
		{"PlusFive", minSize + 5, false},
		{"OneFullComment", minSize + maxComment, false},
		{"JustOverOneComment", minSize + maxComment + 1, false},
		{"LargerSize", minSize + 50000, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outPath := filepath.Join(tempDir, fmt.Sprintf("test_%s.dxf", tc.name))
			err := generator.Generate(outPath, tc.targetSize)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("Generate(%q, %d) expected an error", outPath, tc.targetSize)
				}
				if !strings.Contains(err.Error(), "minimum DXF is") {
					t.Errorf("error = %q, want it to mention the minimum", err)
				}
				if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
					t.Errorf("failed generation left %q behind", outPath)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate(%q, %d) returned unexpected error: %v", outPath, tc.targetSize, err)
			}
			content, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatal(err)
			}
			if int64(len(content)) != tc.targetSize {
				t.Errorf("size = %d, want %d", len(content), tc.targetSize)
			}
			if !bytes.Contains(content, []byte("SECTION")) || !bytes.Contains(content, []byte("EOF")) {
				t.Errorf("%q does not look like a DXF drawing", outPath)
			}
		})
	}
}

func TestWriteComments(t *testing.T) {
	for _, n := range []int64{0, 1, 4, 5, 6, 259, 260, 261, 264, 265, 520, 521, 10007} {
		t.Run(fmt.Sprintf("N_%d", n), func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeComments(&buf, n); err != nil {
				t.Fatal(err)
			}
			if int64(buf.Len()) != n {
				t.Fatalf("wrote %d bytes, want %d", buf.Len(), n)
			}
			if n < commentOverhead {
				return
			}
			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if len(lines)%2 != 0 {
				t.Fatalf("comment groups must come in code/value pairs, got %d lines", len(lines))
			}
			for i := 0; i < len(lines); i += 2 {
				if lines[i] != "999" {
					t.Errorf("group %d code = %q, want 999", i/2, lines[i])
				}
				if len(lines[i+1]) > maxCommentText {
					t.Errorf("group %d text is %d chars, limit %d", i/2, len(lines[i+1]), maxCommentText)
				}
			}
		})
	}
}
