package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/randfiles/internal/ports"
)

// FileService creates batches of randomly named files: it resolves the
// content generator once, then names, creates and reports each file in turn,
// pausing between them when asked to.
type FileService struct {
	factory ports.GeneratorFactory
	parser  ports.SizeParser
	names   ports.NameGenerator
	sleeper ports.Sleeper
	log     *zap.Logger
}

// NewFileService wires a FileService. A nil logger discards log output.
func NewFileService(factory ports.GeneratorFactory, parser ports.SizeParser, names ports.NameGenerator, sleeper ports.Sleeper, log *zap.Logger) *FileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileService{factory: factory, parser: parser, names: names, sleeper: sleeper, log: log}
}

// Request describes one batch.
type Request struct {
	// Dir receives the files; empty means the working directory.
	Dir string
	// Count is the number of files; zero or less creates none.
	Count int
	// Delay is waited after each file when positive.
	Delay time.Duration
	// Format selects the content; empty means zero-byte files.
	Format ports.FileType
	// Size is a human size spec ("0", "10KB"); empty means 0.
	Size string
}

// CreateFiles runs the batch and reports "Created file: <name>" on out for
// every file. Name collisions silently overwrite. On failure it returns how
// many files were created before the error; earlier files are left in place.
func (s *FileService) CreateFiles(ctx context.Context, req Request, out io.Writer) (int, error) {
	format := req.Format
	if format == "" {
		format = ports.FileTypeEmpty
	}
	size := int64(0)
	if req.Size != "" {
		var err error
		if size, err = s.parser.Parse(req.Size); err != nil {
			return 0, fmt.Errorf("invalid size '%s': %w", req.Size, err)
		}
	}
	generator, err := s.factory.For(format)
	if err != nil {
		return 0, fmt.Errorf("no generator for type '%s': %w", format, err)
	}

	ext := format.Ext()
	created := 0
	for i := 0; i < req.Count; i++ {
		name := s.names.Next()
		if ext != "" {
			name += "." + ext
		}
		path := filepath.Join(req.Dir, name)
		if err := generator.Generate(path, size); err != nil {
			return created, fmt.Errorf("create %s: %w", path, err)
		}
		created++
		s.log.Debug("created file", zap.Int("index", i), zap.String("path", path), zap.Int64("size", size))

		if _, err := fmt.Fprintf(out, "Created file: %s\n", name); err != nil {
			return created, fmt.Errorf("report %s: %w", name, err)
		}
		if req.Delay > 0 {
			if err := s.sleeper.Sleep(ctx, req.Delay); err != nil {
				return created, err
			}
		}
	}
	return created, nil
}

// ParseFileType maps a --format value to a FileType. Matching ignores case
// and a leading dot.
func ParseFileType(format string) (ports.FileType, error) {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "", "empty", "none":
		return ports.FileTypeEmpty, nil
	case "txt", "text":
		return ports.FileTypeTXT, nil
	case "log":
		return ports.FileTypeLog, nil
	case "md":
		return ports.FileTypeMD, nil
	case "zip":
		return ports.FileTypeZIP, nil
	case "xlsx":
		return ports.FileTypeXLSX, nil
	case "pdf":
		return ports.FileTypePDF, nil
	case "dxf":
		return ports.FileTypeDXF, nil
	case "mp4":
		return ports.FileTypeMP4, nil
	case "m4v":
		return ports.FileTypeM4V, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
