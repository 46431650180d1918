package ports

// FileGenerator is the port for anything that can produce a file.
type FileGenerator interface {
	// Generate creates (or truncates) the file at outPath and leaves it
	// exactly sizeBytes long.
	Generate(outPath string, sizeBytes int64) error
}
