package ports

// GeneratorFactory looks up generators by FileType.
type GeneratorFactory interface {
	// For returns a FileGenerator for the given FileType, or an error if unsupported.
	For(t FileType) (FileGenerator, error)
	// Supported lists the types For can resolve, sorted.
	Supported() []FileType
}
