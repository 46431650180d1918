package ports

// SizeParser turns a human size ("0", "10KB", "4M") into bytes.
type SizeParser interface {
	Parse(spec string) (int64, error)
}
