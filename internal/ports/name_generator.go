package ports

// NameGenerator produces candidate file names. Names are not guaranteed to
// be unique across calls.
type NameGenerator interface {
	Next() string
}
