package ports

// FileType is the identifier for each content format.
type FileType string

const (
	FileTypeEmpty FileType = "empty"
	FileTypeTXT   FileType = "txt"
	FileTypeLog   FileType = "log"
	FileTypeMD    FileType = "md"
	FileTypeZIP   FileType = "zip"
	FileTypeXLSX  FileType = "xlsx"
	FileTypePDF   FileType = "pdf"
	FileTypeDXF   FileType = "dxf"
	FileTypeMP4   FileType = "mp4"
	FileTypeM4V   FileType = "m4v"
)

// Ext returns the extension appended to generated names, without the dot.
// Empty files keep the bare random name.
func (t FileType) Ext() string {
	if t == FileTypeEmpty || t == "" {
		return ""
	}
	return string(t)
}
