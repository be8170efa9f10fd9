package source

type (
	// FileID uniquely identifies a template within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a template.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single template.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Source returns the content as a string.
func (f *File) Source() string {
	return string(f.Content)
}
