package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// ExpansionID identifies the macro expansion a span came from.
	// Zero means the code was written by the user directly.
	ExpansionID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoExpansion is the context of user-written code.
const NoExpansion ExpansionID = 0

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
