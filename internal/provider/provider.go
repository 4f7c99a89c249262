package provider

// File types reported by ListDir
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// File is a directory entry. Path is relative to the provider root and uses forward slashes.
type File struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"` // "file" or "dir"
	Size     int64  `json:"size"`
	Modified int64  `json:"modified,omitempty"`
}

// IsDir reports whether the entry is a directory
func (f File) IsDir() bool {
	return f.Type == TypeDir
}

// Provider gives read access to a tree of snippet files
type Provider interface {
	// ListDir returns the entries of a directory; "." is the root
	ListDir(path string) ([]File, error)

	// ReadFile reads file content as bytes
	ReadFile(path string) ([]byte, error)

	// Exists checks if a file or directory exists
	Exists(path string) (bool, error)

	// GetBasePath returns the root the relative paths are resolved against
	GetBasePath() string
}
