package provider

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// FSProvider implements the Provider interface for local file systems
type FSProvider struct {
	rootPath string
}

// NewFSProvider creates a new file system provider
func NewFSProvider(rootPath string) *FSProvider {
	root := filepath.Clean(rootPath)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &FSProvider{rootPath: root}
}

// ListDir returns the contents of a directory, sorted by name
func (p *FSProvider) ListDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(p.getFullPath(dir))
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue // Skip entries we can't get info for
		}

		fileType := TypeFile
		if entry.IsDir() {
			fileType = TypeDir
		} else if !info.Mode().IsRegular() {
			continue // Skip symlinks, sockets and devices
		}

		files = append(files, File{
			Name:     entry.Name(),
			Path:     joinRel(dir, entry.Name()),
			Type:     fileType,
			Size:     info.Size(),
			Modified: info.ModTime().Unix(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ReadFile reads file content as bytes
func (p *FSProvider) ReadFile(file string) ([]byte, error) {
	return os.ReadFile(p.getFullPath(file))
}

// Exists checks if a file or directory exists
func (p *FSProvider) Exists(file string) (bool, error) {
	_, err := os.Stat(p.getFullPath(file))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// getFullPath converts a relative path to an absolute path
func (p *FSProvider) getFullPath(rel string) string {
	if rel == "." || rel == "" {
		return p.rootPath
	}
	return filepath.Join(p.rootPath, filepath.FromSlash(rel))
}

// GetBasePath returns the base path for this provider
func (p *FSProvider) GetBasePath() string {
	return p.rootPath
}

func joinRel(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return path.Join(strings.TrimSuffix(dir, "/"), name)
}
