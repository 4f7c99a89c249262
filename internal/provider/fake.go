package provider

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// FakeProvider implements the Provider interface for testing
type FakeProvider struct {
	dirs    map[string][]File
	content map[string][]byte
}

// NewFakeProvider creates a new fake provider with an empty root
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		dirs:    map[string][]File{".": nil},
		content: make(map[string][]byte),
	}
}

// AddFile adds a file, creating its parent directories
func (p *FakeProvider) AddFile(file, content string) {
	dir := path.Dir(file)
	p.AddDir(dir)
	p.dirs[dir] = append(p.dirs[dir], File{
		Name: path.Base(file),
		Path: file,
		Type: TypeFile,
		Size: int64(len(content)),
	})
	p.content[file] = []byte(content)
}

// AddDir adds a directory and its parents
func (p *FakeProvider) AddDir(dir string) {
	if _, ok := p.dirs[dir]; ok {
		return
	}
	p.dirs[dir] = nil

	parent := path.Dir(dir)
	p.AddDir(parent)
	p.dirs[parent] = append(p.dirs[parent], File{Name: path.Base(dir), Path: dir, Type: TypeDir})
}

// ListDir returns the contents of a directory, sorted by name
func (p *FakeProvider) ListDir(dir string) ([]File, error) {
	files, ok := p.dirs[dir]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", dir, fs.ErrNotExist)
	}
	out := append([]File(nil), files...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ReadFile returns file content
func (p *FakeProvider) ReadFile(file string) ([]byte, error) {
	content, ok := p.content[file]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", file, fs.ErrNotExist)
	}
	return content, nil
}

// Exists checks if a file or directory exists
func (p *FakeProvider) Exists(file string) (bool, error) {
	_, fileExists := p.content[file]
	_, dirExists := p.dirs[file]
	return fileExists || dirExists, nil
}

// GetBasePath returns a fixed fake root
func (p *FakeProvider) GetBasePath() string {
	return "/fake"
}
