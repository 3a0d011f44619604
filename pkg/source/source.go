// Package source abstracts where file content is read from.
package source

import (
	"github.com/spf13/afero"
)

// ContentSource provides file content from a specific source.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)

	// Size returns the size of the file at path in bytes.
	Size(path string) (int64, error)
}

// FSSource reads files from an afero filesystem.
type FSSource struct {
	fs afero.Fs
}

// NewFilesystem creates a source that reads from the OS filesystem.
func NewFilesystem() *FSSource {
	return &FSSource{fs: afero.NewOsFs()}
}

// NewFS creates a source over any afero filesystem, e.g. an in-memory one.
func NewFS(fs afero.Fs) *FSSource {
	return &FSSource{fs: fs}
}

// Read implements ContentSource.
func (s *FSSource) Read(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

// Size implements ContentSource.
func (s *FSSource) Size(path string) (int64, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
