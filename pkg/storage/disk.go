// Package storage abstracts where product media lives. Two drivers are
// available: "local" (files under the media root, default) and "s3"
// (any S3-compatible object store).
//
// Boot it once in internal/server, then use the package-level helpers,
// which proxy to the configured default disk:
//
//	storage.Connect()
//	storage.PutStream("products/abc123.jpg", file)
//	url := storage.URL("products/abc123.jpg")
package storage

import (
	"io"
	"time"
)

// Disk is what a media driver must provide.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Files lists filenames directly inside directory, non-recursive.
	Files(directory string) ([]string, error)

	// AllFiles lists all files inside directory, recursively.
	AllFiles(directory string) ([]string, error)
}
