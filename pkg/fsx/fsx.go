package fsx

import (
	"context"
	"io"
)

// FileReader reads files from a backing store.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter writes and removes files in a backing store.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is the full storage port used by services and handlers.
type FileSystem interface {
	FileReader
	FileWriter

	Exists(ctx context.Context, path string) (bool, error)
	Join(parts ...string) string
}
