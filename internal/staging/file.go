// Package staging holds the files a user has queued for a workflow: an
// ordered stage for merges and a single-entry slot for unlocks.
// Stage and Slot are not safe for concurrent use; workflows serialize access.
package staging

import (
	"bytes"
	"io"
	"os"

	"github.com/google/uuid"
)

// Blob is the opaque content of a staged file. Open may be called once per
// submission; the caller closes the returned reader.
type Blob interface {
	Open() (io.ReadCloser, error)
}

type bytesBlob []byte

func (b bytesBlob) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Bytes wraps in-memory content as a Blob.
func Bytes(data []byte) Blob {
	return bytesBlob(data)
}

type pathBlob string

func (p pathBlob) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// Path wraps a file on disk as a Blob. The file is opened lazily.
func Path(path string) Blob {
	return pathBlob(path)
}

// Input is a file offered to intake. Size is informational; zero means unknown.
type Input struct {
	Name string
	Size int64
	Blob Blob
}

// File is a staged entry. ID is stable across reordering and removal of
// other entries and is never reused.
type File struct {
	ID   uuid.UUID
	Name string
	Size int64
	Blob Blob
}

func newFile(in Input) File {
	return File{
		ID:   uuid.New(),
		Name: in.Name,
		Size: in.Size,
		Blob: in.Blob,
	}
}
