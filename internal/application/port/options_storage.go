package port

import (
	"context"
	"errors"
)

// ErrRevisionMismatch is returned by OptionsStorage.Write when the stored
// revision differs from the expected one.
var ErrRevisionMismatch = errors.New("stored revision does not match")

// StoredBlob is an opaque serialized document and the revision it was written at.
type StoredBlob struct {
	Data     []byte
	Revision int64
}

// OptionsStorage is a generic namespace → bytes store with compare-and-swap writes.
type OptionsStorage interface {
	// Read returns the blob stored under namespace, or nil when absent.
	Read(ctx context.Context, namespace string) (*StoredBlob, error)

	// Write replaces the blob when the stored revision equals expectedRevision
	// (0 meaning "not stored yet") and returns the new revision.
	Write(ctx context.Context, namespace string, data []byte, expectedRevision int64) (int64, error)
}
