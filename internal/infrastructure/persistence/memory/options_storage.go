// Package memory provides an in-process OptionsStorage, used by tests and by
// `serve --ephemeral`.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/cookiemsg/internal/application/port"
)

// OptionsStorage keeps blobs in a map guarded by a mutex.
type OptionsStorage struct {
	mu    sync.Mutex
	blobs map[string]port.StoredBlob

	// FailWrites, when set, is returned by every Write.
	FailWrites error
}

// NewOptionsStorage creates an empty in-memory storage.
func NewOptionsStorage() *OptionsStorage {
	return &OptionsStorage{blobs: make(map[string]port.StoredBlob)}
}

var _ port.OptionsStorage = (*OptionsStorage)(nil)

func (s *OptionsStorage) Read(_ context.Context, namespace string) (*port.StoredBlob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.blobs[namespace]
	if !ok {
		return nil, nil
	}
	data := make([]byte, len(blob.Data))
	copy(data, blob.Data)
	return &port.StoredBlob{Data: data, Revision: blob.Revision}, nil
}

func (s *OptionsStorage) Write(_ context.Context, namespace string, data []byte, expectedRevision int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return 0, s.FailWrites
	}

	current := s.blobs[namespace].Revision
	if current != expectedRevision {
		return 0, fmt.Errorf("%w: stored %d, expected %d", port.ErrRevisionMismatch, current, expectedRevision)
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	next := current + 1
	s.blobs[namespace] = port.StoredBlob{Data: cp, Revision: next}
	return next, nil
}

// Put stores raw bytes at an explicit revision, bypassing the revision check.
func (s *OptionsStorage) Put(namespace string, data []byte, revision int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[namespace] = port.StoredBlob{Data: data, Revision: revision}
}
