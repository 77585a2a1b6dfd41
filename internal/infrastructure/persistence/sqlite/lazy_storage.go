package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/cookiemsg/internal/application/port"
)

// LazyOptionsStorage opens the database on the first Read or Write.
type LazyOptionsStorage struct {
	provider     port.DatabaseProvider
	historyDepth int

	mu      sync.Mutex
	storage *OptionsStorage
}

var _ port.OptionsStorage = (*LazyOptionsStorage)(nil)

// NewLazyOptionsStorage creates a storage that defers opening provider's database.
func NewLazyOptionsStorage(provider port.DatabaseProvider, historyDepth int) *LazyOptionsStorage {
	return &LazyOptionsStorage{provider: provider, historyDepth: historyDepth}
}

// init opens the storage once it succeeds; failures are retried on the next call.
func (s *LazyOptionsStorage) init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage != nil {
		return nil
	}
	db, err := s.provider.DB(ctx)
	if err != nil {
		return err
	}
	s.storage = NewOptionsStorage(db, s.historyDepth)
	return nil
}

func (s *LazyOptionsStorage) Read(ctx context.Context, namespace string) (*port.StoredBlob, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s.storage.Read(ctx, namespace)
}

func (s *LazyOptionsStorage) Write(ctx context.Context, namespace string, data []byte, expectedRevision int64) (int64, error) {
	if err := s.init(ctx); err != nil {
		return 0, err
	}
	return s.storage.Write(ctx, namespace, data, expectedRevision)
}

// History is OptionsStorage.History on the lazily opened database.
func (s *LazyOptionsStorage) History(ctx context.Context, namespace string, limit int) ([]HistoryEntry, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s.storage.History(ctx, namespace, limit)
}
