package content

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bucketcms/service/internal/fields"
	"github.com/bucketcms/service/internal/objectstore"
)

// spyStore records writes and lets tests inject failures and concurrent
// writers around the wrapped store.
type spyStore struct {
	objectstore.Store

	mu      sync.Mutex
	puts    []string
	deletes []string

	afterExists func(key string)
	getErr      func(key string) error
	deleteErr   func(key string) error
}

func newSpyStore(inner objectstore.Store) *spyStore {
	return &spyStore{Store: inner}
}

func (s *spyStore) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.Store.Exists(ctx, key)
	if s.afterExists != nil {
		s.afterExists(key)
	}
	return ok, err
}

func (s *spyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		if err := s.getErr(key); err != nil {
			return nil, err
		}
	}
	return s.Store.Get(ctx, key)
}

func (s *spyStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	s.puts = append(s.puts, key)
	s.mu.Unlock()
	return s.Store.Put(ctx, key, data)
}

func (s *spyStore) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	s.puts = append(s.puts, key)
	s.mu.Unlock()
	return s.Store.PutIfAbsent(ctx, key, data)
}

func (s *spyStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, key)
	s.mu.Unlock()
	if s.deleteErr != nil {
		if err := s.deleteErr(key); err != nil {
			return err
		}
	}
	return s.Store.Delete(ctx, key)
}

func (s *spyStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = nil
	s.deletes = nil
}

type fixture struct {
	mem     *objectstore.MemoryStore
	spy     *spyStore
	journal *BucketJournal
	schemas *SchemaStore
	items   *ItemStore
	enum    *Enumerator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := objectstore.NewMemoryStore("cms-test")
	spy := newSpyStore(mem)
	journal := NewBucketJournal(spy)
	schemas := NewSchemaStore(spy, fields.NewRegistry())
	return &fixture{
		mem:     mem,
		spy:     spy,
		journal: journal,
		schemas: schemas,
		items:   NewItemStore(spy, journal, schemas, zaptest.NewLogger(t)),
		enum:    NewEnumerator(spy, schemas, 0),
	}
}

func (f *fixture) create(t *testing.T, collectionName, itemName, data string) string {
	t.Helper()
	id, err := f.items.Create(context.Background(), collectionName, itemName, []byte(data))
	require.NoError(t, err)
	return id
}
