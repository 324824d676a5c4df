package objectstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests and local sandboxes.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu          sync.RWMutex
	bucket      string
	created     bool
	policy      *Policy
	objects     map[string][]byte
	conditional bool
}

// NewMemoryStore creates an in-memory store whose bucket already exists.
func NewMemoryStore(bucket string) *MemoryStore {
	return &MemoryStore{
		bucket:      bucket,
		created:     true,
		objects:     make(map[string][]byte),
		conditional: true,
	}
}

// NewUnprovisionedMemoryStore creates an in-memory store whose bucket has not
// been created yet.
func NewUnprovisionedMemoryStore(bucket string) *MemoryStore {
	m := NewMemoryStore(bucket)
	m.created = false
	return m
}

// WithoutConditionalWrites disables PutIfAbsent, mimicking backends that
// reject If-None-Match.
func (m *MemoryStore) WithoutConditionalWrites() *MemoryStore {
	m.conditional = false
	return m
}

func (m *MemoryStore) Bucket() string { return m.bucket }

func (m *MemoryStore) ConditionalWrites() bool { return m.conditional }

func (m *MemoryStore) CreateBucket(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.created {
		return fmt.Errorf("create bucket %q: BucketAlreadyOwnedByYou", m.bucket)
	}
	m.created = true
	return nil
}

func (m *MemoryStore) SetBucketPolicy(_ context.Context, doc string) error {
	p, err := ParsePolicy(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.created {
		return fmt.Errorf("set bucket policy: %w", m.noSuchBucket())
	}
	m.policy = &p
	return nil
}

// noSuchBucket must be called with m.mu held.
func (m *MemoryStore) noSuchBucket() error {
	return fmt.Errorf("NoSuchBucket: bucket %q does not exist", m.bucket)
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.created {
		return nil, fmt.Errorf("get object %q: %w", key, m.noSuchBucket())
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, notFound("get object", key)
	}
	// Return a copy to prevent external mutation
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.created {
		return false, fmt.Errorf("stat object %q: %w", key, m.noSuchBucket())
	}
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.created {
		return fmt.Errorf("put object %q: %w", key, m.noSuchBucket())
	}
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) PutIfAbsent(_ context.Context, key string, data []byte) error {
	if !m.conditional {
		return ErrConditionalUnsupported
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.created {
		return fmt.Errorf("put object %q: %w", key, m.noSuchBucket())
	}
	if _, ok := m.objects[key]; ok {
		return fmt.Errorf("put object %q: %w", key, ErrPreconditionFailed)
	}
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.created {
		return fmt.Errorf("remove object %q: %w", key, m.noSuchBucket())
	}
	delete(m.objects, key)
	return nil
}

// List pages through keys in lexicographic order. The continuation token is
// the base64-encoded last key of the previous page.
func (m *MemoryStore) List(_ context.Context, opts ListOptions) (Page, error) {
	after := ""
	if opts.Token != "" {
		raw, err := base64.RawURLEncoding.DecodeString(opts.Token)
		if err != nil {
			return Page{}, fmt.Errorf("list objects: %w: %v", ErrInvalidToken, err)
		}
		after = string(raw)
	}

	groupOf := func(k string) string {
		if opts.Delimiter == "" {
			return ""
		}
		rest := strings.TrimPrefix(k, opts.Prefix)
		if i := strings.Index(rest, opts.Delimiter); i >= 0 {
			return opts.Prefix + rest[:i+len(opts.Delimiter)]
		}
		return ""
	}

	// A group already reported on the previous page is skipped entirely.
	doneGroup := ""
	if after != "" {
		doneGroup = groupOf(after)
	}

	m.mu.RLock()
	if !m.created {
		err := m.noSuchBucket()
		m.mu.RUnlock()
		return Page{}, fmt.Errorf("list objects: %w", err)
	}
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		if !strings.HasPrefix(k, opts.Prefix) || k <= after {
			continue
		}
		if doneGroup != "" && strings.HasPrefix(k, doneGroup) {
			continue
		}
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)

	limit := pageSize(opts.Limit)
	var page Page
	seen := make(map[string]bool)
	last := ""
	for _, k := range keys {
		group := groupOf(k)
		if group != "" && seen[group] {
			last = k
			continue
		}
		if len(page.Keys)+len(page.Prefixes) == limit {
			page.NextToken = base64.RawURLEncoding.EncodeToString([]byte(last))
			break
		}
		if group != "" {
			seen[group] = true
			page.Prefixes = append(page.Prefixes, group)
		} else {
			page.Keys = append(page.Keys, k)
		}
		last = k
	}
	return page, nil
}

// AnonymousGet reads key the way an unauthenticated client would, honoring
// the installed bucket policy.
func (m *MemoryStore) AnonymousGet(ctx context.Context, key string) ([]byte, error) {
	if !m.allowsAnonymous("s3:GetObject", key) {
		return nil, errAccessDenied
	}
	return m.Get(ctx, key)
}

// AnonymousPut writes key the way an unauthenticated client would, honoring
// the installed bucket policy.
func (m *MemoryStore) AnonymousPut(ctx context.Context, key string, data []byte) error {
	if !m.allowsAnonymous("s3:PutObject", key) {
		return errAccessDenied
	}
	return m.Put(ctx, key, data)
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var errAccessDenied = errors.New("AccessDenied")

func (m *MemoryStore) allowsAnonymous(action, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.policy != nil && m.policy.AllowsAnonymous(action, m.bucket, key)
}
