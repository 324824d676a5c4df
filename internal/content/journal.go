package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/objectstore"
)

// Marker records a rename in flight: the item at FromID is being superseded
// by a blob at ToID whose body hashes to Digest.
//
// A marker is written uncommitted before the new key is claimed and
// committed once the write has landed. From then on ToID is the item's twin
// whatever it holds, so later edits of the twin do not hide the duplicate.
type Marker struct {
	CollectionName string    `json:"collectionName"`
	FromID         string    `json:"fromId"`
	ToID           string    `json:"toId"`
	ItemName       string    `json:"itemName"`
	Digest         string    `json:"digest"`
	Committed      bool      `json:"committed"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Journal persists rename markers so an interrupted rename can be finished
// or rolled back by the Reconciler.
type Journal interface {
	// Begin records m, replacing an uncommitted marker for the same item or a
	// committed one with the same ToID. Replacing a committed marker that
	// points elsewhere fails with a Conflict error.
	Begin(ctx context.Context, m Marker) error
	// Clear removes the marker for an item. Clearing a missing marker is not an error.
	Clear(ctx context.Context, collectionName, fromID string) error
	// Lookup returns the marker recorded for fromID, if any.
	Lookup(ctx context.Context, collectionName, fromID string) (Marker, bool, error)
	// Pending returns every recorded marker.
	Pending(ctx context.Context) ([]Marker, error)
}

func replaceable(existing, m Marker) bool {
	return !existing.Committed || existing.ToID == m.ToID
}

func errMarkerConflict(m Marker, existing Marker) error {
	return apperr.Conflict.New("item %q in collection %q is already being renamed to %q",
		m.FromID, m.CollectionName, existing.ToID)
}

func digestOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// BucketJournal keeps markers next to the data, under renames/ in the same
// bucket.
type BucketJournal struct {
	store objectstore.Store
}

// NewBucketJournal creates a journal stored in store.
func NewBucketJournal(store objectstore.Store) *BucketJournal {
	return &BucketJournal{store: store}
}

// Begin reads the current marker before overwriting it. The check and the
// write are not atomic; two renames of one item racing through the same
// instant can still both commit.
func (j *BucketJournal) Begin(ctx context.Context, m Marker) error {
	existing, ok, err := j.Lookup(ctx, m.CollectionName, m.FromID)
	if err != nil {
		return err
	}
	if ok && !replaceable(existing, m) {
		return errMarkerConflict(m, existing)
	}

	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode rename marker: %w", err)
	}
	if err := j.store.Put(ctx, MarkerKey(m.CollectionName, m.FromID), b); err != nil {
		return apperr.Storage.Wrap(err)
	}
	return nil
}

func (j *BucketJournal) Clear(ctx context.Context, collectionName, fromID string) error {
	return apperr.Storage.Wrap(j.store.Delete(ctx, MarkerKey(collectionName, fromID)))
}

func (j *BucketJournal) Lookup(ctx context.Context, collectionName, fromID string) (Marker, bool, error) {
	key := MarkerKey(collectionName, fromID)
	b, err := j.store.Get(ctx, key)
	if errors.Is(err, objectstore.ErrNotFound) {
		return Marker{}, false, nil
	}
	if err != nil {
		return Marker{}, false, apperr.Storage.Wrap(err)
	}
	m, err := decodeMarker(key, b)
	if err != nil {
		return Marker{}, false, err
	}
	return m, true, nil
}

func decodeMarker(key string, b []byte) (Marker, error) {
	var m Marker
	if err := json.Unmarshal(b, &m); err != nil {
		return Marker{}, apperr.CorruptRecord.New("rename marker %s: %v", key, err)
	}
	return m, nil
}

func (j *BucketJournal) Pending(ctx context.Context) ([]Marker, error) {
	var markers []Marker
	token := ""
	for {
		page, err := j.store.List(ctx, objectstore.ListOptions{Prefix: renamesRoot, Token: token})
		if err != nil {
			return nil, apperr.Storage.Wrap(err)
		}
		for _, key := range page.Keys {
			b, err := j.store.Get(ctx, key)
			if errors.Is(err, objectstore.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, apperr.Storage.Wrap(err)
			}
			m, err := decodeMarker(key, b)
			if err != nil {
				return nil, err
			}
			markers = append(markers, m)
		}
		if page.NextToken == "" {
			return markers, nil
		}
		token = page.NextToken
	}
}
