package content

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/objectstore"
)

// Record is the stored body of an item. The item id is not part of it; it
// lives only in the key.
type Record struct {
	ItemName string          `json:"itemName"`
	Data     json.RawMessage `json:"data"`
}

// Item is a record together with its id.
type Item struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Data     json.RawMessage `json:"data"`
}

// DataValidator checks item data against a collection's schema.
type DataValidator interface {
	ValidateData(ctx context.Context, collectionName string, data json.RawMessage) error
}

func encodeRecord(itemName string, data json.RawMessage) ([]byte, error) {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	b, err := json.Marshal(Record{ItemName: itemName, Data: data})
	if err != nil {
		return nil, apperr.Validation.New("data is not valid JSON: %v", err)
	}
	return b, nil
}

func decodeRecord(key string, b []byte) (Record, error) {
	var raw struct {
		ItemName *string         `json:"itemName"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Record{}, apperr.CorruptRecord.New("%s: %v", key, err)
	}
	if raw.ItemName == nil {
		return Record{}, apperr.CorruptRecord.New("%s: missing itemName", key)
	}
	return Record{ItemName: *raw.ItemName, Data: raw.Data}, nil
}

// ItemStore creates, reads, updates and deletes items.
type ItemStore struct {
	store     objectstore.Store
	slugs     *SlugAllocator
	journal   Journal
	validator DataValidator
	log       *zap.Logger
	now       func() time.Time
}

// NewItemStore creates an ItemStore. validator may be nil, in which case data
// is stored without schema checks.
func NewItemStore(store objectstore.Store, journal Journal, validator DataValidator, log *zap.Logger) *ItemStore {
	return &ItemStore{
		store:     store,
		slugs:     NewSlugAllocator(store),
		journal:   journal,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

func (s *ItemStore) validate(ctx context.Context, collectionName, itemName string, data json.RawMessage) error {
	if err := validateSegment("collectionName", collectionName); err != nil {
		return err
	}
	if err := validateName(itemName); err != nil {
		return err
	}
	if len(data) > 0 && !json.Valid(data) {
		return apperr.Validation.New("data is not valid JSON")
	}
	if s.validator != nil {
		return s.validator.ValidateData(ctx, collectionName, data)
	}
	return nil
}

// Create stores a new item under a fresh slug derived from itemName and
// returns the slug.
func (s *ItemStore) Create(ctx context.Context, collectionName, itemName string, data json.RawMessage) (string, error) {
	if err := s.validate(ctx, collectionName, itemName, data); err != nil {
		return "", err
	}
	body, err := encodeRecord(itemName, data)
	if err != nil {
		return "", err
	}
	return s.slugs.Claim(ctx, collectionName, itemName, body)
}

// Read returns the record stored for itemID.
func (s *ItemStore) Read(ctx context.Context, collectionName, itemID string) (Record, error) {
	if err := validateSegment("collectionName", collectionName); err != nil {
		return Record{}, err
	}
	if err := validateSegment("itemId", itemID); err != nil {
		return Record{}, err
	}

	key := ItemKey(collectionName, itemID)
	b, err := s.store.Get(ctx, key)
	if errors.Is(err, objectstore.ErrNotFound) {
		return Record{}, apperr.NotFound.New("item %q not found in collection %q", itemID, collectionName)
	}
	if err != nil {
		return Record{}, apperr.Storage.Wrap(err)
	}
	return decodeRecord(key, b)
}

// Update replaces the item's name and data and returns its id, which changes
// whenever the name does.
//
// A rename writes the new key before deleting the old one, with a journal
// marker covering the window in which both exist. If the old key cannot be
// removed the new id is returned together with a storage error and the marker
// is left for the Reconciler. A later update or delete of the old id settles
// that marker first, so repeating the request is safe.
func (s *ItemStore) Update(ctx context.Context, collectionName, itemID, newItemName string, data json.RawMessage) (string, error) {
	if err := validateSegment("itemId", itemID); err != nil {
		return "", err
	}
	if err := s.validate(ctx, collectionName, newItemName, data); err != nil {
		return "", err
	}

	itemID, err := s.settle(ctx, collectionName, itemID)
	if err != nil {
		return "", err
	}

	current, err := s.Read(ctx, collectionName, itemID)
	if err != nil {
		return "", err
	}

	body, err := encodeRecord(newItemName, data)
	if err != nil {
		return "", err
	}

	oldKey := ItemKey(collectionName, itemID)
	if current.ItemName == newItemName {
		if err := s.store.Put(ctx, oldKey, body); err != nil {
			return "", apperr.Storage.Wrap(err)
		}
		return itemID, nil
	}

	marker := Marker{
		CollectionName: collectionName,
		FromID:         itemID,
		ItemName:       newItemName,
		Digest:         digestOf(body),
	}
	newID, err := s.slugs.claim(ctx, collectionName, newItemName, body, func(slug string) error {
		marker.ToID = slug
		marker.CreatedAt = s.now().UTC()
		return s.journal.Begin(ctx, marker)
	})
	if err != nil {
		return "", err
	}

	marker.Committed = true
	if err := s.journal.Begin(ctx, marker); err != nil {
		if apperr.Conflict.Has(err) {
			// A concurrent rename of itemID committed first; withdraw ours.
			if derr := s.store.Delete(ctx, ItemKey(collectionName, newID)); derr != nil {
				s.log.Warn("withdraw conflicting rename", zap.String("collection", collectionName), zap.String("key", newID), zap.Error(derr))
			}
			return "", err
		}
		// The uncommitted marker still identifies the new key by digest.
		s.log.Warn("commit rename marker", zap.String("collection", collectionName), zap.String("from", itemID), zap.Error(err))
	}

	if err := s.store.Delete(ctx, oldKey); err != nil {
		s.log.Warn("rename left old key in place",
			zap.String("collection", collectionName),
			zap.String("from", itemID),
			zap.String("to", newID),
			zap.Error(err),
		)
		return newID, apperr.Storage.New("renamed %q to %q but could not remove the old key: %v", itemID, newID, err)
	}

	if err := s.journal.Clear(ctx, collectionName, itemID); err != nil {
		// The rename is complete; a stale marker is cleared by the next reconcile.
		s.log.Warn("clear rename marker", zap.String("collection", collectionName), zap.String("from", itemID), zap.Error(err))
	}

	s.log.Debug("item renamed", zap.String("collection", collectionName), zap.String("from", itemID), zap.String("to", newID))
	return newID, nil
}

// settle resolves a rename left pending for itemID and returns the id the
// item lives under afterwards.
func (s *ItemStore) settle(ctx context.Context, collectionName, itemID string) (string, error) {
	m, ok, err := s.journal.Lookup(ctx, collectionName, itemID)
	if err != nil || !ok {
		return itemID, err
	}

	out, err := settle(ctx, s.store, s.journal, m)
	if err != nil {
		return "", err
	}
	if out == outcomeCompleted {
		s.log.Info("finished pending rename", zap.String("collection", collectionName), zap.String("from", m.FromID), zap.String("to", m.ToID))
		return m.ToID, nil
	}
	return itemID, nil
}

// Delete removes an item. Deleting the old id of an unfinished rename only
// finishes the rename; the item stays under its new id.
func (s *ItemStore) Delete(ctx context.Context, collectionName, itemID string) error {
	if err := validateSegment("collectionName", collectionName); err != nil {
		return err
	}
	if err := validateSegment("itemId", itemID); err != nil {
		return err
	}

	liveID, err := s.settle(ctx, collectionName, itemID)
	if err != nil {
		return err
	}
	if liveID != itemID {
		return nil
	}

	key := ItemKey(collectionName, itemID)
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return apperr.Storage.Wrap(err)
	}
	if !exists {
		return apperr.NotFound.New("item %q not found in collection %q", itemID, collectionName)
	}
	return apperr.Storage.Wrap(s.store.Delete(ctx, key))
}
