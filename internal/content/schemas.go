package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/fields"
	"github.com/bucketcms/service/internal/objectstore"
)

// SchemaStore keeps collection schemas under collections/ and validates item
// data against them. Collections without a schema accept any JSON data.
type SchemaStore struct {
	store    objectstore.Store
	registry *fields.Registry
}

// NewSchemaStore creates a SchemaStore that resolves field types in registry.
func NewSchemaStore(store objectstore.Store, registry *fields.Registry) *SchemaStore {
	return &SchemaStore{store: store, registry: registry}
}

// PutSchema stores the schema of c.Name, replacing any previous one.
func (s *SchemaStore) PutSchema(ctx context.Context, c fields.Collection) error {
	if err := validateSegment("name", c.Name); err != nil {
		return err
	}
	if err := s.registry.CheckSchema(c); err != nil {
		return apperr.Validation.Wrap(err)
	}
	if c.Fields == nil {
		c.Fields = []fields.Field{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return apperr.Storage.Wrap(s.store.Put(ctx, SchemaKey(c.Name), b))
}

// GetSchema returns the schema of a collection.
func (s *SchemaStore) GetSchema(ctx context.Context, collectionName string) (fields.Collection, error) {
	if err := validateSegment("collectionName", collectionName); err != nil {
		return fields.Collection{}, err
	}

	key := SchemaKey(collectionName)
	b, err := s.store.Get(ctx, key)
	if errors.Is(err, objectstore.ErrNotFound) {
		return fields.Collection{}, apperr.NotFound.New("no schema for collection %q", collectionName)
	}
	if err != nil {
		return fields.Collection{}, apperr.Storage.Wrap(err)
	}

	var c fields.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return fields.Collection{}, apperr.CorruptRecord.New("%s: %v", key, err)
	}
	return c, nil
}

// ListSchemas returns the names of all collections that have a schema.
func (s *SchemaStore) ListSchemas(ctx context.Context) ([]string, error) {
	var names []string
	token := ""
	for {
		page, err := s.store.List(ctx, objectstore.ListOptions{Prefix: schemasRoot, Token: token, Delimiter: "/"})
		if err != nil {
			return nil, apperr.Storage.Wrap(err)
		}
		for _, key := range page.Keys {
			if isItemKey(key) {
				names = append(names, strings.TrimSuffix(strings.TrimPrefix(key, schemasRoot), jsonExt))
			}
		}
		if page.NextToken == "" {
			return names, nil
		}
		token = page.NextToken
	}
}

// ValidateData checks data against the collection's schema, if it has one.
func (s *SchemaStore) ValidateData(ctx context.Context, collectionName string, data json.RawMessage) error {
	c, err := s.GetSchema(ctx, collectionName)
	if apperr.NotFound.Has(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.registry.Validate(c, data); err != nil {
		return apperr.Validation.Wrap(err)
	}
	return nil
}
