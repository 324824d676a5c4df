// Package content implements a document store on top of a flat object store:
// items are JSON blobs addressed by collection name and slug, collections are
// key prefixes, and database-like guarantees (unique slugs, rename without
// data loss, exhaustive paging) are built from single-key operations.
package content

import (
	"strings"

	"github.com/bucketcms/service/internal/apperr"
)

const (
	itemsRoot   = "items/"
	schemasRoot = "collections/"
	renamesRoot = "renames/"
	jsonExt     = ".json"
)

// ItemKey returns the storage key of an item.
func ItemKey(collectionName, itemID string) string {
	return itemsRoot + collectionName + "/" + itemID + jsonExt
}

// CollectionPrefix returns the key prefix shared by every item of a collection.
func CollectionPrefix(collectionName string) string {
	return itemsRoot + collectionName + "/"
}

// ParseItemID recovers the item id from an item key.
func ParseItemID(key string) string {
	name := key[strings.LastIndex(key, "/")+1:]
	return strings.TrimSuffix(name, jsonExt)
}

// ParseCollection recovers the collection name from a collection prefix.
func ParseCollection(prefix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(prefix, itemsRoot), "/")
}

// SchemaKey returns the key of a collection's field schema.
func SchemaKey(collectionName string) string {
	return schemasRoot + collectionName + jsonExt
}

// MarkerKey returns the key of the rename marker for an item.
func MarkerKey(collectionName, fromID string) string {
	return renamesRoot + collectionName + "/" + fromID + jsonExt
}

func isItemKey(key string) bool {
	return strings.HasSuffix(key, jsonExt)
}

// validateSegment rejects values that would escape their key segment.
func validateSegment(field, value string) error {
	switch {
	case strings.TrimSpace(value) == "":
		return apperr.Validation.New("%s is required", field)
	case strings.Contains(value, "/"):
		return apperr.Validation.New("%s must not contain '/'", field)
	case value == "." || value == "..":
		return apperr.Validation.New("%s must not be %q", field, value)
	}
	return nil
}

func validateName(itemName string) error {
	if strings.TrimSpace(itemName) == "" {
		return apperr.Validation.New("itemName is required and should be a non-empty string")
	}
	return nil
}
