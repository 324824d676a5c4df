package content

import (
	"context"
	"errors"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/objectstore"
)

const defaultFetchConcurrency = 16

// ItemPage is one page of a collection listing. NextToken is empty on the
// last page.
type ItemPage struct {
	Items     []Item `json:"items"`
	NextToken string `json:"nextToken,omitempty"`
}

// CollectionCount pairs a collection with the number of items in it.
type CollectionCount struct {
	CollectionName string `json:"collectionName"`
	ItemCount      int    `json:"itemCount"`
}

// Enumerator pages through collections and counts their items.
type Enumerator struct {
	store    objectstore.Store
	schemas  *SchemaStore
	pageSize int
	fetchers int
}

// NewEnumerator creates an Enumerator returning at most pageSize items per
// page. A pageSize of zero uses the store's default. schemas may be nil.
func NewEnumerator(store objectstore.Store, schemas *SchemaStore, pageSize int) *Enumerator {
	return &Enumerator{
		store:    store,
		schemas:  schemas,
		pageSize: pageSize,
		fetchers: defaultFetchConcurrency,
	}
}

func (e *Enumerator) list(ctx context.Context, opts objectstore.ListOptions) (objectstore.Page, error) {
	page, err := e.store.List(ctx, opts)
	if errors.Is(err, objectstore.ErrInvalidToken) {
		return objectstore.Page{}, apperr.Validation.Wrap(err)
	}
	if err != nil {
		return objectstore.Page{}, apperr.Storage.Wrap(err)
	}
	return page, nil
}

// itemKeys keeps the keys that are items directly inside prefix.
func itemKeys(prefix string, keys []string) []string {
	out := keys[:0:0]
	for _, key := range keys {
		if isItemKey(key) && !strings.Contains(strings.TrimPrefix(key, prefix), "/") {
			out = append(out, key)
		}
	}
	return out
}

// ListItems returns one page of a collection's items in key order. Pass the
// NextToken of the previous page to continue. Keys removed between the
// listing and the fetch are skipped; a blob that does not decode fails the
// whole page.
func (e *Enumerator) ListItems(ctx context.Context, collectionName, token string) (ItemPage, error) {
	if err := validateSegment("collectionName", collectionName); err != nil {
		return ItemPage{}, err
	}

	prefix := CollectionPrefix(collectionName)
	page, err := e.list(ctx, objectstore.ListOptions{Prefix: prefix, Token: token, Limit: e.pageSize})
	if err != nil {
		return ItemPage{}, err
	}

	keys := itemKeys(prefix, page.Keys)
	fetched := make([]*Item, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fetchers)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			b, err := e.store.Get(gctx, key)
			if errors.Is(err, objectstore.ErrNotFound) {
				return nil
			}
			if err != nil {
				return apperr.Storage.Wrap(err)
			}
			rec, err := decodeRecord(key, b)
			if err != nil {
				return err
			}
			fetched[i] = &Item{ItemID: ParseItemID(key), ItemName: rec.ItemName, Data: rec.Data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ItemPage{}, err
	}

	items := make([]Item, 0, len(fetched))
	for _, it := range fetched {
		if it != nil {
			items = append(items, *it)
		}
	}
	return ItemPage{Items: items, NextToken: page.NextToken}, nil
}

// CountItems counts a collection's items by scanning every page of its
// prefix.
func (e *Enumerator) CountItems(ctx context.Context, collectionName string) (int, error) {
	if err := validateSegment("collectionName", collectionName); err != nil {
		return 0, err
	}

	prefix := CollectionPrefix(collectionName)
	count := 0
	token := ""
	for {
		page, err := e.list(ctx, objectstore.ListOptions{Prefix: prefix, Token: token})
		if err != nil {
			return 0, err
		}
		count += len(itemKeys(prefix, page.Keys))
		if page.NextToken == "" {
			return count, nil
		}
		token = page.NextToken
	}
}

// ListCollections returns the names of collections that hold at least one
// item or have a schema, sorted.
func (e *Enumerator) ListCollections(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	token := ""
	for {
		page, err := e.list(ctx, objectstore.ListOptions{Prefix: itemsRoot, Token: token, Delimiter: "/"})
		if err != nil {
			return nil, err
		}
		for _, p := range page.Prefixes {
			seen[ParseCollection(p)] = true
		}
		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	if e.schemas != nil {
		names, err := e.schemas.ListSchemas(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			seen[n] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// CollectionCounts returns every collection with its item count.
func (e *Enumerator) CollectionCounts(ctx context.Context) ([]CollectionCount, error) {
	names, err := e.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	counts := make([]CollectionCount, 0, len(names))
	for _, n := range names {
		c, err := e.CountItems(ctx, n)
		if err != nil {
			return nil, err
		}
		counts = append(counts, CollectionCount{CollectionName: n, ItemCount: c})
	}
	return counts, nil
}
