package content

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/objectstore"
)

// fallbackSlug is used when a name has no ASCII letters or digits at all.
const fallbackSlug = "item"

// Slugify turns a display name into a lowercase, ASCII-only, hyphen-separated
// identifier. Accents are folded ("Café" -> "cafe"), whitespace, '-' and '_'
// separate words, and any other character is dropped.
func Slugify(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingSep = true
		}
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

func candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// SlugAllocator derives item ids from display names and resolves collisions
// by appending -1, -2, ... to the base slug.
type SlugAllocator struct {
	store objectstore.Store
}

// NewSlugAllocator creates a SlugAllocator over store.
func NewSlugAllocator(store objectstore.Store) *SlugAllocator {
	return &SlugAllocator{store: store}
}

// Allocate returns the first slug for desiredName that is free in collection
// at the time of the check. The result is advisory: use Claim to also write.
func (a *SlugAllocator) Allocate(ctx context.Context, collectionName, desiredName string) (string, error) {
	slug, _, err := a.probe(ctx, collectionName, Slugify(desiredName), 0)
	return slug, err
}

// Claim allocates a slug for desiredName and writes body under it. With
// conditional writes the store rejects the write if another writer took the
// slug after the existence check, and probing resumes at the next suffix.
func (a *SlugAllocator) Claim(ctx context.Context, collectionName, desiredName string, body []byte) (string, error) {
	return a.claim(ctx, collectionName, desiredName, body, nil)
}

// claim is Claim with a hook that runs before each write attempt.
func (a *SlugAllocator) claim(ctx context.Context, collectionName, desiredName string, body []byte, beforeWrite func(slug string) error) (string, error) {
	base := Slugify(desiredName)
	n := 0
	for {
		slug, at, err := a.probe(ctx, collectionName, base, n)
		if err != nil {
			return "", err
		}
		if beforeWrite != nil {
			if err := beforeWrite(slug); err != nil {
				return "", err
			}
		}

		key := ItemKey(collectionName, slug)
		if !a.store.ConditionalWrites() {
			// Check-then-write: a concurrent writer of the same slug wins silently.
			if err := a.store.Put(ctx, key, body); err != nil {
				return "", apperr.Storage.Wrap(err)
			}
			return slug, nil
		}

		err = a.store.PutIfAbsent(ctx, key, body)
		switch {
		case err == nil:
			return slug, nil
		case errors.Is(err, objectstore.ErrPreconditionFailed):
			n = at + 1
		default:
			return "", apperr.Storage.Wrap(err)
		}
	}
}

// probe checks candidates starting at suffix from and returns the first free
// one together with its suffix.
func (a *SlugAllocator) probe(ctx context.Context, collectionName, base string, from int) (string, int, error) {
	for n := from; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", 0, apperr.Storage.Wrap(err)
		}
		slug := candidate(base, n)
		exists, err := a.store.Exists(ctx, ItemKey(collectionName, slug))
		if err != nil {
			return "", 0, apperr.Storage.Wrap(err)
		}
		if !exists {
			return slug, n, nil
		}
	}
}
