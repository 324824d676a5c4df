package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/fields"
)

func TestItemStore_CreateRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Hello World", `{"title":"Hi","tags":["a","b"]}`)
	assert.Equal(t, "hello-world", id)

	rec, err := f.items.Read(ctx, "posts", id)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", rec.ItemName)
	assert.JSONEq(t, `{"title":"Hi","tags":["a","b"]}`, string(rec.Data))

	stored, err := f.mem.Get(ctx, "items/posts/hello-world.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemName":"Hello World","data":{"title":"Hi","tags":["a","b"]}}`, string(stored))
}

func TestItemStore_CreateWithoutData(t *testing.T) {
	f := newFixture(t)

	id := f.create(t, "posts", "Empty", ``)
	rec, err := f.items.Read(context.Background(), "posts", id)
	require.NoError(t, err)
	assert.Equal(t, "null", string(rec.Data))
}

func TestItemStore_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name           string
		collectionName string
		itemName       string
		data           string
	}{
		{"missing collection", "", "Foo", `{}`},
		{"collection with slash", "a/b", "Foo", `{}`},
		{"dot collection", "..", "Foo", `{}`},
		{"blank name", "posts", "   ", `{}`},
		{"invalid json", "posts", "Foo", `{"a":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.items.Create(ctx, tt.collectionName, tt.itemName, []byte(tt.data))
			assert.True(t, apperr.Validation.Has(err), "got %v", err)
		})
	}
	assert.Equal(t, 0, f.mem.Len())
}

func TestItemStore_ReadMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.items.Read(context.Background(), "posts", "nope")
	assert.True(t, apperr.NotFound.Has(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestItemStore_ReadCorrupt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.mem.Put(ctx, ItemKey("posts", "broken"), []byte(`not json`)))
	require.NoError(t, f.mem.Put(ctx, ItemKey("posts", "nameless"), []byte(`{"data":{}}`)))

	_, err := f.items.Read(ctx, "posts", "broken")
	assert.True(t, apperr.CorruptRecord.Has(err))

	_, err = f.items.Read(ctx, "posts", "nameless")
	assert.True(t, apperr.CorruptRecord.Has(err))
}

func TestItemStore_UpdateSameNameIsSinglePut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{"v":1}`)
	f.spy.reset()

	newID, err := f.items.Update(ctx, "posts", id, "Foo", []byte(`{"v":2}`))
	require.NoError(t, err)
	assert.Equal(t, id, newID)
	assert.Equal(t, []string{ItemKey("posts", "foo")}, f.spy.puts)
	assert.Empty(t, f.spy.deletes)

	rec, err := f.items.Read(ctx, "posts", id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(rec.Data))
}

func TestItemStore_UpdateCaseChangeMovesKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{}`)
	f.spy.reset()

	// Any name change allocates a fresh slug, even one that folds to the old id.
	newID, err := f.items.Update(ctx, "posts", id, "FOO", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "foo-1", newID)
	assert.Contains(t, f.spy.deletes, ItemKey("posts", "foo"))

	_, err = f.items.Read(ctx, "posts", "foo")
	assert.True(t, apperr.NotFound.Has(err))
	rec, err := f.items.Read(ctx, "posts", "foo-1")
	require.NoError(t, err)
	assert.Equal(t, "FOO", rec.ItemName)
}

func TestItemStore_Rename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{"v":1}`)
	f.create(t, "posts", "Bar", `{}`)

	newID, err := f.items.Update(ctx, "posts", id, "Bar", []byte(`{"v":2}`))
	require.NoError(t, err)
	assert.Equal(t, "bar-1", newID)

	_, err = f.items.Read(ctx, "posts", "foo")
	assert.True(t, apperr.NotFound.Has(err))

	rec, err := f.items.Read(ctx, "posts", "bar-1")
	require.NoError(t, err)
	assert.Equal(t, "Bar", rec.ItemName)
	assert.JSONEq(t, `{"v":2}`, string(rec.Data))

	pending, err := f.journal.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestItemStore_RenameDeleteFailureLeavesMarker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{}`)
	f.spy.deleteErr = func(key string) error {
		if key == ItemKey("posts", "foo") {
			return errors.New("SlowDown")
		}
		return nil
	}

	newID, err := f.items.Update(ctx, "posts", id, "Baz", []byte(`{}`))
	assert.Equal(t, "baz", newID)
	assert.True(t, apperr.Storage.Has(err))
	assert.True(t, apperr.Retryable(err))

	// Both keys exist and the marker covers them.
	_, err = f.items.Read(ctx, "posts", "foo")
	require.NoError(t, err)
	_, err = f.items.Read(ctx, "posts", "baz")
	require.NoError(t, err)

	pending, err := f.journal.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, Marker{
		CollectionName: "posts",
		FromID:         "foo",
		ToID:           "baz",
		ItemName:       "Baz",
		Digest:         pending[0].Digest,
		Committed:      true,
		CreatedAt:      pending[0].CreatedAt,
	}, pending[0])
}

func TestItemStore_RetryAfterFailedDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{}`)
	f.spy.deleteErr = func(key string) error {
		if key == ItemKey("posts", "foo") {
			return errors.New("SlowDown")
		}
		return nil
	}
	newID, err := f.items.Update(ctx, "posts", id, "Baz", []byte(`{"v":1}`))
	require.Error(t, err)
	assert.Equal(t, "baz", newID)

	// The client repeats the request with the id it still knows.
	f.spy.deleteErr = nil
	newID, err = f.items.Update(ctx, "posts", id, "Baz", []byte(`{"v":1}`))
	require.NoError(t, err)
	assert.Equal(t, "baz", newID)

	page, err := f.enum.ListItems(ctx, "posts", "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "baz", page.Items[0].ItemID)

	pending, err := f.journal.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestItemStore_TwinRenamedBeforeReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{}`)
	f.spy.deleteErr = func(key string) error {
		if key == ItemKey("posts", "foo") {
			return errors.New("SlowDown")
		}
		return nil
	}
	newID, err := f.items.Update(ctx, "posts", id, "Baz", []byte(`{}`))
	require.Error(t, err)

	// The twin moves on while the old key is still stuck.
	newID, err = f.items.Update(ctx, "posts", newID, "Qux", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "qux", newID)

	f.spy.deleteErr = nil
	report, err := NewReconciler(f.spy, f.journal, f.items.log).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1, Completed: 1}, report)

	n, err := f.enum.CountItems(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = f.items.Read(ctx, "posts", "qux")
	require.NoError(t, err)
}

func TestItemStore_DeleteOldIDFinishesRename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{}`)
	f.spy.deleteErr = func(key string) error {
		if key == ItemKey("posts", "foo") {
			return errors.New("SlowDown")
		}
		return nil
	}
	_, err := f.items.Update(ctx, "posts", id, "Baz", []byte(`{}`))
	require.Error(t, err)
	f.spy.deleteErr = nil

	require.NoError(t, f.items.Delete(ctx, "posts", "foo"))

	// A new item may take the freed id without a stale marker hanging over it.
	assert.Equal(t, "foo", f.create(t, "posts", "Foo", `{"fresh":true}`))
	report, err := NewReconciler(f.spy, f.journal, f.items.log).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{}, report)

	n, err := f.enum.CountItems(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestItemStore_RenameRefusedWhileCommittedElsewhere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "posts", "Foo", `{}`)
	f.create(t, "posts", "Baz", `{}`)
	require.NoError(t, f.journal.Begin(ctx, Marker{
		CollectionName: "posts", FromID: "foo", ToID: "baz", ItemName: "Baz", Committed: true,
	}))
	// The pending rename is settled first, so foo is gone and baz is updated.
	newID, err := f.items.Update(ctx, "posts", "foo", "Baz", []byte(`{"v":3}`))
	require.NoError(t, err)
	assert.Equal(t, "baz", newID)

	err = f.journal.Begin(ctx, Marker{CollectionName: "posts", FromID: "baz", ToID: "x", Committed: true})
	require.NoError(t, err)
	err = f.journal.Begin(ctx, Marker{CollectionName: "posts", FromID: "baz", ToID: "y"})
	assert.True(t, apperr.Conflict.Has(err))
}

func TestItemStore_UpdateMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.items.Update(context.Background(), "posts", "ghost", "Ghost", []byte(`{}`))
	assert.True(t, apperr.NotFound.Has(err))
	assert.Equal(t, 0, f.mem.Len())
}

func TestItemStore_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{}`)
	require.NoError(t, f.items.Delete(ctx, "posts", id))

	_, err := f.items.Read(ctx, "posts", id)
	assert.True(t, apperr.NotFound.Has(err))

	err = f.items.Delete(ctx, "posts", id)
	assert.True(t, apperr.NotFound.Has(err))
}

func TestItemStore_SchemaValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.schemas.PutSchema(ctx, fields.Collection{
		Name: "posts",
		Fields: []fields.Field{
			{Name: "title", TypeName: fields.TypeText},
			{Name: "rating", TypeName: fields.TypeNumber},
		},
	}))

	_, err := f.items.Create(ctx, "posts", "Ok", []byte(`{"title":"x","rating":4}`))
	require.NoError(t, err)

	_, err = f.items.Create(ctx, "posts", "Bad", []byte(`{"title":"x","rating":"four"}`))
	assert.True(t, apperr.Validation.Has(err))

	_, err = f.items.Create(ctx, "posts", "Extra", []byte(`{"unknown":1}`))
	assert.True(t, apperr.Validation.Has(err))

	// Collections without a schema accept anything.
	_, err = f.items.Create(ctx, "pages", "Free", []byte(`{"anything":[1,2,3]}`))
	require.NoError(t, err)
}

func TestItemStore_RenameToFreeSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, "posts", "Foo", `{"v":1}`)
	newID, err := f.items.Update(ctx, "posts", id, "Bar", []byte(`{"v":2}`))
	require.NoError(t, err)
	assert.Equal(t, "bar", newID)

	exists, err := f.mem.Exists(ctx, "items/posts/foo.json")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = f.mem.Exists(ctx, "items/posts/bar.json")
	require.NoError(t, err)
	assert.True(t, exists)
}
