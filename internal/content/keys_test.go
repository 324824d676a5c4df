package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bucketcms/service/internal/apperr"
)

func TestKeyScheme(t *testing.T) {
	assert.Equal(t, "items/posts/hello-world.json", ItemKey("posts", "hello-world"))
	assert.Equal(t, "items/posts/", CollectionPrefix("posts"))
	assert.Equal(t, "hello-world", ParseItemID("items/posts/hello-world.json"))
	assert.Equal(t, "hello-world", ParseItemID(ItemKey("posts", "hello-world")))
	assert.Equal(t, "posts", ParseCollection(CollectionPrefix("posts")))
	assert.Equal(t, "collections/posts.json", SchemaKey("posts"))
	assert.Equal(t, "renames/posts/old.json", MarkerKey("posts", "old"))
}

func TestValidateSegment(t *testing.T) {
	assert.NoError(t, validateSegment("collectionName", "posts"))

	for _, bad := range []string{"", "  ", "a/b", ".", ".."} {
		err := validateSegment("collectionName", bad)
		assert.True(t, apperr.Validation.Has(err), "value %q", bad)
	}
}
