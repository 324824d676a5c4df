package objectstore

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicReadPolicy(t *testing.T) {
	p, err := ParsePolicy(PublicReadPolicy("cms"))
	require.NoError(t, err)

	require.Len(t, p.Statement, 1)
	st := p.Statement[0]
	assert.Equal(t, "Allow", st.Effect)
	assert.Equal(t, "*", st.Principal)
	assert.Equal(t, "s3:GetObject", st.Action)
	assert.Equal(t, "arn:aws:s3:::cms/*", st.Resource)

	assert.True(t, p.AllowsAnonymous("s3:GetObject", "cms", "items/posts/foo.json"))
	assert.False(t, p.AllowsAnonymous("s3:PutObject", "cms", "items/posts/foo.json"))
	assert.False(t, p.AllowsAnonymous("s3:ListBucket", "cms", ""))
	assert.False(t, p.AllowsAnonymous("s3:GetObject", "other", "items/posts/foo.json"))
}

func TestPolicyDenyWins(t *testing.T) {
	p := Policy{Statement: []Statement{
		{Effect: "Allow", Principal: "*", Action: "s3:*", Resource: "arn:aws:s3:::cms/*"},
		{Effect: "Deny", Principal: "*", Action: "s3:GetObject", Resource: "arn:aws:s3:::cms/private/*"},
	}}

	assert.True(t, p.AllowsAnonymous("s3:GetObject", "cms", "public/a"))
	assert.False(t, p.AllowsAnonymous("s3:GetObject", "cms", "private/a"))
}

func TestInstrumented(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	store := Instrument(NewMemoryStore("cms"), m)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", []byte("abc")))
	_, err := store.Get(ctx, "missing")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ops.WithLabelValues("put", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ops.WithLabelValues("get", "not_found")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.bytes.WithLabelValues("put")))

	// Observe tolerates a nil receiver so stores can run uninstrumented.
	var nilMetrics *Metrics
	nilMetrics.Observe("get", 0, nil, time.Millisecond)
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
