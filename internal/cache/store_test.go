package cache

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySortsParams(t *testing.T) {
	a := Key("/api/leads", url.Values{"status": {"new"}, "limit": {"10"}})
	b := Key("/api/leads", url.Values{"limit": {"10"}, "status": {"new"}})
	assert.Equal(t, a, b)
	assert.Equal(t, "/api/leads?limit=10&status=new", a)
	assert.Equal(t, "/api/leads", Key("/api/leads", nil))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))

	now = now.Add(time.Minute)
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	for _, k := range []string{"/api/leads", "/api/leads/board", "/api/leads?limit=5", "/api/jobs", "/api/job-statuses"} {
		require.NoError(t, m.Set(ctx, k, []byte("x"), 0))
	}
	require.NoError(t, m.DeletePrefix(ctx, "/api/leads"))
	assert.Equal(t, 2, m.Len())

	_, ok, _ := m.Get(ctx, "/api/jobs")
	assert.True(t, ok)
	_, ok, _ = m.Get(ctx, "/api/job-statuses")
	assert.True(t, ok)
}
