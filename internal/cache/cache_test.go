package cache

import (
	"testing"
	"time"

	"github.com/mailarchive/beautifier/internal/common"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cfg := &common.BadgerConfig{Path: t.TempDir()}
	c, err := Open(arbor.NewLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRenderedBodyRoundTrip(t *testing.T) {
	c := newTestCache(t)

	_, found, err := c.GetRenderedBody("msg_1")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.PutRenderedBody("msg_1", "<p>hello</p>"))

	html, found, err := c.GetRenderedBody("msg_1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "<p>hello</p>", html)
}

func TestDigestRootRoundTrip(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.PutDigestRoot("dev-list", "2026-07", "abc123"))

	hash, found, err := c.GetDigestRoot("dev-list", "2026-07")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "abc123", hash)

	_, found, err = c.GetDigestRoot("dev-list", "2026-08")
	require.NoError(t, err)
	require.False(t, found)
}

func TestRenderedBodyExpires(t *testing.T) {
	cfg := &common.BadgerConfig{Path: t.TempDir(), TTL: time.Millisecond}
	c, err := Open(arbor.NewLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.PutRenderedBody("msg_2", "<p>stale</p>"))
	time.Sleep(5 * time.Millisecond)

	_, found, err := c.GetRenderedBody("msg_2")
	require.NoError(t, err)
	require.False(t, found)
}
