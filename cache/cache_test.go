package cache_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utwente-fmt/dftcalc-sub000/cache"
)

func TestStoreThenLookupHits(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir, "v1")

	_, err := c.Store("be|p=1|t=0", "aut", []byte("states..."))
	require.NoError(t, err)

	path, err := c.Lookup("be|p=1|t=0", "aut")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "states...", string(data))
}

func TestLookupMissesOnVersionBump(t *testing.T) {
	dir := t.TempDir()
	c1 := cache.New(dir, "v1")
	_, err := c1.Store("be|p=1|t=0", "aut", []byte("data"))
	require.NoError(t, err)

	c2 := cache.New(dir, "v2")
	_, err = c2.Lookup("be|p=1|t=0", "aut")
	assert.ErrorIs(t, err, cache.ErrStale)
}

func TestLookupMissesWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir, "v1")
	_, err := c.Lookup("nope", "aut")
	assert.Error(t, err)
}
