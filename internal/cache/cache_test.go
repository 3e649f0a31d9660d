package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStableAndContentSensitive(t *testing.T) {
	a := Key([]byte("const x = 1;"))
	b := Key([]byte("const x = 1;"))
	c := Key([]byte("const x = 2;"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGetPutRoundtrip(t *testing.T) {
	c := New(time.Minute)
	key := Key([]byte("src"))

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Put(key, "result")
	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "result", v)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}

func TestExpiredEntryEvictsOnRead(t *testing.T) {
	c := New(time.Nanosecond)
	key := Key([]byte("src"))
	c.Put(key, "result")
	time.Sleep(time.Millisecond)

	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Stats()["evictions"])
}
