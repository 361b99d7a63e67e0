package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New(time.Minute)

	c.SetDefault("sid", "state")
	v, ok := c.Get("sid")
	require.True(t, ok)
	assert.Equal(t, "state", v)
	assert.Equal(t, 1, c.Count())

	_, ok = c.Get("other")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.SetDefault("short", 1)
	assert.Eventually(t, func() bool {
		_, ok := c.Get("short")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCache_Touch(t *testing.T) {
	c := New(time.Minute)

	assert.False(t, c.Touch("missing"))
	c.SetDefault("sid", 1)
	assert.True(t, c.Touch("sid"))
}

func TestCache_DeleteCallsOnEvicted(t *testing.T) {
	c := New(time.Minute)

	var evicted []string
	c.OnEvicted(func(key string, _ interface{}) {
		evicted = append(evicted, key)
	})

	c.SetDefault("sid", 1)
	c.Delete("sid")
	assert.Equal(t, []string{"sid"}, evicted)
	assert.Equal(t, 0, c.Count())
}

func TestNew_DefaultTTL(t *testing.T) {
	c := New(0)
	c.SetDefault("sid", 1)
	_, ok := c.Get("sid")
	assert.True(t, ok)
}
