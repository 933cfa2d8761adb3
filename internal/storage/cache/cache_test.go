package storage

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants проходит список в обе стороны и сверяет его с map.
func checkInvariants(t *testing.T, c *Cache) {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	require.LessOrEqual(t, len(c.index), c.capacity, "size exceeds capacity")

	seen := make(map[string]struct{}, len(c.index))
	prev := headIdx
	for idx := c.nodes[headIdx].next; idx != tailIdx; idx = c.nodes[idx].next {
		require.NotEqual(t, nilIdx, idx, "dangling next link")
		require.Equal(t, prev, c.nodes[idx].prev, "broken prev link at %d", idx)

		key := c.nodes[idx].key
		mapped, ok := c.index[key]
		require.True(t, ok, "key %q in list but not in map", key)
		require.Equal(t, idx, mapped, "map points to wrong slot for %q", key)

		_, dup := seen[key]
		require.False(t, dup, "key %q appears twice in list", key)
		seen[key] = struct{}{}

		prev = idx
	}
	require.Equal(t, prev, c.nodes[tailIdx].prev, "tail.prev out of sync")
	require.Len(t, seen, len(c.index), "map has orphaned keys")
	require.Equal(t, len(c.nodes)-sentinelCount, len(c.index)+len(c.free), "arena leaks slots")
}

func newTestCache(t *testing.T, capacity int) *Cache {
	t.Helper()
	c, err := New(capacity)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -1, -100} {
		c, err := New(capacity)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.Nil(t, c)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	t.Run("missing key has no side effect", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t, 2)
		c.Set("a", "1")

		_, ok := c.Get("missing")
		require.False(t, ok)
		require.Equal(t, []string{"a"}, c.Keys())
		checkInvariants(t, c)
	})

	t.Run("hit refreshes recency", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t, 3)
		c.Set("a", "1")
		c.Set("b", "2")
		c.Set("c", "3")

		v, ok := c.Get("a")
		require.True(t, ok)
		require.Equal(t, "1", v)
		require.Equal(t, []string{"a", "c", "b"}, c.Keys())
		checkInvariants(t, c)
	})
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t, 4)
		c.Set("user:1", "Alice Smith")

		v, ok := c.Get("user:1")
		require.True(t, ok)
		require.Equal(t, "Alice Smith", v)
	})

	t.Run("update replaces value and refreshes", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t, 2)
		c.Set("a", "1")
		c.Set("b", "2")
		c.Set("a", "updated")

		require.Equal(t, 2, c.Len())
		require.Equal(t, []string{"a", "b"}, c.Keys())

		c.Set("c", "3") // вытесняет b
		_, ok := c.Get("b")
		require.False(t, ok)

		v, ok := c.Get("a")
		require.True(t, ok)
		require.Equal(t, "updated", v)
		checkInvariants(t, c)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t, 1)
		c.Set("k", "")

		v, ok := c.Get("k")
		require.True(t, ok)
		require.Empty(t, v)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 3)
	c.Set("a", "1")
	c.Set("b", "2")

	require.False(t, c.Delete("missing"))
	require.Equal(t, 2, c.Len())

	require.True(t, c.Delete("a"))
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	require.False(t, c.Delete("a"))
	require.Equal(t, 1, c.Len())
	checkInvariants(t, c)

	require.True(t, c.Delete("b"))
	require.True(t, c.IsEmpty())
	checkInvariants(t, c)
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 3)
	for i := 0; i < 5; i++ {
		c.Set("k"+strconv.Itoa(i), "v")
	}

	c.Clear()
	require.True(t, c.IsEmpty())
	require.Equal(t, 3, c.Capacity())
	require.Empty(t, c.Keys())
	checkInvariants(t, c)

	c.Set("x", "1")
	v, ok := c.Get("x")
	require.True(t, ok)
	require.Equal(t, "1", v)
	checkInvariants(t, c)
}

func TestEmptyCacheOperations(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 1)

	require.True(t, c.IsEmpty())
	require.False(t, c.Delete("x"))
	c.Clear()

	c.mu.Lock()
	c.evictLocked()
	c.mu.Unlock()

	require.Equal(t, 0, c.Len())
	require.Zero(t, c.Stats().Evictions)
	checkInvariants(t, c)
}

func TestStats(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 1)
	c.Set("a", "1")
	c.Get("a")
	c.Get("nope")
	c.Set("b", "2")

	st := c.Stats()
	assert.Equal(t, Stats{Size: 1, Capacity: 1, Hits: 1, Misses: 1, Evictions: 1}, st)
}

func TestArenaReusesSlots(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 4)
	for i := 0; i < 1000; i++ {
		c.Set("k"+strconv.Itoa(i), "v")
		if i%3 == 0 {
			c.Delete("k" + strconv.Itoa(i))
		}
	}

	c.mu.Lock()
	arena := len(c.nodes)
	c.mu.Unlock()

	require.LessOrEqual(t, arena, 4+sentinelCount)
	checkInvariants(t, c)
}

func TestClearDropsArenaReferences(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 8)
	for i := 0; i < 8; i++ {
		c.Set("k"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}
	c.Clear()

	c.mu.Lock()
	backing := c.nodes[:cap(c.nodes)]
	for i := sentinelCount; i < len(backing); i++ {
		assert.Empty(t, backing[i].key, "slot %d keeps key", i)
		assert.Empty(t, backing[i].value, "slot %d keeps value", i)
	}
	c.mu.Unlock()
}

func TestGetCallback(t *testing.T) {
	t.Parallel()

	var hits, misses int
	c, err := New(2, WithGetCallback(func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	}))
	require.NoError(t, err)

	c.Set("a", "1")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	require.Equal(t, 2, hits)
	require.Equal(t, 1, misses)
	st := c.Stats()
	require.Equal(t, uint64(hits), st.Hits)
	require.Equal(t, uint64(misses), st.Misses)
}
