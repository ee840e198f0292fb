package lru_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/lru"
)

func TestCache_GetPut(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](2)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// "b" is now least recently used.
	c.Put("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)

	assert.Equal(t, int64(2), c.Hits())
	assert.Equal(t, int64(2), c.Misses())
}

func TestCache_GetOrCompute(t *testing.T) {
	t.Parallel()

	c := lru.New[int, string](4)
	calls := 0

	compute := func() string {
		calls++

		return "x"
	}

	assert.Equal(t, "x", c.GetOrCompute(1, compute))
	assert.Equal(t, "x", c.GetOrCompute(1, compute))
	assert.Equal(t, 1, calls)
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](16)

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 100 {
				key := strconv.Itoa((i + j) % 32)
				c.Put(key, j)
				c.Get(key)
			}
		}()
	}

	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}

func TestNew_PanicsWithoutCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { lru.New[string, int](0) })
}
