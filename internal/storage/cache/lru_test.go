package storage

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUEviction(t *testing.T) {
	const maxKeys = 1000

	var evicted []string
	c, err := New(maxKeys, WithEvictCallback(func(key, _ string) {
		evicted = append(evicted, key)
	}))
	require.NoError(t, err)

	// Заполняем до лимита
	for i := 0; i < maxKeys; i++ {
		c.Set("key:"+strconv.Itoa(i), "val")
	}
	require.Equal(t, maxKeys, c.Len())
	require.Empty(t, evicted)

	// «Прогреваем» первые 100 ключей — они должны выжить
	for i := 0; i < 100; i++ {
		_, ok := c.Get("key:" + strconv.Itoa(i))
		require.True(t, ok)
	}

	// Добавляем 500 новых — вытесняются key:100..key:599 строго по порядку
	for i := maxKeys; i < maxKeys+500; i++ {
		c.Set("key:"+strconv.Itoa(i), "newval")
		require.LessOrEqual(t, c.Len(), maxKeys)
	}

	require.Len(t, evicted, 500)
	for i, key := range evicted {
		require.Equal(t, "key:"+strconv.Itoa(100+i), key)
	}

	survived := 0
	for i := 0; i < 100; i++ {
		if _, found := c.Get("key:" + strconv.Itoa(i)); found {
			survived++
		}
	}

	fmt.Println("╔══════════════════════════════════════════╗")
	fmt.Println("║          LRU EVICTION TEST               ║")
	fmt.Println("╠══════════════════════════════════════════╣")
	fmt.Printf("║  Max keys:         %6d                 ║\n", maxKeys)
	fmt.Printf("║  Keys after evict: %6d                 ║\n", c.Len())
	fmt.Printf("║  Hot keys survived: %4d/100              ║\n", survived)
	fmt.Println("╚══════════════════════════════════════════╝")

	require.Equal(t, 100, survived)
	checkInvariants(t, c)
}

func TestLRUCapacityOne(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 1)
	for i := 0; i < 10; i++ {
		key := "k" + strconv.Itoa(i)
		c.Set(key, "v")
		require.Equal(t, []string{key}, c.Keys())
		checkInvariants(t, c)
	}
	require.Equal(t, uint64(9), c.Stats().Evictions)
}

func TestLRURecencyRefreshBySet(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, 2)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "1") // a свежее b
	c.Set("c", "3")

	require.Equal(t, []string{"c", "a"}, c.Keys())
}

// model — наивная LRU-модель для сравнения с реализацией.
type model struct {
	capacity int
	order    []string // MRU first
	values   map[string]string
}

func (m *model) touch(key string) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.order = append([]string{key}, m.order...)
}

func (m *model) set(key, value string) {
	if _, ok := m.values[key]; !ok && len(m.values) >= m.capacity {
		victim := m.order[len(m.order)-1]
		m.order = m.order[:len(m.order)-1]
		delete(m.values, victim)
	}
	m.values[key] = value
	m.touch(key)
}

func (m *model) get(key string) (string, bool) {
	v, ok := m.values[key]
	if ok {
		m.touch(key)
	}
	return v, ok
}

func (m *model) del(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func TestLRUMatchesModel(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{1, 2, 3, 8, 32} {
		capacity := capacity
		t.Run("capacity-"+strconv.Itoa(capacity), func(t *testing.T) {
			t.Parallel()

			c := newTestCache(t, capacity)
			m := &model{capacity: capacity, values: make(map[string]string)}
			rng := rand.New(rand.NewSource(int64(capacity)))

			for op := 0; op < 5000; op++ {
				key := "k" + strconv.Itoa(rng.Intn(capacity*3))
				switch roll := rng.Intn(100); {
				case roll < 45:
					val := strconv.Itoa(op)
					c.Set(key, val)
					m.set(key, val)
				case roll < 85:
					got, ok := c.Get(key)
					want, wantOK := m.get(key)
					require.Equal(t, wantOK, ok, "get %s at op %d", key, op)
					require.Equal(t, want, got)
				case roll < 98:
					require.Equal(t, m.del(key), c.Delete(key), "del %s at op %d", key, op)
				default:
					c.Clear()
					m.values = make(map[string]string)
					m.order = nil
				}

				require.Equal(t, nonNil(m.order), nonNil(c.Keys()), "order diverged at op %d", op)
			}
			checkInvariants(t, c)
		})
	}
}

func nonNil(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	return keys
}
