package storage

import (
	"errors"
	"sync"
)

// ErrInvalidConfiguration возвращается при создании кеша с capacity <= 0.
var ErrInvalidConfiguration = errors.New("invalid cache configuration")

// Индексы служебных узлов в арене.
const (
	headIdx = 0 // MRU-граница
	tailIdx = 1 // LRU-граница
	nilIdx  = -1

	sentinelCount = 2
)

// node — элемент двусвязного списка. Ссылки хранятся как индексы в арене.
type node struct {
	key   string
	value string
	prev  int
	next  int
}

// Stats — снимок счётчиков кеша.
type Stats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// EvictFunc вызывается для каждого ключа, вытесненного по LRU.
type EvictFunc func(key, value string)

// GetFunc вызывается на каждый Get: hit — ключ найден.
type GetFunc func(hit bool)

// Option — функциональная опция кеша.
type Option func(*Cache)

// Cache — LRU-кеш фиксированной ёмкости.
// Все операции O(1) и выполняются под одним мьютексом:
// Get тоже меняет порядок, поэтому RWMutex здесь не помогает.
type Cache struct {
	mu       sync.Mutex
	capacity int
	index    map[string]int
	nodes    []node // arena: [0] head, [1] tail, дальше данные
	free     []int  // освободившиеся слоты арены
	onEvict  EvictFunc
	onGet    GetFunc

	hits      uint64
	misses    uint64
	evictions uint64
}
