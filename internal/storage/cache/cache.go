package storage

import "fmt"

// New создаёт LRU-кеш на capacity ключей.
func New(capacity int, opts ...Option) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than 0, got %d", ErrInvalidConfiguration, capacity)
	}

	c := &Cache{
		capacity: capacity,
		index:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resetList()

	return c, nil
}

// WithEvictCallback регистрирует обработчик LRU-вытеснения.
// Вызывается под блокировкой кеша, поэтому не должен обращаться к кешу.
func WithEvictCallback(fn EvictFunc) Option {
	return func(c *Cache) {
		c.onEvict = fn
	}
}

// WithGetCallback регистрирует обработчик попаданий и промахов Get.
// Вызывается под блокировкой кеша.
func WithGetCallback(fn GetFunc) Option {
	return func(c *Cache) {
		c.onGet = fn
	}
}

// Get возвращает значение и делает ключ самым свежим.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.index[key]
	if c.onGet != nil {
		c.onGet(ok)
	}
	if !ok {
		c.misses++
		return "", false
	}

	c.hits++
	c.moveToFront(idx)
	return c.nodes[idx].value, true
}

// Set вставляет или обновляет ключ.
// Новый ключ при полном кеше вытесняет ровно один LRU-элемент.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, ok := c.index[key]; ok {
		c.nodes[idx].value = value
		c.moveToFront(idx)
		return
	}

	// Жертва — текущий tail, её слот достаётся новому ключу.
	if len(c.index) >= c.capacity {
		c.evictLocked()
	}

	idx := c.alloc(key, value)
	c.pushFront(idx)
	c.index[key] = idx
}

// Delete удаляет ключ. Возвращает true, если ключ был.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.index[key]
	if !ok {
		return false
	}

	c.removeLocked(idx)
	return true
}

// Len возвращает количество ключей.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// IsEmpty сообщает, пуст ли кеш.
func (c *Cache) IsEmpty() bool {
	return c.Len() == 0
}

// Capacity неизменна после New.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Clear удаляет все ключи, ёмкость сохраняется.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]int)
	c.resetList()
}

// Keys возвращает ключи в порядке MRU -> LRU (для отладки и тестов).
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.index))
	for idx := c.nodes[headIdx].next; idx != tailIdx; idx = c.nodes[idx].next {
		out = append(out, c.nodes[idx].key)
	}
	return out
}

// Stats возвращает снимок счётчиков.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Size:      len(c.index),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// removeLocked убирает узел из списка и из map.
func (c *Cache) removeLocked(idx int) {
	delete(c.index, c.nodes[idx].key)
	c.unlink(idx)
	c.release(idx)
}
