package storage

// evictLocked вытесняет LRU-элемент (tail.prev).
// На пустом кеше ничего не делает.
func (c *Cache) evictLocked() {
	idx := c.back()
	if idx == nilIdx {
		return
	}

	key, value := c.nodes[idx].key, c.nodes[idx].value
	c.removeLocked(idx)
	c.evictions++

	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}
