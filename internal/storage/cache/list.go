package storage

// Операции над списком в арене. Вызывающий держит c.mu.

// resetList связывает head и tail, очищая арену от данных.
func (c *Cache) resetList() {
	if cap(c.nodes) < sentinelCount {
		c.nodes = make([]node, sentinelCount)
	}
	clear(c.nodes[sentinelCount:])
	c.nodes = c.nodes[:sentinelCount]
	c.nodes[headIdx] = node{prev: nilIdx, next: tailIdx}
	c.nodes[tailIdx] = node{prev: headIdx, next: nilIdx}
	c.free = c.free[:0]
}

// alloc возвращает индекс свободного слота, переиспользуя free-list.
func (c *Cache) alloc(key, value string) int {
	n := node{key: key, value: value, prev: nilIdx, next: nilIdx}

	if last := len(c.free) - 1; last >= 0 {
		idx := c.free[last]
		c.free = c.free[:last]
		c.nodes[idx] = n
		return idx
	}

	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1
}

// release возвращает слот в free-list и обнуляет строки,
// чтобы GC мог собрать ключ и значение.
func (c *Cache) release(idx int) {
	c.nodes[idx] = node{prev: nilIdx, next: nilIdx}
	c.free = append(c.free, idx)
}

// unlink вынимает узел из списка.
func (c *Cache) unlink(idx int) {
	n := &c.nodes[idx]
	c.nodes[n.prev].next = n.next
	c.nodes[n.next].prev = n.prev
	n.prev, n.next = nilIdx, nilIdx
}

// pushFront вставляет узел сразу после head (MRU).
func (c *Cache) pushFront(idx int) {
	first := c.nodes[headIdx].next

	n := &c.nodes[idx]
	n.prev = headIdx
	n.next = first

	c.nodes[first].prev = idx
	c.nodes[headIdx].next = idx
}

// moveToFront освежает узел.
func (c *Cache) moveToFront(idx int) {
	if c.nodes[headIdx].next == idx {
		return
	}
	c.unlink(idx)
	c.pushFront(idx)
}

// back возвращает LRU-узел или nilIdx, если список пуст.
func (c *Cache) back() int {
	idx := c.nodes[tailIdx].prev
	if idx == headIdx {
		return nilIdx
	}
	return idx
}
