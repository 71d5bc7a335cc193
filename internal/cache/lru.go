package cache

// entry is an element of the recency list. The list is circular around a
// sentinel, so insertion and removal need no nil checks.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// recency orders entries from most (front) to least (back) recently used.
// It is not safe for concurrent use.
type recency[K comparable, V any] struct {
	root entry[K, V]
	n    int
}

func (l *recency[K, V]) init() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.n = 0
}

func (l *recency[K, V]) len() int { return l.n }

func (l *recency[K, V]) pushFront(e *entry[K, V]) {
	e.prev = &l.root
	e.next = l.root.next
	l.root.next.prev = e
	l.root.next = e
	l.n++
}

func (l *recency[K, V]) remove(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	l.n--
}

func (l *recency[K, V]) moveToFront(e *entry[K, V]) {
	if l.root.next == e {
		return
	}
	l.remove(e)
	l.pushFront(e)
}

// back returns the least recently used entry, or nil.
func (l *recency[K, V]) back() *entry[K, V] {
	if l.n == 0 {
		return nil
	}
	return l.root.prev
}
