package observable

import "sync"

// List is an observable ordered sequence. Mutations notify subscribers with
// a snapshot of the new contents, outside the list lock, on the mutating
// goroutine.
type List[T any] struct {
	mux    *sync.RWMutex
	items  []T
	subs   map[int]func([]T)
	nextID int
}

func NewList[T any]() *List[T] {
	return &List[T]{
		mux:   &sync.RWMutex{},
		items: make([]T, 0),
		subs:  make(map[int]func([]T)),
	}
}

func (l *List[T]) Len() int {
	l.mux.RLock()
	defer l.mux.RUnlock()
	return len(l.items)
}

// Snapshot returns a copy of the current contents.
func (l *List[T]) Snapshot() []T {
	l.mux.RLock()
	defer l.mux.RUnlock()
	items := make([]T, len(l.items))
	copy(items, l.items)
	return items
}

func (l *List[T]) At(i int) (T, bool) {
	l.mux.RLock()
	defer l.mux.RUnlock()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// IndexFunc returns the index of the first element matching pred, or -1.
func (l *List[T]) IndexFunc(pred func(T) bool) int {
	l.mux.RLock()
	defer l.mux.RUnlock()
	for i, item := range l.items {
		if pred(item) {
			return i
		}
	}
	return -1
}

// Replace swaps the whole contents.
func (l *List[T]) Replace(items []T) {
	l.mutate(func() {
		l.items = make([]T, len(items))
		copy(l.items, items)
	})
}

func (l *List[T]) Prepend(item T) {
	l.mutate(func() {
		l.items = append([]T{item}, l.items...)
	})
}

func (l *List[T]) Append(item T) {
	l.mutate(func() {
		l.items = append(l.items, item)
	})
}

// Set replaces the element at i. Out-of-range indices are ignored.
func (l *List[T]) Set(i int, item T) {
	l.mutate(func() {
		if i >= 0 && i < len(l.items) {
			l.items[i] = item
		}
	})
}

// RemoveAt removes the element at i. Out-of-range indices are ignored.
func (l *List[T]) RemoveAt(i int) {
	l.mutate(func() {
		if i >= 0 && i < len(l.items) {
			l.items = append(l.items[:i], l.items[i+1:]...)
		}
	})
}

func (l *List[T]) Subscribe(fn func([]T)) (unsubscribe func()) {
	l.mux.Lock()
	defer l.mux.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() {
		l.mux.Lock()
		defer l.mux.Unlock()
		delete(l.subs, id)
	}
}

func (l *List[T]) mutate(apply func()) {
	l.mux.Lock()
	apply()
	snapshot := make([]T, len(l.items))
	copy(snapshot, l.items)
	subs := make([]func([]T), 0, len(l.subs))
	for _, sub := range l.subs {
		subs = append(subs, sub)
	}
	l.mux.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}
