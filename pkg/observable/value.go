package observable

import "sync"

// Value is a single observable cell. Subscribers are called after the new
// value is stored, outside the cell lock, on the goroutine performing Set.
// Subscriber callbacks must not re-enter operations of the component that
// owns the cell.
type Value[T any] struct {
	mux    *sync.RWMutex
	value  T
	subs   map[int]func(T)
	nextID int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		mux:   &sync.RWMutex{},
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

func (v *Value[T]) Get() T {
	v.mux.RLock()
	defer v.mux.RUnlock()
	return v.value
}

func (v *Value[T]) Set(value T) {
	v.mux.Lock()
	v.value = value
	subs := v.snapshotSubs()
	v.mux.Unlock()

	for _, sub := range subs {
		sub(value)
	}
}

// Subscribe registers fn and returns a function that removes it again.
// fn is not called with the current value, only with subsequent ones.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mux.Lock()
	defer v.mux.Unlock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	return func() {
		v.mux.Lock()
		defer v.mux.Unlock()
		delete(v.subs, id)
	}
}

func (v *Value[T]) snapshotSubs() []func(T) {
	subs := make([]func(T), 0, len(v.subs))
	for _, sub := range v.subs {
		subs = append(subs, sub)
	}
	return subs
}
