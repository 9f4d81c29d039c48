package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueSetNotifiesSubscribers(t *testing.T) {
	v := NewValue("")

	var seen []string
	unsubscribe := v.Subscribe(func(s string) {
		seen = append(seen, s)
	})

	v.Set("first")
	v.Set("second")
	assert.Equal(t, "second", v.Get())
	assert.Equal(t, []string{"first", "second"}, seen)

	unsubscribe()
	v.Set("third")
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestValueGetWithoutSubscribers(t *testing.T) {
	v := NewValue(42)
	assert.Equal(t, 42, v.Get())
	v.Set(7)
	assert.Equal(t, 7, v.Get())
}

func TestListReplaceIsWholesale(t *testing.T) {
	l := NewList[int]()
	l.Append(1)
	l.Append(2)
	l.Replace([]int{5, 6, 7})
	assert.Equal(t, []int{5, 6, 7}, l.Snapshot())
	assert.Equal(t, 3, l.Len())
}

func TestListPrependSetRemove(t *testing.T) {
	l := NewList[string]()
	l.Append("b")
	l.Prepend("a")
	assert.Equal(t, []string{"a", "b"}, l.Snapshot())

	l.Set(1, "c")
	assert.Equal(t, []string{"a", "c"}, l.Snapshot())

	l.RemoveAt(0)
	assert.Equal(t, []string{"c"}, l.Snapshot())

	// out of range is a no-op
	l.RemoveAt(5)
	l.Set(-1, "x")
	assert.Equal(t, []string{"c"}, l.Snapshot())
}

func TestListIndexFunc(t *testing.T) {
	a, b := &struct{ n int }{1}, &struct{ n int }{1}
	l := NewList[*struct{ n int }]()
	l.Append(a)
	l.Append(b)

	// identity, not value equality
	assert.Equal(t, 1, l.IndexFunc(func(p *struct{ n int }) bool { return p == b }))
	assert.Equal(t, -1, l.IndexFunc(func(p *struct{ n int }) bool { return p == nil }))
}

func TestListSubscriberGetsSnapshot(t *testing.T) {
	l := NewList[int]()
	var last []int
	l.Subscribe(func(items []int) {
		last = items
	})

	l.Append(1)
	l.Append(2)
	assert.Equal(t, []int{1, 2}, last)

	// mutating the delivered snapshot must not affect the list
	last[0] = 99
	assert.Equal(t, []int{1, 2}, l.Snapshot())
}
