package collections

import (
	"container/list"
)

type keyVal[K comparable, V any] struct {
	key K
	val V
}

// OrderedMap tracks the insertion ordering of elements in a map.
// Iteration visits entries in the order they were first inserted;
// updating an existing key does not change its position.
// It is not thread-safe.
type OrderedMap[K comparable, V any] struct {
	items map[K]*list.Element
	order *list.List
}

// NewOrderedMap allocates an ordered map with the given initial capacity.
// The capacity will grow as needed.
func NewOrderedMap[K comparable, V any](cap int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		items: make(map[K]*list.Element, cap),
		order: list.New(),
	}
}

// Len returns the number of elements in the map.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.items)
}

// Get returns the value for a given key in the map and an existence flag.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	elem := m.items[key]
	if elem == nil {
		var zero V
		return zero, false
	}
	return elem.Value.(keyVal[K, V]).val, true
}

// Set sets the value for a given key in the map and returns true iff the key did not already exist.
// If the key already exists its value is updated in place.
func (m *OrderedMap[K, V]) Set(key K, val V) bool {
	elem := m.items[key]
	if elem != nil {
		elem.Value = keyVal[K, V]{key, val}
		return false
	}

	elem = m.order.PushBack(keyVal[K, V]{key, val})
	m.items[key] = elem
	return true
}

// Delete deletes the given key from the map, returning the corresponding value and an existence flag.
func (m *OrderedMap[K, V]) Delete(key K) (V, bool) {
	elem := m.items[key]
	if elem == nil {
		var zero V
		return zero, false
	}
	delete(m.items, key)
	return m.order.Remove(elem).(keyVal[K, V]).val, true
}

// Range iterates over the map in insertion order.
func (m *OrderedMap[K, V]) Range(cb func(k K, v V) bool) {
	elem := m.order.Front()
	for elem != nil {
		kv := elem.Value.(keyVal[K, V])
		elem = elem.Next() // this needs to happen before cb(...), since cb(...) might delete `elem`
		if !cb(kv.key, kv.val) {
			break
		}
	}
}

// Clone returns a copy of the map with the same contents and insertion order.
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	out := NewOrderedMap[K, V](m.Len())
	m.Range(func(k K, v V) bool {
		out.Set(k, v)
		return true
	})
	return out
}
