package models

import "strings"

// Map is a nested object: string keys, unique, kept in insertion order.
type Map struct {
	entries fields
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: newFields(0)}
}

// MapOf builds a Map from alternating key/value pairs in the given order.
// It is meant for literals in tests and fixtures.
func MapOf(pairs ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return m
}

func (*Map) Kind() Kind { return KindMap }
func (*Map) isValue()   {}

// Set stores v under key. A nil v is stored as Null.
func (m *Map) Set(key string, v Value) {
	m.entries.set(key, v)
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	return m.entries.get(key)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.entries.keyList()
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.len()
}

// Clone returns a shallow copy with its own key order.
func (m *Map) Clone() *Map {
	return &Map{entries: m.entries.clone()}
}

func (m *Map) Equal(other Value) bool {
	o, ok := other.(*Map)
	if !ok {
		return false
	}
	if m == nil || o == nil {
		return m.Len() == o.Len()
	}
	return m.entries.equal(&o.entries)
}

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range m.Keys() {
		if i > 0 {
			sb.WriteString(" ")
		}
		v, _ := m.Get(k)
		sb.WriteString(k)
		sb.WriteString(":")
		sb.WriteString(v.String())
	}
	sb.WriteString("}")
	return sb.String()
}
