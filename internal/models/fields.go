package models

// fields is an insertion-ordered string-keyed collection. Setting an existing
// key replaces the value in place.
type fields struct {
	keys   []string
	values map[string]Value
}

func newFields(capacity int) fields {
	return fields{
		keys:   make([]string, 0, capacity),
		values: make(map[string]Value, capacity),
	}
}

func (f *fields) set(key string, v Value) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = OrNull(v)
}

func (f *fields) get(key string) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fields) len() int {
	return len(f.keys)
}

func (f *fields) keyList() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

func (f *fields) clone() fields {
	out := newFields(len(f.keys))
	for _, k := range f.keys {
		out.set(k, f.values[k])
	}
	return out
}

// equal compares contents regardless of insertion order.
func (f *fields) equal(o *fields) bool {
	if f.len() != o.len() {
		return false
	}
	for _, k := range f.keys {
		ov, ok := o.values[k]
		if !ok || !f.values[k].Equal(ov) {
			return false
		}
	}
	return true
}
