package models

// Record is one unit of conversion: a row, an object or a <record> element.
// Field names are unique; insertion order is kept so order-sensitive writers
// reproduce the input order.
//
// A Record is built by a single parse call and only read by writers. Fields
// hands out a copy, so callers cannot change a Record behind its back.
type Record struct {
	fields fields
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{fields: newFields(0)}
}

// RecordOf builds a Record from alternating name/value pairs.
func RecordOf(pairs ...any) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return r
}

// Set adds or replaces a field. A nil v is stored as Null.
func (r *Record) Set(name string, v Value) {
	r.fields.set(name, v)
}

// Get returns the field value and whether the field is present.
func (r *Record) Get(name string) (Value, bool) {
	return r.fields.get(name)
}

func (r *Record) Has(name string) bool {
	_, ok := r.fields.get(name)
	return ok
}

// Keys returns field names in insertion order.
func (r *Record) Keys() []string {
	return r.fields.keyList()
}

func (r *Record) Len() int {
	return r.fields.len()
}

// Fields returns a copy of the record's fields as a Map.
func (r *Record) Fields() *Map {
	return &Map{entries: r.fields.clone()}
}

// Equal compares field sets and values, ignoring field order.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.fields.equal(&other.fields)
}

func (r *Record) String() string {
	return "Record" + r.Fields().String()
}

// RecordsEqual compares two record sequences element-wise.
func RecordsEqual(a, b []*Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
