package ris

import "ristab/internal/schema"

// ListSeparator joins the values of a multi-valued tag into a single CSV cell
// and splits them back apart on export.
const ListSeparator = ";"

// Value holds the payload of one tag within a record: a scalar until the tag
// repeats, a list from the second occurrence on.
type Value struct {
	scalar string
	list   []string
}

// Scalar wraps a single string value.
func Scalar(s string) Value { return Value{scalar: s} }

// List wraps an ordered sequence of values.
func List(values ...string) Value {
	return Value{list: append([]string(nil), values...)}
}

// IsList reports whether the value has been promoted to a sequence.
func (v Value) IsList() bool { return v.list != nil }

// Strings returns the value as an ordered slice, one element for a scalar.
func (v Value) Strings() []string {
	if v.list != nil {
		out := make([]string, len(v.list))
		copy(out, v.list)
		return out
	}
	return []string{v.scalar}
}

// First returns the first (or only) string of the value.
func (v Value) First() string {
	if v.list != nil {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.scalar
}

// push appends another occurrence, promoting a scalar to a list on the second.
func (v Value) push(s string) Value {
	if v.list == nil {
		return Value{list: []string{v.scalar, s}}
	}
	return Value{list: append(v.list, s)}
}

// Record is an insertion-ordered mapping from tag to Value, accumulated
// between an RIS record's first line and its ER marker.
type Record struct {
	order  []string
	values map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// Add stores one tag occurrence. The first occurrence stores a scalar; a
// repeat promotes the entry to an ordered list and later repeats append.
func (r *Record) Add(tag, value string) {
	if existing, ok := r.values[tag]; ok {
		r.values[tag] = existing.push(value)
		return
	}
	r.values[tag] = Scalar(value)
	r.order = append(r.order, tag)
}

// Get returns the value stored under tag.
func (r *Record) Get(tag string) (Value, bool) {
	v, ok := r.values[tag]
	return v, ok
}

// Tags returns the record's tags in first-occurrence order.
func (r *Record) Tags() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of distinct tags.
func (r *Record) Len() int { return len(r.values) }

// Type returns the record's TY value, empty when absent.
func (r *Record) Type() string {
	v, ok := r.values[schema.TypeTag]
	if !ok {
		return ""
	}
	return v.First()
}
