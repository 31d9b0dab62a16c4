package rowset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// header is shared by every Row of a ResultSet.
type header struct {
	names []string
	index map[string]int
}

func newHeader(names []string) *header {
	unique := UniqueNames(names)
	index := make(map[string]int, len(unique))
	for i, name := range unique {
		index[name] = i
	}
	return &header{names: unique, index: index}
}

// Row is an ordered mapping from column name to Value. Column order matches
// the engine's output order. A Row is immutable.
type Row struct {
	header *header
	values []Value
}

// NewRow builds a Row from parallel name and value slices. Duplicate names
// are renamed as described in UniqueNames.
func NewRow(names []string, values []Value) (Row, error) {
	if len(names) != len(values) {
		return Row{}, errors.New("row names and values must have the same length")
	}
	return Row{
		header: newHeader(names),
		values: append([]Value(nil), values...),
	}, nil
}

// Len returns the number of columns.
func (r Row) Len() int {
	return len(r.values)
}

// Columns returns the column names in order.
func (r Row) Columns() []string {
	if r.header == nil {
		return []string{}
	}
	return append([]string(nil), r.header.names...)
}

// Values returns the values in column order.
func (r Row) Values() []Value {
	return append([]Value(nil), r.values...)
}

// Get returns the value of the named column.
func (r Row) Get(name string) (Value, bool) {
	if r.header == nil {
		return Value{}, false
	}
	i, ok := r.header.index[name]
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

// At returns the value at column position i. It panics if i is out of range.
func (r Row) At(i int) Value {
	return r.values[i]
}

// Map returns the row as a map of plain Go values (see Value.Any).
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, v := range r.values {
		m[r.header.names[i]] = v.Any()
	}
	return m
}

// MarshalJSON encodes the row as a JSON object keeping column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.header.names[i])
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode column %q: %w", r.header.names[i], err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UniqueNames returns names with duplicates renamed so every name is unique.
// The first occurrence keeps its name; later ones get the suffix "_N" with
// the smallest N >= 1 that is neither an input name nor already assigned.
func UniqueNames(names []string) []string {
	reserved := make(map[string]bool, len(names))
	for _, name := range names {
		reserved[name] = true
	}

	used := make(map[string]bool, len(names))
	unique := make([]string, len(names))
	for i, name := range names {
		if !used[name] {
			used[name] = true
			unique[i] = name
			continue
		}
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s_%d", name, n)
			if !reserved[candidate] && !used[candidate] {
				used[candidate] = true
				unique[i] = candidate
				break
			}
		}
	}
	return unique
}
