package gtfs

import "strings"

// Header is the ordered list of column names of one file.
type Header struct {
	names []string
	index map[string]int
}

func newHeader(names []string) *Header {
	h := &Header{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		n = strings.TrimSpace(n)
		h.names[i] = n
		// a repeated column name resolves to its first occurrence
		if _, dup := h.index[n]; !dup {
			h.index[n] = i
		}
	}
	return h
}

func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

func (h *Header) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// RawRow is one data line of a file, indexed by column name.
type RawRow struct {
	// Line is the 1-based line number where the row starts.
	Line   int
	header *Header
	values []string
	err    error
}

// NewRawRow pairs values with column names by position.
func NewRawRow(line int, header []string, values []string) RawRow {
	return RawRow{Line: line, header: newHeader(header), values: values}
}

// Get returns the value of the named column. An empty cell, a column the
// header does not declare, and a cell missing from a short row all count as
// absent.
func (r RawRow) Get(name string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.index[name]
	if !ok || i >= len(r.values) {
		return "", false
	}
	v := r.values[i]
	if strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Columns returns the header names the row was read with.
func (r RawRow) Columns() []string {
	if r.header == nil {
		return nil
	}
	return r.header.Names()
}

// Map returns every present value keyed by column name.
func (r RawRow) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	if r.header == nil {
		return m
	}
	for i, name := range r.header.names {
		if v, ok := r.Get(name); ok && r.header.index[name] == i {
			m[name] = v
		}
	}
	return m
}

// Err reports a row that could not be tokenized.
func (r RawRow) Err() error {
	return r.err
}
