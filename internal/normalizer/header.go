package normalizer

import "strings"

// HeaderIndex maps lower-cased, trimmed column names to zero-based positions.
// When a name occurs twice the later column wins.
type HeaderIndex map[string]int

// NewHeaderIndex builds the index for one file from its header cells.
func NewHeaderIndex(cells []string) HeaderIndex {
	idx := make(HeaderIndex, len(cells))
	for i, c := range cells {
		idx[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return idx
}

// Lookup returns the value of field f in row: the trimmed cell of the first alias
// present in the header whose cell exists and is non-blank. It returns "" when
// no alias yields a value.
func (h HeaderIndex) Lookup(row []string, f Field) string {
	v, _ := h.lookup(row, f)
	return v
}

// lookup is Lookup that also returns the header name the value came from.
func (h HeaderIndex) lookup(row []string, f Field) (value, column string) {
	for _, name := range aliases[f] {
		i, ok := h[name]
		if !ok || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v, name
		}
	}
	return "", string(f)
}

// Resolved reports, for each field, the header name that Lookup would try first.
// Fields with no matching header are omitted.
func (h HeaderIndex) Resolved() map[Field]string {
	out := make(map[Field]string)
	for f, names := range aliases {
		for _, name := range names {
			if _, ok := h[name]; ok {
				out[f] = name
				break
			}
		}
	}
	return out
}
