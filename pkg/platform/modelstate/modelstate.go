// Package modelstate collects field-keyed validation errors for a page.
//
// Validation failures are never returned as Go errors from page handlers; they are added
// here and the page is rendered again with the errors shown next to the offending fields.
package modelstate

import "sort"

// ModelState maps a form field key to the messages raised against it.
type ModelState map[string][]string

// New returns an empty model state.
func New() ModelState {
	return ModelState{}
}

// AddError records msg against key.
func (m ModelState) AddError(key, msg string) {
	m[key] = append(m[key], msg)
}

// IsValid reports whether no errors have been recorded.
func (m ModelState) IsValid() bool {
	return len(m) == 0
}

// Errors returns the messages recorded against key.
func (m ModelState) Errors(key string) []string {
	return m[key]
}

// Count returns the total number of messages across all keys.
func (m ModelState) Count() int {
	n := 0
	for _, msgs := range m {
		n += len(msgs)
	}
	return n
}

// Keys returns the field keys with errors in a stable order.
func (m ModelState) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
