package state

import "fmt"

// Filter selects which todos are visible.
type Filter string

// The closed set of visibility filters.
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// ParseFilter converts user input into a Filter. The empty string means
// "no filter requested" and maps to FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("invalid filter %q: must be one of all, active, completed", s)
	}
	return f, nil
}
