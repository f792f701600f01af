// Package route derives the visibility filter from a navigation path.
//
// The filter is not application state: it is recomputed from the current
// location on every render, so "where am I" and "what do I see" can never
// drift apart.
package route

import (
	"fmt"
	"strings"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
)

// FromPath maps a navigation path to a visibility filter.
//
// An empty or root path means no filter and maps to all. A single segment
// naming a filter ("/active", "active") selects it. Anything else is
// rejected at this edge so the selector downstream only ever sees values
// from the closed enumeration.
func FromPath(path string) (state.Filter, error) {
	segment := strings.Trim(path, "/")
	if segment == "" {
		return state.FilterAll, nil
	}

	f := state.Filter(segment)
	if !f.Valid() {
		return "", fmt.Errorf("unknown route %q: expected /, /active, or /completed", path)
	}
	return f, nil
}
