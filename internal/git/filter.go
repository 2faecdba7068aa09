package git

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// AuthorFilter keeps revisions whose author matches include/exclude glob
// patterns.
type AuthorFilter struct {
	Include []string
	Exclude []string
}

// NewAuthorFilter validates the patterns and returns a filter.
func NewAuthorFilter(include, exclude []string) (*AuthorFilter, error) {
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid author pattern %q", p)
		}
	}
	return &AuthorFilter{Include: include, Exclude: exclude}, nil
}

// Matches reports whether a revision by author passes the filter.
func (f *AuthorFilter) Matches(author string) bool {
	if f == nil {
		return true
	}

	// Check exclude patterns first
	for _, pattern := range f.Exclude {
		if matched, _ := doublestar.Match(pattern, author); matched {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}

	for _, pattern := range f.Include {
		if matched, _ := doublestar.Match(pattern, author); matched {
			return true
		}
	}
	return false
}

// Apply returns the revisions of snap that pass the filter, in order.
func (f *AuthorFilter) Apply(snap Snapshot) []Revision {
	out := make([]Revision, 0, snap.Len())
	for _, r := range snap.All() {
		if f.Matches(r.Author) {
			out = append(out, r)
		}
	}
	return out
}
