// Package deck defines question-set entries, their on-disk formats, and the
// sources that load and save them.
package deck

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrIO reports that a set could not be read from or written to its source.
	ErrIO = errors.New("question set I/O failed")

	// ErrParse reports a malformed question set.
	ErrParse = errors.New("malformed question set")

	// ErrNotFound reports a set name with no backing data. It wraps ErrIO.
	ErrNotFound = fmt.Errorf("%w: set not found", ErrIO)

	// ErrInvalidName reports a set name that cannot be used by a source. It wraps ErrIO.
	ErrInvalidName = fmt.Errorf("%w: invalid set name", ErrIO)
)

// Entry is a single prompt/answer pair.
type Entry struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// String renders the entry the way the editor lists it.
func (e Entry) String() string {
	return e.Prompt + ", " + e.Answer
}

// SetInfo describes a set available from a Source.
type SetInfo struct {
	Name    string
	Entries int
}

// Source loads and saves whole question sets by name.
type Source interface {
	// Load returns the entries of the named set in stored order.
	Load(ctx context.Context, name string) ([]Entry, error)

	// Save replaces the named set with entries.
	Save(ctx context.Context, name string, entries []Entry) error

	// List returns the sets available from the source, sorted by name.
	List(ctx context.Context) ([]SetInfo, error)
}

// ParseError locates a malformed record.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

// Unwrap exposes both the cause and ErrParse to errors.Is.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Clone returns an independent copy of entries. A nil input yields an empty,
// non-nil slice.
func Clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
