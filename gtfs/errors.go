package gtfs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Value-level decode failures. These are always local to a single row.
var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidTime    = errors.New("invalid service time")
	ErrInvalidColor   = errors.New("invalid color")
	ErrOutOfRange     = errors.New("value out of range")
	ErrNotANumber     = errors.New("not a number")
	ErrInvalidBoolean = errors.New("invalid boolean")
)

// Row-level failures that are not tied to a value decoder.
var (
	ErrMissingField = errors.New("missing required field")
	ErrDuplicateID  = errors.New("duplicate identifier")
)

// Feed-level failures. These abort assembly.
var (
	ErrMissingRequiredFile             = errors.New("missing required file")
	ErrAmbiguousConditionalRequirement = errors.New("conditional file requirement not satisfied")
	ErrSourceUnavailable               = errors.New("source unavailable")
)

// Extraction failures.
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrHeaderMismatch = errors.New("header row unreadable")
)

// DecodeError reports a raw cell value that could not be decoded.
type DecodeError struct {
	Err   error
	Value string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(kind error, value string) error {
	return &DecodeError{Err: kind, Value: value}
}

// RowError attributes a failure to a single row and column of a file.
// Line is 1-based and counts the header row, so the first data row is line 2.
type RowError struct {
	File   string
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %s: %v", e.File, e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// FeedError is a fatal failure while assembling a feed.
type FeedError struct {
	Kind   error
	File   string
	Detail string
	Err    error
}

func (e *FeedError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.File != "" {
		fmt.Fprintf(&b, " %q", e.File)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FeedError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ExtractionError is a fatal failure of a custom extraction.
type ExtractionError struct {
	Kind   error
	File   string
	Column string
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extract %s: %v", e.File, e.Kind)
	if e.Column != "" {
		msg += fmt.Sprintf(" %q", e.Column)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// RowErrors is the ordered list of row-level problems found while decoding.
type RowErrors []*RowError

// Err joins all row errors, or returns nil when there are none.
func (re RowErrors) Err() error {
	if len(re) == 0 {
		return nil
	}
	errs := make([]error, len(re))
	for i, e := range re {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// ByFile groups the errors by file name, preserving their order within a file.
func (re RowErrors) ByFile() map[string]RowErrors {
	grouped := make(map[string]RowErrors)
	for _, e := range re {
		grouped[e.File] = append(grouped[e.File], e)
	}
	return grouped
}

// Files returns the sorted names of files that have at least one error.
func (re RowErrors) Files() []string {
	seen := make(map[string]struct{})
	var files []string
	for _, e := range re {
		if _, ok := seen[e.File]; ok {
			continue
		}
		seen[e.File] = struct{}{}
		files = append(files, e.File)
	}
	sort.Strings(files)
	return files
}
