package propertypath

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned when parsing an empty property id.
	ErrEmptyPath = errors.New("empty property path")

	// ErrSyntax is wrapped by SyntaxError.
	ErrSyntax = errors.New("invalid property path syntax")

	// ErrPathNotFound is returned when a path step
	// does not exist on the type it is applied to.
	ErrPathNotFound = errors.New("property path not found")

	// ErrIndexOutOfRange is returned when an index step
	// is out of range of the slice or array it is applied to.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound is returned when a key step
	// references a key that is not in the map it is applied to.
	ErrKeyNotFound = errors.New("key not found")

	// ErrReadOnly is returned when setting a property
	// that has no setter or can't be addressed.
	ErrReadOnly = errors.New("property is read-only")

	// ErrInstantiation is returned when a nil intermediate value
	// of a path can't be materialized while setting a property.
	ErrInstantiation = errors.New("can't instantiate value")

	// ErrLossyConversion is returned when a number doesn't fit
	// into the number type it is assigned to.
	ErrLossyConversion = errors.New("lossy number conversion")
)

// SyntaxError describes a malformed property id.
type SyntaxError struct {
	Path string
	Pos  int
	Msg  string
}

func newSyntaxError(path string, pos int, msg string) *SyntaxError {
	return &SyntaxError{Path: path, Pos: pos, Msg: msg}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s %q at position %d: %s", ErrSyntax, e.Path, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// PathError records the path and the failing step
// of an error that happened while evaluating a Path.
type PathError struct {
	Path Path
	Step int
	Err  error
}

func newPathError(path Path, step int, err error) *PathError {
	return &PathError{Path: path, Step: step, Err: err}
}

func (e *PathError) Error() string {
	if e.Step < 0 || e.Step >= len(e.Path) {
		return fmt.Sprintf("property %q: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("property %q at %q: %s", e.Path, e.Path[:e.Step+1], e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
