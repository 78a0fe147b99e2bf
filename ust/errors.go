package ust

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrTypeMismatch       = errors.New("attribute has the wrong type")
	ErrStructuralMismatch = errors.New("operand is not a sequence")
	ErrRangeEmpty         = errors.New("sequence has no voiced notes")
)

// TypeMismatchError names the attribute that failed validation.
type TypeMismatchError struct {
	Attr string
	Want Kind
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attribute %s: want %s, got %s", e.Attr, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// ParseError is a value in a project file that could not be coerced to its
// attribute's type, or a line that is not key=value.
type ParseError struct {
	Line  int
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s=%s: %v", e.Line, e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
