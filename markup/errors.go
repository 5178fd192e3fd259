package markup

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoContent is returned by the file helpers when there is nothing to read.
	ErrNoContent = errors.New("no content")

	// ErrTokenize means that no token pattern matched at the scan position.
	ErrTokenize = errors.New("unrecognized markup")

	// ErrMalformedTag means the tag delimiters were missing or the tag had no name.
	ErrMalformedTag = errors.New("malformed tag")

	// ErrMalformedAttribute means an attribute key had no value, or the
	// attribute text contained something that is neither a key nor a value.
	ErrMalformedAttribute = errors.New("malformed attribute")

	// ErrUnbalancedTag means a closing tag had no matching open element,
	// or the input ended with elements still open.
	ErrUnbalancedTag = errors.New("unbalanced tag")
)

// SyntaxError locates a parse failure in the source. Kind is one of the
// Err* values above and is what errors.Is matches against.
type SyntaxError struct {
	Filename string
	Offset   int
	Line     int
	Column   int
	Kind     error
	Msg      string
}

func (e *SyntaxError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %v: %s", name, e.Line, e.Column, e.Kind, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// position converts a byte offset into a 1-based line and column.
func position(src string, offset int) (line, column int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	column = offset - strings.LastIndexByte(before, '\n')
	return line, column
}

func newSyntaxError(fileName, src string, offset int, kind error, format string, args ...any) *SyntaxError {
	line, col := position(src, offset)
	return &SyntaxError{
		Filename: fileName,
		Offset:   offset,
		Line:     line,
		Column:   col,
		Kind:     kind,
		Msg:      fmt.Sprintf(format, args...),
	}
}
