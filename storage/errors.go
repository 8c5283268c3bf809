package storage

import "fmt"

// IOError reports a catalog source that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read catalog %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a catalog that is not valid delimited text or whose
// header or rows do not have the expected shape. Line is 0 when unknown.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse catalog %q line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse catalog %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
