package services

import "fmt"

// FieldCoercionError describes a cell that could not be converted to its
// column's type. The row carrying it is left out of the cleaned catalog.
type FieldCoercionError struct {
	Line  int
	App   string
	Field string
	Value string
	Err   error
}

func (e *FieldCoercionError) Error() string {
	return fmt.Sprintf("line %d (%s): cannot coerce %s %q: %v", e.Line, e.App, e.Field, e.Value, e.Err)
}

func (e *FieldCoercionError) Unwrap() error { return e.Err }
