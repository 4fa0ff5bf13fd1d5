package render

import (
	"errors"
	"fmt"
)

// MissingColumnError reports a ValueRecords row that lacks a value for a
// column declared in its header. It signals a malformed test fixture, not a
// transient condition: there is no retry and no partial table.
type MissingColumnError struct {
	// Column is the header column the row has no value for.
	Column string

	// Row is the zero-based index of the offending row.
	Row int
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("row %d has no value for column %q", e.Row, e.Column)
}

// IsMissingColumn returns true if the error is a MissingColumnError.
// Uses errors.As to handle wrapped errors.
func IsMissingColumn(err error) bool {
	var me *MissingColumnError
	return errors.As(err, &me)
}

// UnhandledStepError reports a Step implementation outside the closed
// variant set. Go cannot enforce switch exhaustiveness statically, so the
// renderer fails fast and loudly instead of silently skipping the step.
type UnhandledStepError struct {
	// Step is the unrecognized value.
	Step any
}

// Error implements the error interface.
func (e *UnhandledStepError) Error() string {
	return fmt.Sprintf("unhandled step variant %T", e.Step)
}
