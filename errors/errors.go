package errors

import "fmt"

// SheetError wraps a specific error with the workbook sheet it occurred in.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	// ErrTabsMissing is shown verbatim to the planner when neither the named
	// nor the positional source tabs can be found.
	ErrTabsMissing   = fmt.Errorf("Tabs missing.")
	ErrNoForecast    = fmt.Errorf("no forecast loaded")
	ErrParseBusy     = fmt.Errorf("an upload is already being parsed")
	ErrInvalidBudget = fmt.Errorf("concurrent-agent budget must be positive")
)
