package domainerrors

import (
	"fmt"
	"strings"
)

// CascadeError reports a cascading delete that did not complete. DeletedIDs
// were removed before the failure; RemainingIDs are still present in the store
// and need operator attention, because some of them may now reference a parent
// that is gone.
type CascadeError struct {
	DeletedIDs   []string
	RemainingIDs []string
	cause        error
}

// NewCascadeError constructs a CascadeError around the failing store error.
func NewCascadeError(deleted, remaining []string, cause error) *CascadeError {
	return &CascadeError{DeletedIDs: deleted, RemainingIDs: remaining, cause: cause}
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade delete incomplete: %d deleted, %d remaining [%s]: %v",
		len(e.DeletedIDs), len(e.RemainingIDs), strings.Join(e.RemainingIDs, ","), e.cause)
}

func (e *CascadeError) Unwrap() error { return e.cause }

// Code makes CascadeError a Coded error so HasCode and CodeOf recognize it.
func (e *CascadeError) Code() Code { return CodeCascadeFailure }
