package errors

import (
	"errors"
	"fmt"
)

// Re-exported standard helpers so callers need only this package.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

var (
	// ErrNotFound indicates the entity is absent or filtered to invisible
	// by the access policy.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the access policy denies the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotAssignee indicates a leave-task precondition failure: the user
	// is not among the task's assignees.
	ErrNotAssignee = errors.New("user is not an assignee of this task")

	// ErrConflict indicates a uniqueness violation, e.g. adding a project
	// member twice or double-marking a task important.
	ErrConflict = errors.New("conflict")
)

// ValidationError is a field-attributed validation failure. It is recovered
// locally and surfaced as a structured message, never as a generic fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewInvalidAssigneeError reports a subtask assignee constraint violation:
// the assignee must be the parent task's creator or one of its assignees.
func NewInvalidAssigneeError() *ValidationError {
	return &ValidationError{
		Field:   "assignee",
		Message: "assignee must be the task creator or one of its assignees",
	}
}

// TxAbortedError wraps an infrastructure failure during a cascade. The
// store is left unchanged; the operation is safe to retry.
type TxAbortedError struct {
	Err error
}

func (e *TxAbortedError) Error() string {
	return fmt.Sprintf("transaction aborted: %v", e.Err)
}

func (e *TxAbortedError) Unwrap() error {
	return e.Err
}

// NewTxAbortedError wraps err unless it already carries a domain meaning
// (sentinels and validation errors pass through untouched so callers can
// distinguish precondition failures from infrastructure aborts).
func NewTxAbortedError(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotAssignee) || errors.Is(err, ErrConflict) || errors.As(err, &ve) {
		return err
	}
	return &TxAbortedError{Err: err}
}

// CodeOf maps an error to its wire code.
func CodeOf(err error) string {
	var ve *ValidationError
	var tx *TxAbortedError
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrNotAssignee):
		return CodeNotAssignee
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.As(err, &ve):
		if ve.Field == "assignee" {
			return CodeInvalidAssignee
		}
		return CodeInvalidArgument
	case errors.As(err, &tx):
		return CodeTxAborted
	default:
		return CodeInternal
	}
}
