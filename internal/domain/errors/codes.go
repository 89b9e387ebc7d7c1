package errors

// Error codes surfaced to API clients.
const (
	CodeInternal        = "INTERNAL"
	CodeNotFound        = "NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeNotAssignee     = "NOT_ASSIGNEE"
	CodeInvalidAssignee = "INVALID_ASSIGNEE"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeTxAborted       = "TX_ABORTED"
)
