package dto

import (
	"github.com/google/uuid"
)

// Task list orderings.
const (
	OrderByCreatedAt = "created_at"
	OrderByDueDate   = "due_date"
)

// TaskFilter is the predicate set for task listings. Criteria combine with
// logical AND. Boolean filters are tri-state: nil means "don't filter",
// true and false each select a half of the partition (e.g. CreatedByMe
// false means tasks NOT created by the caller).
type TaskFilter struct {
	Priority     string
	Status       string
	CreatorID    *uuid.UUID
	ProjectID    *uuid.UUID
	AssignedToMe *bool
	CreatedByMe  *bool
	DueToday     *bool
	Overdue      *bool

	// UserID is the caller, required by the *Me and visibility predicates.
	UserID uuid.UUID

	OrderBy string
	Limit   int
	Offset  int
}
