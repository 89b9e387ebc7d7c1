package model

import (
	"time"

	"github.com/google/uuid"
)

// Subtask belongs to exactly one task and carries at most one assignee.
// The assignee, when set, must be the parent task's creator or one of its
// assignees; the usecase layer enforces this on create and update.
type Subtask struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"task_id"`
	Text        string     `gorm:"type:varchar(200);not null" json:"text"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`

	Task     *Task `gorm:"foreignKey:TaskID;references:ID" json:"task,omitempty"`
	Assignee *User `gorm:"foreignKey:AssigneeID;references:ID" json:"assignee,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Subtask) TableName() string {
	return "subtasks"
}

// SubtaskUpdate is used for partial updates on a subtask. AssigneeID uses a
// double pointer so "clear the assignee" and "leave unchanged" are distinct.
type SubtaskUpdate struct {
	Text        *string     `json:"text"`
	AssigneeID  **uuid.UUID `json:"assignee_id"`
	IsCompleted *bool       `json:"is_completed"`
}
