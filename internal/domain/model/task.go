package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	StatusTodo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Task is the central work item. CreatorID is nullable (survives creator
// deletion); ProjectID is optional — standalone tasks exist outside any
// project. Assignees is a many-to-many set of users.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	CreatorID   *uuid.UUID `gorm:"type:uuid;index" json:"creator_id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Status      string     `gorm:"type:varchar(20);default:'To Do'" json:"status"`
	Priority    string     `gorm:"type:varchar(20);default:'Medium'" json:"priority"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	DueTime     *string    `gorm:"type:time" json:"due_time"`

	Creator   *User     `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Project   *Project  `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Assignees []User    `gorm:"many2many:task_assignees;joinForeignKey:TaskID;joinReferences:UserID" json:"assignees"`
	Subtasks  []Subtask `gorm:"foreignKey:TaskID;references:ID" json:"subtasks,omitempty"`
	Assets    []Asset   `gorm:"foreignKey:TaskID;references:ID" json:"assets,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsAssignee reports whether the user appears in the task's assignee set.
// Assignees must be preloaded.
func (t *Task) IsAssignee(userID uuid.UUID) bool {
	for _, u := range t.Assignees {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// IsCreator reports whether the user created the task.
func (t *Task) IsCreator(userID uuid.UUID) bool {
	return t.CreatorID != nil && *t.CreatorID == userID
}

// TaskUpdate is used for partial updates on a task.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' 'Done'"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	DueDate     *time.Time `json:"due_date"`
	DueTime     *string    `json:"due_time"`
}

// TaskAssignee is the join row backing Task.Assignees. Declared so cascades
// can address the join table directly.
type TaskAssignee struct {
	TaskID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (TaskAssignee) TableName() string {
	return "task_assignees"
}

// ImportantTask is a per-user bookmark on a task, independent of assignment
// and membership. The (user, task) pair is unique.
type ImportantTask struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_task" json:"task_id"`
	MarkedAt time.Time `gorm:"autoCreateTime" json:"marked_at"`

	Task *Task `gorm:"foreignKey:TaskID;references:ID" json:"task,omitempty"`
}

func (ImportantTask) TableName() string {
	return "important_tasks"
}
