package model

import (
	"time"

	"github.com/google/uuid"
)

// Note is a private per-user note, unrelated to projects or tasks.
type Note struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"type:varchar(200);not null" json:"title"`
	Content  string    `gorm:"type:text" json:"content"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	IsPinned bool      `gorm:"default:false" json:"is_pinned"`

	Owner *User `gorm:"foreignKey:OwnerID;references:ID" json:"owner,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}

// NoteUpdate is used for partial updates on a note.
type NoteUpdate struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPinned *bool   `json:"is_pinned"`
}
