package model

import (
	"time"

	"github.com/google/uuid"
)

// Asset is an uploaded file reference. Exactly one of TaskID/ProjectID is
// set — an asset belongs to a task or to a project, never both and never
// neither. StorageKey addresses the blob in object storage; deleting the
// asset must release the blob.
type Asset struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FileName     string     `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType  string     `gorm:"type:varchar(255)" json:"content_type"`
	SizeBytes    int64      `json:"size_bytes"`
	StorageKey   string     `gorm:"type:varchar(512);not null" json:"-"`
	TaskID       *uuid.UUID `gorm:"type:uuid;index" json:"task_id"`
	ProjectID    *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	UploadedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"uploaded_by_id"`

	Task       *Task    `gorm:"foreignKey:TaskID;references:ID" json:"task,omitempty"`
	Project    *Project `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	UploadedBy *User    `gorm:"foreignKey:UploadedByID;references:ID" json:"uploaded_by,omitempty"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Asset) TableName() string {
	return "assets"
}
