package model

import (
	"time"

	"github.com/google/uuid"
)

// Project member roles.
const (
	RoleAdmin  = "Admin"
	RoleMember = "Member"
)

// Project groups tasks and assets and carries its own membership list.
// CreatorID is nullable so the project survives deletion of its creator.
type Project struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	CreatorID   *uuid.UUID `gorm:"type:uuid;index" json:"creator_id"`

	Creator *User           `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID;references:ID" json:"members,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectUpdate is used for partial updates on a project.
type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProjectMember is the (project, user) join row carrying a role. It is a
// first-class entity with its own id; the pair is unique.
type ProjectMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_user" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);default:'Member'" json:"role"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}

// IsAdmin reports whether the membership carries the admin role.
func (m *ProjectMember) IsAdmin() bool {
	return m.Role == RoleAdmin
}
