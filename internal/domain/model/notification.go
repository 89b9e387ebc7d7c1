package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification event types published to the sink and persisted per user.
const (
	NotificationMemberAdded     = "member_added"
	NotificationMemberRemoved   = "member_removed"
	NotificationAssigneeAdded   = "assignee_added"
	NotificationAssigneeRemoved = "assignee_removed"
	NotificationTaskAssigned    = "task_assigned"
	NotificationGeneric         = "generic"
)

// Notification is a persisted per-user event. Delivery over a live channel
// is handled by the notification sink; rows here back the inbox endpoints.
type Notification struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Type        string         `gorm:"type:varchar(50);default:'generic'" json:"type"`
	Message     string         `gorm:"type:text" json:"message"`
	Data        datatypes.JSON `gorm:"type:jsonb" json:"data"`
	IsRead      bool           `gorm:"default:false" json:"is_read"`

	Recipient *User `gorm:"foreignKey:RecipientID;references:ID" json:"recipient,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
