package models

import "time"

const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

type Notification struct {
	ID          string            `bson:"id" json:"id"`
	RecipientID string            `bson:"recipientId" json:"recipientId"`
	SenderID    string            `bson:"senderId,omitempty" json:"senderId,omitempty"`
	Type        string            `bson:"type" json:"type"`
	Title       string            `bson:"title" json:"title"`
	Message     string            `bson:"message" json:"message"`
	TaskID      string            `bson:"taskId,omitempty" json:"taskId,omitempty"`
	Metadata    map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	IsRead      bool              `bson:"isRead" json:"isRead"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
}
