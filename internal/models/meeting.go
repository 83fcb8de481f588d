package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meeting represents a scheduled volunteer meeting.
type Meeting struct {
	MeetingID   uint64    `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:255;not null"`
	ScheduledAt time.Time `gorm:"not null;index"`
	Location    string    `gorm:"size:255"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Message represents a dashboard broadcast message. MessageUID is a stable
// client-facing identifier assigned on create.
type Message struct {
	MessageID  uint64    `gorm:"primaryKey;autoIncrement"`
	MessageUID string    `gorm:"type:char(36);uniqueIndex;not null"`
	Sender     string    `gorm:"size:255;not null"`
	Body       string    `gorm:"type:text;not null"`
	SentAt     time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BeforeCreate GORM hook
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.MessageUID == "" {
		m.MessageUID = uuid.New().String()
	}
	return nil
}

// TableName overrides the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}
