package models

import "time"

// Host represents a collection host location. Collection records reference
// hosts by name string, not by foreign key, so a rename requires a bulk
// rewrite of matching records.
type Host struct {
	HostID    uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;size:255;not null"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Driver represents a delivery driver.
type Driver struct {
	DriverID  uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:32"`
	Email     string `gorm:"size:255"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recipient represents a recipient organization.
type Recipient struct {
	RecipientID uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:255;not null"`
	Phone       string `gorm:"size:32"`
	Region      string `gorm:"size:64"`
	Active      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name for Host
func (Host) TableName() string {
	return "hosts"
}

// TableName overrides the table name for Driver
func (Driver) TableName() string {
	return "drivers"
}

// TableName overrides the table name for Recipient
func (Recipient) TableName() string {
	return "recipients"
}
