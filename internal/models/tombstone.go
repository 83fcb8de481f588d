package models

import "time"

// Tombstone is a persisted deletion marker. The storage façade keeps an
// in-memory suppression set for the hot path and writes tombstones
// best-effort so deletions survive process restarts and sync passes.
type Tombstone struct {
	TombstoneID uint64    `gorm:"primaryKey;autoIncrement"`
	EntityKind  string    `gorm:"size:32;not null;index:idx_tombstone_entity,unique"`
	EntityID    uint64    `gorm:"not null;index:idx_tombstone_entity,unique"`
	DeletedAt   time.Time `gorm:"not null"`
}

// TableName overrides the table name for Tombstone
func (Tombstone) TableName() string {
	return "tombstones"
}
