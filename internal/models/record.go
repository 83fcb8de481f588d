package models

import (
	"encoding/json"
	"time"
)

// GroupCollection is a single named group drop-off inside a collection record.
type GroupCollection struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CollectionRecord represents one sandwich collection log entry.
// GroupCollections holds either a JSON array of GroupCollection or, for rows
// imported from the legacy spreadsheet, a bare JSON string of free text.
type CollectionRecord struct {
	RecordID             uint64 `gorm:"primaryKey;autoIncrement"`
	CollectionDate       string `gorm:"size:10;not null;index:idx_records_date"`
	HostName             string `gorm:"size:255;not null;index:idx_records_host"`
	IndividualSandwiches int    `gorm:"not null;default:0"`
	GroupCollections     JSON   `gorm:"type:json"`
	SubmittedAt          time.Time `gorm:"not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName overrides the table name for CollectionRecord
func (CollectionRecord) TableName() string {
	return "collection_records"
}

// Groups decodes the group collections list. ok is false when the field holds
// legacy free text instead of a structured list.
func (r *CollectionRecord) Groups() (groups []GroupCollection, ok bool) {
	raw := []byte(r.GroupCollections.JSON)
	if len(raw) == 0 {
		return nil, true
	}
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, false
	}
	return groups, true
}

// GroupText returns the legacy free-text content, or "" for structured rows.
func (r *CollectionRecord) GroupText() string {
	var s string
	if err := json.Unmarshal([]byte(r.GroupCollections.JSON), &s); err != nil {
		return ""
	}
	return s
}

// TotalSandwiches is the invariant total: individual + sum of group counts.
// Legacy free-text group fields contribute zero.
func (r *CollectionRecord) TotalSandwiches() int {
	total := r.IndividualSandwiches
	if groups, ok := r.Groups(); ok {
		for _, g := range groups {
			total += g.Count
		}
	}
	return total
}
