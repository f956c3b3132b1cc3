package entity

import "time"

// KVEntry - one persisted key of a client scope (blank drafts, checkbox states,
// session token, cached progress, quiz state)
type KVEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"type:text;uniqueIndex;not null" json:"key"` // "<client_id>:lesson-1-story-field-0"
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
