package progress

import "time"

// EntryRecord represents a ledger entry persisted in the database. The
// topic_id unique index enforces the one-entry-per-topic invariant, and the
// foreign key keeps the ledger referentially tied to the catalog.
type EntryRecord struct {
	ID        uint   `gorm:"primaryKey"`
	TopicID   int    `gorm:"uniqueIndex:idx_ledger_topic;not null"`
	Status    string `gorm:"size:32;not null"`
	Note      string `gorm:"size:1024"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName defines the table name for the ledger entry model.
func (EntryRecord) TableName() string {
	return "ledger_entries"
}
