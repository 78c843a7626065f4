package catalog

import "time"

// TopicRecord represents a catalog topic persisted in the database. The
// primary key doubles as the learning-path position, so ordering is always
// numeric rather than derived from the slug.
type TopicRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"size:255;uniqueIndex:idx_topics_slug;not null"`
	Title     string `gorm:"size:255;not null"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName defines the table name for the topic model.
func (TopicRecord) TableName() string {
	return "topics"
}
