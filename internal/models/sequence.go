package models

import "time"

// DocumentSequence represents a scope's numbering counter row. The
// high-water mark is only ever mutated through the atomic upsert increment
// in the sequence repository.
type DocumentSequence struct {
	ScopeName     string    `db:"scope_name"`
	HighWaterMark int64     `db:"high_water_mark"`
	PadWidth      int       `db:"pad_width"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
