package domain

import "time"

// DefaultSequencePadWidth is the zero-padding width applied to a scope
// unless it was configured otherwise ("01", "02", ... then "100" unpadded).
const DefaultSequencePadWidth = 2

// DocumentSequence is a named counter domain for document numbering
// (e.g. "sales-bill" vs "purchase-bill"). The high-water mark only ever
// increases; numbers are never reclaimed even if the document that consumed
// one is voided, so gaps are acceptable and duplicates are not.
type DocumentSequence struct {
	ScopeName     string    `json:"scopeName"` // Primary Key
	HighWaterMark int64     `json:"highWaterMark"`
	PadWidth      int       `json:"padWidth"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
