package dto

import (
	"time"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
)

// DocumentNumberResponse is the result of one sequence allocation.
type DocumentNumberResponse struct {
	ScopeName string `json:"scopeName"`
	Number    string `json:"number"` // Formatted, e.g. "01" ... "99", "100"
	Value     int64  `json:"value"`  // Raw high-water mark
}

// ConfigureScopeRequest sets a scope's zero-padding width.
type ConfigureScopeRequest struct {
	PadWidth int `json:"padWidth" binding:"required,min=1,max=12"`
}

// SequenceScopeResponse reports a scope's counter state.
type SequenceScopeResponse struct {
	ScopeName     string    `json:"scopeName"`
	HighWaterMark int64     `json:"highWaterMark"`
	PadWidth      int       `json:"padWidth"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToSequenceScopeResponse converts a domain.DocumentSequence to its DTO
func ToSequenceScopeResponse(s *domain.DocumentSequence) SequenceScopeResponse {
	return SequenceScopeResponse{
		ScopeName:     s.ScopeName,
		HighWaterMark: s.HighWaterMark,
		PadWidth:      s.PadWidth,
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}
