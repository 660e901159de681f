package dto

import (
	"time"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
)

// CreatePartyRequest defines the data needed to create a new party.
type CreatePartyRequest struct {
	Kind    domain.PartyKind `json:"kind" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Name    string           `json:"name" binding:"required"`
	Phone   string           `json:"phone"`   // Optional
	Address string           `json:"address"` // Optional
}

// UpdatePartyRequest defines the mutable contact fields of a party.
// Identity (ID, kind) is immutable. Pointers distinguish "not provided"
// from zero-value updates.
type UpdatePartyRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ListPartiesParams holds parameters for listing parties.
type ListPartiesParams struct {
	Kind   *domain.PartyKind `form:"kind" binding:"omitempty,oneof=CUSTOMER SUPPLIER"`
	Limit  int               `form:"limit"`
	Offset int               `form:"offset"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID       string           `json:"partyID"`
	Kind          domain.PartyKind `json:"kind"`
	Name          string           `json:"name"`
	Phone         string           `json:"phone"`
	Address       string           `json:"address"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:       p.PartyID,
		Kind:          p.Kind,
		Name:          p.Name,
		Phone:         p.Phone,
		Address:       p.Address,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToPartyResponses converts a slice of domain parties to response DTOs
func ToPartyResponses(parties []domain.Party) []PartyResponse {
	resp := make([]PartyResponse, len(parties))
	for i := range parties {
		resp[i] = ToPartyResponse(&parties[i])
	}
	return resp
}
