package domain

// PartyKind distinguishes the two commercial counterparty types.
type PartyKind string

const (
	Customer PartyKind = "CUSTOMER"
	Supplier PartyKind = "SUPPLIER"
)

// Party represents a commercial counterparty with a running ledger balance.
// Identity (PartyID, Kind) is immutable after creation; contact fields are
// mutable. Parties are never deleted while charges reference them, so no
// delete operation exists at all.
type Party struct {
	PartyID string    `json:"partyID"` // Primary Key (UUID)
	Kind    PartyKind `json:"kind"`    // CUSTOMER or SUPPLIER
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`   // Nullable contact info
	Address string    `json:"address"` // Nullable contact info
	AuditFields
}
