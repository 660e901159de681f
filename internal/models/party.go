package models

// PartyKind mirrors domain.PartyKind at the persistence layer.
type PartyKind string

// Party represents a counterparty row in the parties table. The row is also
// the SELECT ... FOR UPDATE lock target for per-party ledger serialization.
type Party struct {
	PartyID string    `db:"party_id"`
	Kind    PartyKind `db:"kind"`
	Name    string    `db:"name"`
	Phone   string    `db:"phone"`
	Address string    `db:"address"`
	AuditFields
}
