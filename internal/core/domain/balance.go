package domain

import "github.com/shopspring/decimal"

// BalanceSummary is the derived outstanding position of a party. It is
// always recomputed from the stored event history, never read from a
// mutable counter, so the figures cannot drift from the ledger.
type BalanceSummary struct {
	PartyID      string          `json:"partyID"`
	TotalCharged decimal.Decimal `json:"totalCharged"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	// Outstanding is the raw arithmetic difference. A negative value is a
	// data-integrity signal (an adjustment posted after payments) and is
	// reported as-is rather than clamped.
	Outstanding decimal.Decimal `json:"outstanding"`
}
