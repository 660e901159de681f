package accounting

import (
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Summarize derives a party's balance position from its full event history.
// It is a pure function: replaying the same ordered history always yields
// the same figures, which is what makes the ledger auditable. TotalCharged
// sums charges and signed adjustments, TotalPaid sums payments, and
// Outstanding is the raw difference with no clamping, so a negative value
// stays visible as a data-integrity signal.
func Summarize(partyID string, events []domain.LedgerEvent) domain.BalanceSummary {
	totalCharged := decimal.Zero
	totalPaid := decimal.Zero

	for _, ev := range events {
		switch {
		case ev.IsCharge():
			totalCharged = totalCharged.Add(ev.Amount)
		case ev.Kind == domain.EventPayment:
			totalPaid = totalPaid.Add(ev.Amount)
		}
	}

	return domain.BalanceSummary{
		PartyID:      partyID,
		TotalCharged: totalCharged,
		TotalPaid:    totalPaid,
		Outstanding:  totalCharged.Sub(totalPaid),
	}
}
