package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/utils/accounting"
)

func event(kind domain.EventKind, amount string) domain.LedgerEvent {
	return domain.LedgerEvent{Kind: kind, Amount: decimal.RequireFromString(amount)}
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name            string
		events          []domain.LedgerEvent
		wantCharged     string
		wantPaid        string
		wantOutstanding string
	}{
		{
			name:            "empty history",
			events:          nil,
			wantCharged:     "0",
			wantPaid:        "0",
			wantOutstanding: "0",
		},
		{
			name: "charges only",
			events: []domain.LedgerEvent{
				event(domain.EventCharge, "1000.00"),
				event(domain.EventCharge, "250.50"),
			},
			wantCharged:     "1250.50",
			wantPaid:        "0",
			wantOutstanding: "1250.50",
		},
		{
			name: "charges and payments",
			events: []domain.LedgerEvent{
				event(domain.EventCharge, "1000.00"),
				event(domain.EventPayment, "400.00"),
				event(domain.EventPayment, "100.00"),
			},
			wantCharged:     "1000.00",
			wantPaid:        "500.00",
			wantOutstanding: "500.00",
		},
		{
			name: "negative adjustment reduces charged total",
			events: []domain.LedgerEvent{
				event(domain.EventCharge, "1000.00"),
				event(domain.EventAdjustment, "-150.00"),
				event(domain.EventPayment, "300.00"),
			},
			wantCharged:     "850.00",
			wantPaid:        "300.00",
			wantOutstanding: "550.00",
		},
		{
			name: "adjustment after payments drives outstanding negative",
			events: []domain.LedgerEvent{
				event(domain.EventCharge, "500.00"),
				event(domain.EventPayment, "500.00"),
				event(domain.EventAdjustment, "-200.00"),
			},
			wantCharged:     "300.00",
			wantPaid:        "500.00",
			wantOutstanding: "-200.00",
		},
		{
			name: "exactly settled",
			events: []domain.LedgerEvent{
				event(domain.EventCharge, "750.25"),
				event(domain.EventPayment, "750.25"),
			},
			wantCharged:     "750.25",
			wantPaid:        "750.25",
			wantOutstanding: "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary := accounting.Summarize("party-1", tc.events)

			assert.Equal(t, "party-1", summary.PartyID)
			assert.True(t, summary.TotalCharged.Equal(decimal.RequireFromString(tc.wantCharged)),
				"charged: got %s", summary.TotalCharged)
			assert.True(t, summary.TotalPaid.Equal(decimal.RequireFromString(tc.wantPaid)),
				"paid: got %s", summary.TotalPaid)
			assert.True(t, summary.Outstanding.Equal(decimal.RequireFromString(tc.wantOutstanding)),
				"outstanding: got %s", summary.Outstanding)
		})
	}
}

func TestSummarize_IsPure(t *testing.T) {
	events := []domain.LedgerEvent{
		event(domain.EventCharge, "100.00"),
		event(domain.EventPayment, "40.00"),
	}

	first := accounting.Summarize("p", events)
	second := accounting.Summarize("p", events)

	assert.True(t, first.Outstanding.Equal(second.Outstanding))
	assert.True(t, first.TotalCharged.Equal(second.TotalCharged))
}
