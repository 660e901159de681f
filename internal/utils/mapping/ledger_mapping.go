package mapping

import (
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/models"
)

// ToModelLedgerEvent converts a domain LedgerEvent to a model LedgerEvent
func ToModelLedgerEvent(d domain.LedgerEvent) models.LedgerEvent {
	return models.LedgerEvent{
		EventID:     d.EventID,
		PartyID:     d.PartyID,
		Kind:        models.EventKind(d.Kind),
		SourceKind:  string(d.SourceKind),
		Amount:      d.Amount,
		OccurredAt:  d.OccurredAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEvent converts a model LedgerEvent to a domain LedgerEvent
func ToDomainLedgerEvent(m models.LedgerEvent) domain.LedgerEvent {
	return domain.LedgerEvent{
		EventID:     m.EventID,
		PartyID:     m.PartyID,
		Kind:        domain.EventKind(m.Kind),
		SourceKind:  domain.ChargeSourceKind(m.SourceKind),
		Amount:      m.Amount,
		OccurredAt:  m.OccurredAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEventSlice converts a slice of model LedgerEvents to domain LedgerEvents
func ToDomainLedgerEventSlice(ms []models.LedgerEvent) []domain.LedgerEvent {
	ds := make([]domain.LedgerEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEvent(m)
	}
	return ds
}
