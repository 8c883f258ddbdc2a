package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CATALOG_RELOADED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation used both for publishing ad-hoc
// events and for reconstructing events on the subscriber side.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the catalog pipeline.
const (
	TypeCatalogReloaded      = "CATALOG_RELOADED"
	TypeCatalogReloadRequest = "CATALOG_RELOAD_REQUEST"
	TypePolicyUpserted       = "POLICY_UPSERTED"
)

// NewCatalogReloaded is emitted after a full catalog replace succeeds.
func NewCatalogReloaded(policyCount, embeddedCount, skippedCount int) Event {
	return BaseEvent{
		Type: TypeCatalogReloaded,
		Data: map[string]interface{}{
			"policy_count":   policyCount,
			"embedded_count": embeddedCount,
			"skipped_count":  skippedCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewCatalogReloadRequest asks the reload worker to re-ingest the catalog.
func NewCatalogReloadRequest(requestedBy string) Event {
	return BaseEvent{
		Type: TypeCatalogReloadRequest,
		Data: map[string]interface{}{
			"requested_by": requestedBy,
		},
		OccurredAt: time.Now(),
	}
}

// NewPolicyUpserted is emitted after a single policy is written and queued
// for re-embedding.
func NewPolicyUpserted(policyId string) Event {
	return BaseEvent{
		Type: TypePolicyUpserted,
		Data: map[string]interface{}{
			"policy_id": policyId,
		},
		OccurredAt: time.Now(),
	}
}
