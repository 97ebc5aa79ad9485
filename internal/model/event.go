package model

import "time"

type EventType string

const (
	EventCustomerCreated       EventType = "created"
	EventCustomerStatusChanged EventType = "status_changed"
)

func (t EventType) Valid() bool {
	return t == EventCustomerCreated || t == EventCustomerStatusChanged
}

// CustomerEvent is the payload written to the outbox, published on Kafka
// and stored in ClickHouse. FromStatus is empty for "created".
type CustomerEvent struct {
	ID         string         `db:"id"          json:"id"` // event ULID
	CustomerID string         `db:"customer_id" json:"customerId"`
	BrokerID   string         `db:"broker_id"   json:"brokerId"` // owner
	ActorID    string         `db:"actor_id"    json:"actorId"`  // who made the change
	Type       EventType      `db:"type"        json:"type"`
	FromStatus CustomerStatus `db:"from_status" json:"fromStatus,omitempty"`
	ToStatus   CustomerStatus `db:"to_status"   json:"toStatus"`
	OccurredAt time.Time      `db:"occurred_at" json:"occurredAt"`
}
