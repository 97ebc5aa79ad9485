package model

import "time"

const (
	AggregateCustomer   = "customer"
	CustomerEventsTopic = "customer.events"
)

// OutboxEvent is a row of the outbox table; CDC relays it to Kafka by Topic.
type OutboxEvent struct {
	ID          int64     `db:"id"`
	Aggregate   string    `db:"aggregate"`    // "customer"
	AggregateID string    `db:"aggregate_id"` // customer.ID
	Topic       string    `db:"topic"`
	Payload     []byte    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
}
