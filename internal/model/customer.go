package model

import "time"

type CustomerStatus string

const (
	StatusActive   CustomerStatus = "active"
	StatusPending  CustomerStatus = "pending"
	StatusInactive CustomerStatus = "inactive"
)

func (s CustomerStatus) String() string { return string(s) }

func (s CustomerStatus) Valid() bool {
	return s == StatusActive || s == StatusPending || s == StatusInactive
}

// ParseCustomerStatus is strict: no trimming or case folding.
// Returns (value, true) if valid; otherwise ("", false).
func ParseCustomerStatus(s string) (CustomerStatus, bool) {
	st := CustomerStatus(s)
	if !st.Valid() {
		return "", false
	}
	return st, true
}

type CustomerType string

const (
	CustomerTypeExporter CustomerType = "exporter"
	CustomerTypeImporter CustomerType = "importer"
)

func (t CustomerType) String() string { return string(t) }

func (t CustomerType) Valid() bool {
	return t == CustomerTypeExporter || t == CustomerTypeImporter
}

// ParseCustomerType is strict like ParseCustomerStatus: "exporter" or "importer" only.
func ParseCustomerType(s string) (CustomerType, bool) {
	t := CustomerType(s)
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// Customer is an exporter or importer owned by exactly one broker.
type Customer struct {
	ID        string         `db:"id"         json:"id"`
	Name      string         `db:"name"       json:"name"`
	Email     string         `db:"email"      json:"email"`
	GSTIN     string         `db:"gstin"      json:"gstin"`
	Type      CustomerType   `db:"type"       json:"type"`   // exporter|importer
	Status    CustomerStatus `db:"status"     json:"status"` // active|pending|inactive
	BrokerID  string         `db:"broker_id"  json:"brokerId"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}
