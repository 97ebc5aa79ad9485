package model

// Stats is the admin dashboard aggregate. Admin brokers are not counted.
type Stats struct {
	TotalBrokers     int64 `db:"total_brokers"     json:"totalBrokers"`
	TotalCustomers   int64 `db:"total_customers"   json:"totalCustomers"`
	ActiveCustomers  int64 `db:"active_customers"  json:"activeCustomers"`
	PendingCustomers int64 `db:"pending_customers" json:"pendingCustomers"`
}
