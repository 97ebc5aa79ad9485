package model

import "time"

// Broker is a customs broker account. PasswordHash never leaves the process.
type Broker struct {
	ID           string    `db:"id"           json:"id"`
	Name         string    `db:"name"         json:"name"`
	Email        string    `db:"email"        json:"email"`
	PasswordHash string    `db:"password"     json:"-"`
	CompanyName  *string   `db:"company_name" json:"companyName"` // nullable
	IsAdmin      bool      `db:"is_admin"     json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at"   json:"createdAt"`
}

// BrokerWithCount is a non-admin broker annotated for the admin view.
type BrokerWithCount struct {
	Broker
	CustomerCount int64 `db:"customer_count" json:"customerCount"`
}
