package domain

import "time"

// User is a registered storefront account. Authentication itself is cookie
// session based; the record exists mainly so orders can be attributed and the
// checkout form prefilled.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
