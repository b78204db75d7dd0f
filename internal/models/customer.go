package models

import "time"

// RoleAdmin is the only role allowed to create and delete customers.
const RoleAdmin = "admin"

type Customer struct {
	ID           string    `json:"customer_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Plant        string    `json:"plant"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
}

