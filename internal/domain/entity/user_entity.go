package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Users are created inactive and become active through the activation-token
// flow or an admin toggle; nothing else mutates them.
type User struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
