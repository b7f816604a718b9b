package model

import "time"

// User is keyed by the identity provider's subject claim, which is also the
// user_id every task and conversation is scoped to.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
