package domain

import "time"

// User models an account that can sign in. Admin accounts manage offers.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is what a verified bearer token resolves to. IsAdmin always comes
// from the credential store, never from the token claims.
type Identity struct {
	ID      string
	IsAdmin bool
}
