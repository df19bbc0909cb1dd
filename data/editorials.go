package data

import "time"

// The Editorial struct contains the data fields for a publishing house.
// Books reference an editorial by id; editorial records themselves are
// read-only in this service.
type Editorial struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	MaximumBooks int64     `json:"maximum_books"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
