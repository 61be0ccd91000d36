package entity

import "time"

// ProjectInterest is the project a lead is interested in. It is half of the
// dedup key (phone_number, project_interest_id).
type ProjectInterest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
