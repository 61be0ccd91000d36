package entity

import (
	"time"

	"github.com/google/uuid"
)

// OverrideLog is the audit record for an admin ownership override.
// Append-only, immutable once created.
type OverrideLog struct {
	ID           string    `json:"id"`
	AdminID      string    `json:"admin_id"`
	SubmissionID string    `json:"submission_id"`
	OldOwnerID   string    `json:"old_owner_id,omitempty"`
	NewOwnerID   string    `json:"new_owner_id"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`

	// Display fields joined from users, populated by list queries.
	AdminName    string `json:"admin_name,omitempty"`
	OldOwnerName string `json:"old_owner_name,omitempty"`
	NewOwnerName string `json:"new_owner_name,omitempty"`
}

func NewOverrideLog(adminID, submissionID, oldOwnerID, newOwnerID, reason string) *OverrideLog {
	return &OverrideLog{
		ID:           uuid.New().String(),
		AdminID:      adminID,
		SubmissionID: submissionID,
		OldOwnerID:   oldOwnerID,
		NewOwnerID:   newOwnerID,
		Reason:       reason,
		CreatedAt:    time.Now(),
	}
}
