package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Submission statuses. "owned" is the canonical spelling; rows written as
// "own" by the legacy importer are normalized on read.
const (
	StatusPending   = "pending"
	StatusOwned     = "owned"
	StatusDuplicate = "duplicate"
	StatusExpired   = "expired"
)

// Follow-up statuses a marketer can set on their own submissions.
const (
	FollowUpFollowUp   = "follow-up"
	FollowUpPending    = "pending"
	FollowUpNoResponse = "no_response"
	FollowUpClosing    = "closing"
)

// ErrOwnershipTaken is returned by the storage layer when an insert or update
// would produce a second 'owned' row for the same dedup key.
var ErrOwnershipTaken = errors.New("an owned submission already exists for this lead")

// ErrSubmissionNotFound is returned when the target row is absent or not
// visible to the caller.
var ErrSubmissionNotFound = errors.New("submission not found")

type Submission struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	Name                 string     `json:"name"`
	PhoneNumber          string     `json:"phone_number"`
	ProjectInterestID    string     `json:"project_interest_id"`
	Notes                string     `json:"notes,omitempty"`
	Status               string     `json:"status"`
	FollowUpStatus       string     `json:"follow_up_status,omitempty"`
	IsHotLead            bool       `json:"is_hot_lead"`
	OriginalSubmissionID string     `json:"original_submission_id,omitempty"`
	OwnershipExpiresAt   *time.Time `json:"ownership_expires_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Display fields joined from users, populated by list queries.
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`

	// Derived, never persisted. Recomputed from the chain on every read.
	DuplicateTier  int          `json:"duplicate_tier,omitempty"`
	DuplicateChain []ChainEntry `json:"duplicate_chain,omitempty"`
}

// ChainEntry is one member of a dedup-key group annotated with its tier,
// the 1-based rank by ascending creation time.
type ChainEntry struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Tier      int       `json:"tier"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSubmission(userID, name, phoneNumber, projectInterestID, notes string) *Submission {
	now := time.Now()
	return &Submission{
		ID:                uuid.New().String(),
		UserID:            userID,
		Name:              name,
		PhoneNumber:       phoneNumber,
		ProjectInterestID: projectInterestID,
		Notes:             notes,
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// NormalizeStatus maps the legacy "own" spelling to the canonical "owned".
func NormalizeStatus(status string) string {
	if status == "own" {
		return StatusOwned
	}
	return status
}

func IsValidFollowUpStatus(status string) bool {
	switch status {
	case FollowUpFollowUp, FollowUpPending, FollowUpNoResponse, FollowUpClosing:
		return true
	}
	return false
}
