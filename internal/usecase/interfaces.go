package usecase

import (
	"context"
	"time"

	"github.com/prospekta/lead-tracker/internal/entity"
	"github.com/prospekta/lead-tracker/internal/infra/queue"
)

// ListFilters narrows submission list queries. Zero values mean "no filter".
type ListFilters struct {
	Status     string
	MarketerID string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
}

// StatusCounts aggregates submissions for the dashboard views.
type StatusCounts struct {
	Total     int
	Owned     int
	Duplicate int
	Expired   int
	HotLeads  int
}

type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, s *entity.Submission) error
	FindByID(ctx context.Context, id string) (*entity.Submission, error)
	// FindChain returns all submissions sharing the dedup key, ordered by
	// created_at ascending (ties broken by id), with user display fields joined.
	FindChain(ctx context.Context, phoneNumber, projectInterestID string) ([]*entity.Submission, error)
	ListByUser(ctx context.Context, userID string, f ListFilters) ([]*entity.Submission, error)
	ListAll(ctx context.Context, f ListFilters) ([]*entity.Submission, error)
	ListHotLeads(ctx context.Context) ([]*entity.Submission, error)
	// SetHotLead mirrors the flag onto every row of the dedup-key group in a
	// single statement.
	SetHotLead(ctx context.Context, phoneNumber, projectInterestID string, hot bool) error
	UpdateFollowUpStatus(ctx context.Context, id, userID, followUpStatus string) (*entity.Submission, error)
	// OverrideOwnership applies an admin override and its audit record in one
	// transaction: any other owned row in the group is demoted to duplicate,
	// the target becomes owned by log.NewOwnerID, and the log row is appended.
	OverrideOwnership(ctx context.Context, log *entity.OverrideLog, expiresAt time.Time) error
	CountByUser(ctx context.Context, userID string) (*StatusCounts, error)
	CountAll(ctx context.Context) (*StatusCounts, error)
}

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	CountMarketers(ctx context.Context) (int, error)
}

type ProjectInterestRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.ProjectInterest, error)
}

type OverrideLogRepositoryInterface interface {
	List(ctx context.Context) ([]*entity.OverrideLog, error)
}

type LeadEventProducerInterface interface {
	PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error
}
