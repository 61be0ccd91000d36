package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prospekta/lead-tracker/internal/entity"
	"github.com/prospekta/lead-tracker/internal/infra/queue"
)

type OverrideOwnershipInput struct {
	SubmissionID string `json:"submission_id"`
	NewOwnerID   string `json:"new_owner_id"`
	Reason       string `json:"reason"`
}

type OverrideOwnershipUseCase struct {
	Subs         SubmissionRepositoryInterface
	Users        UserRepositoryInterface
	Events       LeadEventProducerInterface
	OwnershipTTL time.Duration

	now func() time.Time
}

func NewOverrideOwnershipUseCase(
	subs SubmissionRepositoryInterface,
	users UserRepositoryInterface,
	events LeadEventProducerInterface,
	ownershipTTL time.Duration,
) *OverrideOwnershipUseCase {
	return &OverrideOwnershipUseCase{
		Subs:         subs,
		Users:        users,
		Events:       events,
		OwnershipTTL: ownershipTTL,
		now:          time.Now,
	}
}

// Execute forcibly reassigns ownership of a submission, bypassing the
// ingestion conflict checks. The ownership update and its audit record are
// written in one transaction; a failed audit write aborts the override.
func (uc *OverrideOwnershipUseCase) Execute(ctx context.Context, adminID string, input OverrideOwnershipInput) (*entity.Submission, error) {
	if input.SubmissionID == "" || input.NewOwnerID == "" {
		return nil, NewValidationError("submission_id and new_owner_id are required")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, NewValidationError("reason is required")
	}

	submission, err := uc.Subs.FindByID(ctx, input.SubmissionID)
	if err != nil {
		if err == entity.ErrSubmissionNotFound {
			return nil, NewNotFoundError("submission not found")
		}
		return nil, NewStorageError("failed to fetch submission", err)
	}

	newOwner, err := uc.Users.FindByID(ctx, input.NewOwnerID)
	if err != nil || !newOwner.IsMarketer() {
		return nil, NewNotFoundError("new owner not found or not a marketer")
	}

	log := entity.NewOverrideLog(adminID, submission.ID, submission.UserID, newOwner.ID, strings.TrimSpace(input.Reason))
	expiresAt := uc.now().Add(uc.OwnershipTTL)

	if err := uc.Subs.OverrideOwnership(ctx, log, expiresAt); err != nil {
		return nil, NewStorageError("failed to override ownership", err)
	}

	updated, err := uc.Subs.FindByID(ctx, submission.ID)
	if err != nil {
		return nil, NewStorageError("failed to fetch updated submission", err)
	}

	if uc.Events != nil {
		err := uc.Events.PublishLeadEvent(ctx, queue.LeadEvent{
			Type:              queue.EventOwnershipOverridden,
			SubmissionID:      updated.ID,
			UserID:            log.OldOwnerID,
			NewOwnerID:        newOwner.ID,
			PhoneNumber:       updated.PhoneNumber,
			ProjectInterestID: updated.ProjectInterestID,
			Status:            updated.Status,
		})
		if err != nil {
			zap.L().Warn("failed to publish ownership overridden event",
				zap.String("submission_id", updated.ID),
				zap.Error(err))
		}
	}

	return updated, nil
}
