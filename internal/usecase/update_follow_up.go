package usecase

import (
	"context"

	"github.com/prospekta/lead-tracker/internal/entity"
)

type UpdateFollowUpInput struct {
	FollowUpStatus string `json:"follow_up_status"`
}

type UpdateFollowUpUseCase struct {
	Subs SubmissionRepositoryInterface
}

func NewUpdateFollowUpUseCase(subs SubmissionRepositoryInterface) *UpdateFollowUpUseCase {
	return &UpdateFollowUpUseCase{Subs: subs}
}

// Execute updates the follow-up status of a submission the caller owns.
// Nothing else on the row is writable through this path.
func (uc *UpdateFollowUpUseCase) Execute(ctx context.Context, userID, submissionID string, input UpdateFollowUpInput) (*entity.Submission, error) {
	if !entity.IsValidFollowUpStatus(input.FollowUpStatus) {
		return nil, NewValidationError("follow_up_status must be one of: follow-up, pending, no_response, closing")
	}

	submission, err := uc.Subs.UpdateFollowUpStatus(ctx, submissionID, userID, input.FollowUpStatus)
	if err != nil {
		if err == entity.ErrSubmissionNotFound {
			return nil, NewNotFoundError("submission not found or access denied")
		}
		return nil, NewStorageError("failed to update submission", err)
	}

	return submission, nil
}
