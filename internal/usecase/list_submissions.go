package usecase

import (
	"context"

	"github.com/prospekta/lead-tracker/internal/entity"
)

type ListSubmissionsUseCase struct {
	Subs SubmissionRepositoryInterface
}

func NewListSubmissionsUseCase(subs SubmissionRepositoryInterface) *ListSubmissionsUseCase {
	return &ListSubmissionsUseCase{Subs: subs}
}

// ForUser lists the caller's submissions, newest first, annotated with their
// duplicate chains.
func (uc *ListSubmissionsUseCase) ForUser(ctx context.Context, userID string, f ListFilters) ([]*entity.Submission, error) {
	submissions, err := uc.Subs.ListByUser(ctx, userID, f)
	if err != nil {
		return nil, NewStorageError("failed to fetch submissions", err)
	}
	if err := uc.annotate(ctx, submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// All lists every submission for the admin view.
func (uc *ListSubmissionsUseCase) All(ctx context.Context, f ListFilters) ([]*entity.Submission, error) {
	submissions, err := uc.Subs.ListAll(ctx, f)
	if err != nil {
		return nil, NewStorageError("failed to fetch submissions", err)
	}
	if err := uc.annotate(ctx, submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (uc *ListSubmissionsUseCase) HotLeads(ctx context.Context) ([]*entity.Submission, error) {
	submissions, err := uc.Subs.ListHotLeads(ctx)
	if err != nil {
		return nil, NewStorageError("failed to fetch hot leads", err)
	}
	return submissions, nil
}

// annotate recomputes tier and chain for each listed row. Chains are fetched
// once per dedup key, not per row.
func (uc *ListSubmissionsUseCase) annotate(ctx context.Context, submissions []*entity.Submission) error {
	chains := make(map[string][]entity.ChainEntry)

	for _, s := range submissions {
		key := s.PhoneNumber + "|" + s.ProjectInterestID
		entries, ok := chains[key]
		if !ok {
			chain, err := uc.Subs.FindChain(ctx, s.PhoneNumber, s.ProjectInterestID)
			if err != nil {
				return NewStorageError("failed to fetch duplicate chain", err)
			}
			entries = AnnotateChain(chain)
			chains[key] = entries
		}

		s.DuplicateTier = 1
		for _, entry := range entries {
			if entry.ID == s.ID {
				s.DuplicateTier = entry.Tier
			}
		}
		if len(entries) > 1 {
			s.DuplicateChain = entries
		}
	}

	return nil
}
