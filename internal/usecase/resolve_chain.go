package usecase

import (
	"context"
	"sort"

	"github.com/prospekta/lead-tracker/internal/entity"
)

// ChainResult is the resolver output for one submission: the full ordered
// group, the submission's own tier, and the current owner.
type ChainResult struct {
	SubmissionID string              `json:"submission_id"`
	Tier         int                 `json:"tier"`
	Owner        *entity.ChainEntry  `json:"owner,omitempty"`
	Chain        []entity.ChainEntry `json:"chain"`
}

type ResolveChainUseCase struct {
	Subs SubmissionRepositoryInterface
}

func NewResolveChainUseCase(subs SubmissionRepositoryInterface) *ResolveChainUseCase {
	return &ResolveChainUseCase{Subs: subs}
}

func (uc *ResolveChainUseCase) Execute(ctx context.Context, submissionID string) (*ChainResult, error) {
	submission, err := uc.Subs.FindByID(ctx, submissionID)
	if err != nil {
		if err == entity.ErrSubmissionNotFound {
			return nil, NewNotFoundError("submission not found")
		}
		return nil, NewStorageError("failed to fetch submission", err)
	}

	chain, err := uc.Subs.FindChain(ctx, submission.PhoneNumber, submission.ProjectInterestID)
	if err != nil {
		return nil, NewStorageError("failed to fetch duplicate chain", err)
	}

	entries := AnnotateChain(chain)

	result := &ChainResult{
		SubmissionID: submission.ID,
		Tier:         1,
		Chain:        entries,
	}
	for _, entry := range entries {
		if entry.ID == submission.ID {
			result.Tier = entry.Tier
		}
	}
	if owner := CurrentOwner(entries); owner != nil {
		o := *owner
		result.Owner = &o
	}

	return result, nil
}

// AnnotateChain assigns tiers by ascending creation time, ties broken by id.
// Tier assignment is a pure function of chain membership and creation order;
// it is recomputed on every read and never persisted.
func AnnotateChain(chain []*entity.Submission) []entity.ChainEntry {
	sorted := make([]*entity.Submission, len(chain))
	copy(sorted, chain)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	entries := make([]entity.ChainEntry, len(sorted))
	for i, member := range sorted {
		entries[i] = entity.ChainEntry{
			ID:        member.ID,
			UserName:  member.UserName,
			UserEmail: member.UserEmail,
			Tier:      i + 1,
			Status:    member.Status,
			CreatedAt: member.CreatedAt,
		}
	}
	return entries
}

// CurrentOwner returns the owned member regardless of tier, or the tier-1
// entry as the nominal original when no member is owned. Nil for an empty
// chain.
func CurrentOwner(entries []entity.ChainEntry) *entity.ChainEntry {
	for i := range entries {
		if entries[i].Status == entity.StatusOwned {
			return &entries[i]
		}
	}
	if len(entries) > 0 {
		return &entries[0]
	}
	return nil
}

// DistinctSubmitters counts unique marketer ids in a chain. A marketer who
// submitted twice counts once toward the hot-lead threshold.
func DistinctSubmitters(chain []*entity.Submission) int {
	seen := make(map[string]struct{}, len(chain))
	for _, member := range chain {
		seen[member.UserID] = struct{}{}
	}
	return len(seen)
}
