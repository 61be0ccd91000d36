package usecase

import "context"

// DashboardStats mirrors the dashboard cards: valid means currently owned.
type DashboardStats struct {
	TotalSubmissions     int `json:"total_submissions"`
	ValidSubmissions     int `json:"valid_submissions"`
	DuplicateSubmissions int `json:"duplicate_submissions"`
	HotLeads             int `json:"hot_leads"`
	ExpiredSubmissions   int `json:"expired_submissions"`
	TotalMarketers       int `json:"total_marketers"`
}

type StatsUseCase struct {
	Subs  SubmissionRepositoryInterface
	Users UserRepositoryInterface
}

func NewStatsUseCase(subs SubmissionRepositoryInterface, users UserRepositoryInterface) *StatsUseCase {
	return &StatsUseCase{Subs: subs, Users: users}
}

// ForUser aggregates the caller's own submissions. Marketer stats only cover
// their own rows, so total_marketers is fixed at 1.
func (uc *StatsUseCase) ForUser(ctx context.Context, userID string) (*DashboardStats, error) {
	counts, err := uc.Subs.CountByUser(ctx, userID)
	if err != nil {
		return nil, NewStorageError("failed to fetch submission stats", err)
	}
	return &DashboardStats{
		TotalSubmissions:     counts.Total,
		ValidSubmissions:     counts.Owned,
		DuplicateSubmissions: counts.Duplicate,
		HotLeads:             counts.HotLeads,
		ExpiredSubmissions:   counts.Expired,
		TotalMarketers:       1,
	}, nil
}

func (uc *StatsUseCase) Global(ctx context.Context) (*DashboardStats, error) {
	counts, err := uc.Subs.CountAll(ctx)
	if err != nil {
		return nil, NewStorageError("failed to fetch submission stats", err)
	}
	marketers, err := uc.Users.CountMarketers(ctx)
	if err != nil {
		return nil, NewStorageError("failed to count marketers", err)
	}
	return &DashboardStats{
		TotalSubmissions:     counts.Total,
		ValidSubmissions:     counts.Owned,
		DuplicateSubmissions: counts.Duplicate,
		HotLeads:             counts.HotLeads,
		ExpiredSubmissions:   counts.Expired,
		TotalMarketers:       marketers,
	}, nil
}
