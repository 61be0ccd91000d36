package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/prospekta/lead-tracker/internal/entity"
	"github.com/prospekta/lead-tracker/internal/infra/queue"
	"github.com/prospekta/lead-tracker/internal/usecase"
)

// MockSubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, s *entity.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) FindChain(ctx context.Context, phoneNumber, projectInterestID string) ([]*entity.Submission, error) {
	args := m.Called(ctx, phoneNumber, projectInterestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ListByUser(ctx context.Context, userID string, f usecase.ListFilters) ([]*entity.Submission, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ListAll(ctx context.Context, f usecase.ListFilters) ([]*entity.Submission, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ListHotLeads(ctx context.Context) ([]*entity.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) SetHotLead(ctx context.Context, phoneNumber, projectInterestID string, hot bool) error {
	args := m.Called(ctx, phoneNumber, projectInterestID, hot)
	return args.Error(0)
}

func (m *MockSubmissionRepository) UpdateFollowUpStatus(ctx context.Context, id, userID, followUpStatus string) (*entity.Submission, error) {
	args := m.Called(ctx, id, userID, followUpStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) OverrideOwnership(ctx context.Context, log *entity.OverrideLog, expiresAt time.Time) error {
	args := m.Called(ctx, log, expiresAt)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CountByUser(ctx context.Context, userID string) (*usecase.StatusCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StatusCounts), args.Error(1)
}

func (m *MockSubmissionRepository) CountAll(ctx context.Context) (*usecase.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StatusCounts), args.Error(1)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) CountMarketers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockProjectInterestRepository
type MockProjectInterestRepository struct {
	mock.Mock
}

func (m *MockProjectInterestRepository) FindByID(ctx context.Context, id string) (*entity.ProjectInterest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProjectInterest), args.Error(1)
}

// MockLeadEventProducer
type MockLeadEventProducer struct {
	mock.Mock
}

func (m *MockLeadEventProducer) PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func activeProject(id string) *entity.ProjectInterest {
	return &entity.ProjectInterest{
		ID:       id,
		Name:     "Green Hills Residence",
		IsActive: true,
	}
}

func chainMember(id, userID, status string, createdAt time.Time) *entity.Submission {
	return &entity.Submission{
		ID:                id,
		UserID:            userID,
		Name:              "Budi",
		PhoneNumber:       "08123456789",
		ProjectInterestID: "proj-1",
		Status:            status,
		CreatedAt:         createdAt,
	}
}
