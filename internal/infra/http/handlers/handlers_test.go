package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prospekta/lead-tracker/internal/entity"
	"github.com/prospekta/lead-tracker/internal/infra/auth"
	"github.com/prospekta/lead-tracker/internal/infra/http/handlers"
	"github.com/prospekta/lead-tracker/internal/infra/http/middleware"
	"github.com/prospekta/lead-tracker/internal/usecase"
)

type stubSubmissionRepo struct {
	mock.Mock
}

func (m *stubSubmissionRepo) Create(ctx context.Context, s *entity.Submission) error {
	return m.Called(ctx, s).Error(0)
}

func (m *stubSubmissionRepo) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Submission), args.Error(1)
}

func (m *stubSubmissionRepo) FindChain(ctx context.Context, phoneNumber, projectInterestID string) ([]*entity.Submission, error) {
	args := m.Called(ctx, phoneNumber, projectInterestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *stubSubmissionRepo) ListByUser(ctx context.Context, userID string, f usecase.ListFilters) ([]*entity.Submission, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *stubSubmissionRepo) ListAll(ctx context.Context, f usecase.ListFilters) ([]*entity.Submission, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *stubSubmissionRepo) ListHotLeads(ctx context.Context) ([]*entity.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *stubSubmissionRepo) SetHotLead(ctx context.Context, phoneNumber, projectInterestID string, hot bool) error {
	return m.Called(ctx, phoneNumber, projectInterestID, hot).Error(0)
}

func (m *stubSubmissionRepo) UpdateFollowUpStatus(ctx context.Context, id, userID, followUpStatus string) (*entity.Submission, error) {
	args := m.Called(ctx, id, userID, followUpStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Submission), args.Error(1)
}

func (m *stubSubmissionRepo) OverrideOwnership(ctx context.Context, log *entity.OverrideLog, expiresAt time.Time) error {
	return m.Called(ctx, log, expiresAt).Error(0)
}

func (m *stubSubmissionRepo) CountByUser(ctx context.Context, userID string) (*usecase.StatusCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StatusCounts), args.Error(1)
}

func (m *stubSubmissionRepo) CountAll(ctx context.Context) (*usecase.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StatusCounts), args.Error(1)
}

type stubUserRepo struct {
	mock.Mock
}

func (m *stubUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *stubUserRepo) CountMarketers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type stubProjectRepo struct {
	mock.Mock
}

func (m *stubProjectRepo) FindByID(ctx context.Context, id string) (*entity.ProjectInterest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProjectInterest), args.Error(1)
}

type stubOverrideLogRepo struct {
	mock.Mock
}

func (m *stubOverrideLogRepo) List(ctx context.Context) ([]*entity.OverrideLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OverrideLog), args.Error(1)
}

// asUser injects authenticated claims the way Authenticator would.
func asUser(userID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &auth.Claims{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func marketerRouter(subs *stubSubmissionRepo, projects *stubProjectRepo, userID string) *chi.Mux {
	createUC := usecase.NewCreateSubmissionUseCase(subs, projects, nil, 3, 30*24*time.Hour)
	listUC := usecase.NewListSubmissionsUseCase(subs)
	chainUC := usecase.NewResolveChainUseCase(subs)
	followUpUC := usecase.NewUpdateFollowUpUseCase(subs)
	statsUC := usecase.NewStatsUseCase(subs, new(stubUserRepo))
	h := handlers.NewSubmissionHandler(createUC, listUC, chainUC, followUpUC, statsUC)

	r := chi.NewRouter()
	r.Use(asUser(userID, entity.RoleMarketer))
	r.Post("/submissions", h.Create)
	r.Get("/submissions", h.List)
	r.Get("/submissions/hot-leads", h.HotLeads)
	r.Get("/submissions/stats", h.Stats)
	r.Get("/submissions/{id}/chain", h.Chain)
	r.Put("/submissions/{id}", h.UpdateFollowUp)
	return r
}

func TestCreateSubmissionReturns201(t *testing.T) {
	subs := new(stubSubmissionRepo)
	projects := new(stubProjectRepo)

	projects.On("FindByID", mock.Anything, "proj-1").
		Return(&entity.ProjectInterest{ID: "proj-1", Name: "Green Hills", IsActive: true}, nil)
	subs.On("FindChain", mock.Anything, "08123456789", "proj-1").
		Return([]*entity.Submission{}, nil)
	subs.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := `{"name":"Budi","phone_number":"0812-3456-789","project_interest_id":"proj-1"}`
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	marketerRouter(subs, projects, "marketer-a").ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got entity.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, entity.StatusOwned, got.Status)
	assert.Equal(t, "08123456789", got.PhoneNumber)
	assert.Equal(t, 1, got.DuplicateTier)
}

func TestCreateSubmissionRejectsInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	marketerRouter(new(stubSubmissionRepo), new(stubProjectRepo), "marketer-a").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSubmissionValidationFailureIs400(t *testing.T) {
	body := `{"name":"","phone_number":"123","project_interest_id":""}`
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	marketerRouter(new(stubSubmissionRepo), new(stubProjectRepo), "marketer-a").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSubmissionOwnerResubmissionIs409(t *testing.T) {
	subs := new(stubSubmissionRepo)
	projects := new(stubProjectRepo)

	projects.On("FindByID", mock.Anything, "proj-1").
		Return(&entity.ProjectInterest{ID: "proj-1", Name: "Green Hills", IsActive: true}, nil)
	subs.On("FindChain", mock.Anything, "08123456789", "proj-1").
		Return([]*entity.Submission{{
			ID:                "sub-1",
			UserID:            "marketer-a",
			PhoneNumber:       "08123456789",
			ProjectInterestID: "proj-1",
			Status:            entity.StatusOwned,
		}}, nil)

	body := `{"name":"Budi","phone_number":"08123456789","project_interest_id":"proj-1"}`
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	marketerRouter(subs, projects, "marketer-a").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	subs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChainEndpointReturns404ForUnknownSubmission(t *testing.T) {
	subs := new(stubSubmissionRepo)
	subs.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrSubmissionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/submissions/missing/chain", nil)
	rec := httptest.NewRecorder()
	marketerRouter(subs, new(stubProjectRepo), "marketer-a").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListParsesDateFilters(t *testing.T) {
	subs := new(stubSubmissionRepo)
	subs.On("ListByUser", mock.Anything, "marketer-a", mock.MatchedBy(func(f usecase.ListFilters) bool {
		return f.Status == entity.StatusOwned &&
			f.DateFrom != nil && f.DateFrom.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			f.DateTo != nil && f.DateTo.After(time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC))
	})).Return([]*entity.Submission{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/submissions?status=owned&date_from=2025-06-01&date_to=2025-06-02", nil)
	rec := httptest.NewRecorder()
	marketerRouter(subs, new(stubProjectRepo), "marketer-a").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	subs.AssertExpectations(t)
}

func TestUpdateFollowUpReturnsUpdatedSubmission(t *testing.T) {
	subs := new(stubSubmissionRepo)
	subs.On("UpdateFollowUpStatus", mock.Anything, "sub-1", "marketer-a", "closing").
		Return(&entity.Submission{ID: "sub-1", UserID: "marketer-a", FollowUpStatus: "closing"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/submissions/sub-1", strings.NewReader(`{"follow_up_status":"closing"}`))
	rec := httptest.NewRecorder()
	marketerRouter(subs, new(stubProjectRepo), "marketer-a").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "closing", got.FollowUpStatus)
}

func TestStatsEndpoint(t *testing.T) {
	subs := new(stubSubmissionRepo)
	subs.On("CountByUser", mock.Anything, "marketer-a").
		Return(&usecase.StatusCounts{Total: 5, Owned: 4, Duplicate: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/submissions/stats", nil)
	rec := httptest.NewRecorder()
	marketerRouter(subs, new(stubProjectRepo), "marketer-a").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got usecase.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 5, got.TotalSubmissions)
	assert.Equal(t, 4, got.ValidSubmissions)
}
