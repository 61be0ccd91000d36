package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prospekta/lead-tracker/internal/infra/http/middleware"
	"github.com/prospekta/lead-tracker/internal/usecase"
)

type SubmissionHandler struct {
	CreateUC   *usecase.CreateSubmissionUseCase
	ListUC     *usecase.ListSubmissionsUseCase
	ChainUC    *usecase.ResolveChainUseCase
	FollowUpUC *usecase.UpdateFollowUpUseCase
	StatsUC    *usecase.StatsUseCase
}

func NewSubmissionHandler(
	createUC *usecase.CreateSubmissionUseCase,
	listUC *usecase.ListSubmissionsUseCase,
	chainUC *usecase.ResolveChainUseCase,
	followUpUC *usecase.UpdateFollowUpUseCase,
	statsUC *usecase.StatsUseCase,
) *SubmissionHandler {
	return &SubmissionHandler{
		CreateUC:   createUC,
		ListUC:     listUC,
		ChainUC:    chainUC,
		FollowUpUC: followUpUC,
		StatsUC:    statsUC,
	}
}

// Create handles POST /submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access token required")
		return
	}

	var input usecase.CreateSubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	submission, err := h.CreateUC.Execute(r.Context(), claims.UserID, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordSubmissionCreated(submission.Status)
	if submission.IsHotLead {
		middleware.RecordHotLead()
	}

	writeJSON(w, http.StatusCreated, submission)
}

// List handles GET /submissions with status/date/search filters.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access token required")
		return
	}

	submissions, err := h.ListUC.ForUser(r.Context(), claims.UserID, parseListFilters(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

// HotLeads handles GET /submissions/hot-leads.
func (h *SubmissionHandler) HotLeads(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.ListUC.HotLeads(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

// Stats handles GET /submissions/stats.
func (h *SubmissionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access token required")
		return
	}

	stats, err := h.StatsUC.ForUser(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Chain handles GET /submissions/{id}/chain.
func (h *SubmissionHandler) Chain(w http.ResponseWriter, r *http.Request) {
	result, err := h.ChainUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UpdateFollowUp handles PUT /submissions/{id}. Only the follow-up status is
// writable.
func (h *SubmissionHandler) UpdateFollowUp(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access token required")
		return
	}

	var input usecase.UpdateFollowUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	submission, err := h.FollowUpUC.Execute(r.Context(), claims.UserID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submission)
}

func parseListFilters(r *http.Request) usecase.ListFilters {
	q := r.URL.Query()
	f := usecase.ListFilters{
		Status:     q.Get("status"),
		MarketerID: q.Get("marketer_id"),
		Search:     q.Get("search"),
	}
	if from := q.Get("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			f.DateFrom = &t
		} else if t, err := time.Parse("2006-01-02", from); err == nil {
			f.DateFrom = &t
		}
	}
	if to := q.Get("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			f.DateTo = &t
		} else if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			f.DateTo = &end
		}
	}
	return f
}
