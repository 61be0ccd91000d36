package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/prospekta/lead-tracker/internal/infra/http/middleware"
	"github.com/prospekta/lead-tracker/internal/usecase"
)

type AdminHandler struct {
	ListUC       *usecase.ListSubmissionsUseCase
	OverrideUC   *usecase.OverrideOwnershipUseCase
	StatsUC      *usecase.StatsUseCase
	OverrideLogs usecase.OverrideLogRepositoryInterface
}

func NewAdminHandler(
	listUC *usecase.ListSubmissionsUseCase,
	overrideUC *usecase.OverrideOwnershipUseCase,
	statsUC *usecase.StatsUseCase,
	overrideLogs usecase.OverrideLogRepositoryInterface,
) *AdminHandler {
	return &AdminHandler{
		ListUC:       listUC,
		OverrideUC:   overrideUC,
		StatsUC:      statsUC,
		OverrideLogs: overrideLogs,
	}
}

// ListSubmissions handles GET /admin/submissions.
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.ListUC.All(r.Context(), parseListFilters(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

// OverrideOwnership handles POST /admin/override-ownership.
func (h *AdminHandler) OverrideOwnership(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access token required")
		return
	}

	var input usecase.OverrideOwnershipInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	submission, err := h.OverrideUC.Execute(r.Context(), claims.UserID, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOwnershipOverride()
	writeJSON(w, http.StatusOK, submission)
}

// ListOverrideLogs handles GET /admin/override-logs.
func (h *AdminHandler) ListOverrideLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.OverrideLogs.List(r.Context())
	if err != nil {
		writeUseCaseError(w, usecase.NewStorageError("failed to fetch override logs", err))
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsUC.Global(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
