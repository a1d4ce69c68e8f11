package api

import (
	"context"
	"net/http"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/rarity"
	"github.com/okian/podium/internal/domain/report"
)

// AnalysisDependencies defines the synchronous analytics operations.
type AnalysisDependencies interface {
	Analyze(ctx context.Context, p *model.Profile) (report.Report, error)
	Card(ctx context.Context, p *model.Profile, achievementID string) (rarity.Card, error)
}

// AnalysisHandler handles report and card requests.
type AnalysisHandler struct {
	deps AnalysisDependencies
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps AnalysisDependencies) *AnalysisHandler {
	return &AnalysisHandler{deps: deps}
}

// HandleAnalyze handles POST /analyze requests.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rep, err := h.deps.Analyze(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleCard handles POST /cards requests.
func (h *AnalysisHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	const op = "api.card"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req cardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	card, err := h.deps.Card(r.Context(), req.Profile.toModel(), req.AchievementID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
