package api

import (
	"context"
	"net/http"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/model"
)

// SubmissionDependencies defines the asynchronous ranking entry point.
type SubmissionDependencies interface {
	// Submit dedupes and queues a profile. Returns service.ErrBackpressure
	// when the queue is full.
	Submit(ctx context.Context, p *model.Profile) (service.SubmitResult, error)
}

type ackResponse struct {
	Status      string `json:"status"`
	Duplicate   bool   `json:"duplicate"`
	ProfileID   string `json:"profile_id"`
	Fingerprint string `json:"fingerprint"`
}

// SubmissionHandler handles profile submissions.
type SubmissionHandler struct {
	deps SubmissionDependencies
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(deps SubmissionDependencies) *SubmissionHandler {
	return &SubmissionHandler{deps: deps}
}

// HandlePostProfile handles POST /profiles requests.
func (h *SubmissionHandler) HandlePostProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_profile"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Submit(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	ack := ackResponse{Status: res.Status, ProfileID: res.ProfileID, Fingerprint: res.Fingerprint}
	if res.Status == service.StatusDuplicate {
		ack.Duplicate = true
		writeJSON(w, http.StatusOK, ack)
		return
	}
	writeJSON(w, http.StatusAccepted, ack)
}
