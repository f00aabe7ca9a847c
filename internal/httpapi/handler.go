package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"jobmate/recruitment-service/internal/apperr"
	"jobmate/recruitment-service/internal/candidate"
	"jobmate/recruitment-service/internal/logger"
)

const (
	msgInvalidJSON   = "Invalid JSON body"
	msgInternalError = "Database error"

	maxBodyBytes = 1 << 20
)

// CandidateService is the subset of candidate.Service the handlers need.
type CandidateService interface {
	List(ctx context.Context, page, limit int) (*candidate.Page, error)
	Create(ctx context.Context, in candidate.Candidate) (*candidate.CreateResult, error)
	StatusCounts(ctx context.Context) (map[candidate.RecruitmentStatus]int, error)
}

// Handler holds shared dependencies.
type Handler struct {
	svc CandidateService
	log *zap.Logger
}

// NewHandler returns a configured Handler.
func NewHandler(svc CandidateService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// StatsResponse is the body of GET /candidates/stats.
type StatsResponse struct {
	Counts map[candidate.RecruitmentStatus]int `json:"counts"`
}

// List handles GET /candidates?page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), candidate.DefaultPage)
	limit := queryInt(q.Get("limit"), candidate.DefaultLimit)

	res, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, http.StatusOK, res)
}

// Create handles POST /candidates
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in candidate.Candidate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		jsonError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	res, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, http.StatusCreated, res)
}

// Stats handles GET /candidates/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.StatusCounts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, http.StatusOK, StatsResponse{Counts: counts})
}

// fail answers with the status carried by an apperr.Error. Anything else is
// logged and reported generically.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if ae, ok := apperr.As(err); ok {
		if ae.Kind == apperr.KindServer || ae.Kind == apperr.KindTimeout {
			h.log.Warn("request failed",
				zap.String(logger.FieldPath, r.URL.Path),
				zap.Int(logger.FieldStatus, ae.Status),
				zap.Error(err),
			)
		}
		jsonError(w, ae.Msg, ae.Status)
		return
	}
	h.log.Error("unexpected error",
		zap.String(logger.FieldMethod, r.Method),
		zap.String(logger.FieldPath, r.URL.Path),
		zap.Error(err),
	)
	jsonError(w, msgInternalError, http.StatusInternalServerError)
}

// queryInt parses a positive integer query value, falling back to def.
func queryInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
