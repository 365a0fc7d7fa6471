package problem

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/haeun-dev/seaturtle-soup/internal/ai"
	"github.com/haeun-dev/seaturtle-soup/internal/db/repository"
	httperrors "github.com/haeun-dev/seaturtle-soup/pkg/http/errors"
)

// HTTPHandler exposes the REST endpoints under /api/problems.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "problem_http").Logger(),
	}
}

// Register mounts the problem routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/problems", h.HandleList)
	mux.HandleFunc("GET /api/problems/{id}", h.HandleGet)
	mux.HandleFunc("POST /api/problems/{id}/ask", h.HandleAsk)
	mux.HandleFunc("POST /api/problems/make", h.HandleMake)
}

// HandleList responds with one page of puzzle summaries.
// Route: GET /api/problems?page=0&size=10
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", defaultPageSize)

	result, err := h.svc.List(r.Context(), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("problem listing failed")
		httperrors.RespondInternalError(w, "failed to list problems")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleGet responds with a single puzzle, answer excluded.
// Route: GET /api/problems/{id}
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.respondWorkflowError(w, err, "failed to load problem")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type askRequest struct {
	Question string `json:"question"`
}

// HandleAsk forwards a player's question to the game master.
// Route: POST /api/problems/{id}/ask
func (h *HTTPHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "question must not be empty", "question")
		return
	}

	result, err := h.svc.Ask(r.Context(), id, req.Question)
	if err != nil {
		h.respondWorkflowError(w, err, "failed to judge question")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type makeRequest struct {
	Difficulty string `json:"difficulty"`
}

// HandleMake generates and stores a new puzzle.
// Route: POST /api/problems/make
// The body is either {"difficulty":"EASY"} or the bare difficulty as text.
func (h *HTTPHandler) HandleMake(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	difficulty := strings.TrimSpace(string(raw))
	if strings.HasPrefix(difficulty, "{") {
		var req makeRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
			return
		}
		difficulty = strings.TrimSpace(req.Difficulty)
	}

	id, err := h.svc.Make(r.Context(), difficulty)
	if err != nil {
		if errors.Is(err, ErrInvalidDifficulty) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidDifficulty, "difficulty must be one of EASY, NORMAL, HARD")
			return
		}
		h.respondWorkflowError(w, err, "failed to generate problem")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// respondWorkflowError maps workflow failures onto the HTTP taxonomy: missing
// rows and templates are 404s, anything involving the model endpoint is a
// generic 502, the rest a generic 500. Raw upstream detail never reaches the
// client.
func (h *HTTPHandler) respondWorkflowError(w http.ResponseWriter, err error, fallback string) {
	var missing *ai.MissingFieldError
	var transport *ai.TransportError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "problem not found")
	case errors.Is(err, ai.ErrTemplateNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "prompt template not found")
	case errors.As(err, &transport),
		errors.As(err, &missing),
		errors.Is(err, ai.ErrMalformedEnvelope),
		errors.Is(err, ai.ErrMalformedPayload):
		h.logger.Warn().Err(err).Msg("ai round-trip failed")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeUpstreamError, "AI request failed")
	default:
		h.logger.Error().Err(err).Msg(fallback)
		httperrors.RespondInternalError(w, fallback)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid problem id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
