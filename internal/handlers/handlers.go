package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rockysnow7/mlb-transformer/internal/analytics"
	"github.com/rockysnow7/mlb-transformer/internal/batch"
	"github.com/rockysnow7/mlb-transformer/internal/parser"
	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// maxTranscriptBytes bounds the request body of a parse call. Real
// transcripts are a few tens of KB.
const maxTranscriptBytes = 4 << 20

// GameCache is the slice of cache.RedisWriter the handlers need
type GameCache interface {
	WriteGame(ctx context.Context, game *models.Game) error
	ReadGame(ctx context.Context, gamePK int) (*models.Game, error)
	ReadGamesForDate(ctx context.Context, date string) ([]string, error)
}

// GameStore is the slice of store.Store the handlers need
type GameStore interface {
	SaveGame(ctx context.Context, game *models.Game, runs map[int]int) error
	GetGame(ctx context.Context, gamePK int) (*models.Game, error)
	SaveBatchReport(ctx context.Context, report *batch.Report) error
	GetBatchReport(ctx context.Context, jobID string) (*batch.Report, error)
	Ping(ctx context.Context) error
}

// GamePublisher publishes parsed games downstream
type GamePublisher interface {
	PublishParsedGame(ctx context.Context, game *models.Game) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	cache          GameCache
	store          GameStore
	publisher      GamePublisher
	runner         *batch.Runner
	transcriptRoot string

	// in-flight batch jobs, job id -> "running"
	jobs sync.Map
}

// NewHandler creates a new handler with dependencies
func NewHandler(
	cacheWriter GameCache,
	st GameStore,
	pub GamePublisher,
	runner *batch.Runner,
	transcriptRoot string,
) *Handler {
	return &Handler{
		cache:          cacheWriter,
		store:          st,
		publisher:      pub,
		runner:         runner,
		transcriptRoot: transcriptRoot,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "transcript-service",
	})
}

// ParseTranscript parses a raw transcript body and persists the result
// POST /api/v1/parse
func (h *Handler) ParseTranscript(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTranscriptBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body", err)
		return
	}

	game, err := parser.Parse(string(body))
	if err != nil {
		respondParseError(w, err)
		return
	}

	runs := analytics.RunsAtEnd(game)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Persistence is best effort; the parse result is still returned
	if err := h.cache.WriteGame(ctx, game); err != nil {
		log.Printf("Failed to cache game %d: %v", game.Context.GamePK, err)
	}
	if err := h.store.SaveGame(ctx, game, runs); err != nil {
		log.Printf("Failed to store game %d: %v", game.Context.GamePK, err)
	}
	if err := h.publisher.PublishParsedGame(ctx, game); err != nil {
		log.Printf("Failed to publish game %d: %v", game.Context.GamePK, err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game": game,
		"runs": runs,
	})
}

// GetGame retrieves a previously parsed game by its game pk
// GET /api/v1/games/{gamePK}
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gamePK, err := strconv.Atoi(chi.URLParam(r, "gamePK"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game pk", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Cache first, Postgres as fallback
	game, err := h.cache.ReadGame(ctx, gamePK)
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache read for game %d failed: %v", gamePK, err)
		}
		game, err = h.store.GetGame(ctx, gamePK)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("game %d not found", gamePK), nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to retrieve game", err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game": game,
		"runs": analytics.RunsAtEnd(game),
	})
}

// GetGamesForDate lists game pks parsed for a calendar date
// GET /api/v1/games?date=YYYY-MM-DD
func (h *Handler) GetGamesForDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	gamePKs, err := h.cache.ReadGamesForDate(ctx, date)
	if err != nil && err != redis.Nil {
		respondError(w, http.StatusInternalServerError, "failed to list games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date,
		"game_pks": gamePKs,
		"count":    len(gamePKs),
	})
}

// StartBatch launches an asynchronous batch validation run
// POST /api/v1/batches with body {"subdir": "2023/04"}
func (h *Handler) StartBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subdir string `json:"subdir"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	root := h.transcriptRoot
	if req.Subdir != "" {
		root = filepath.Join(h.transcriptRoot, req.Subdir)
		if !strings.HasPrefix(root, h.transcriptRoot+string(filepath.Separator)) {
			respondError(w, http.StatusBadRequest, "subdir escapes transcript root", nil)
			return
		}
	}

	jobID := batch.NewJobID()
	h.jobs.Store(jobID, "running")

	go func() {
		// Detached from the request context: the job outlives the call
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		defer h.jobs.Delete(jobID)

		report, err := h.runner.Run(ctx, jobID, root)
		if err != nil {
			log.Printf("Batch %s failed: %v", jobID, err)
			return
		}
		if err := h.store.SaveBatchReport(ctx, report); err != nil {
			log.Printf("Failed to store batch report %s: %v", jobID, err)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": jobID,
		"status": "running",
		"root":   root,
	})
}

// GetBatch returns the report for a batch job
// GET /api/v1/batches/{batchID}
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "batchID")

	if _, running := h.jobs.Load(jobID); running {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"job_id": jobID,
			"status": "running",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report, err := h.store.GetBatchReport(ctx, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("batch %s not found", jobID), nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve batch report", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job_id": jobID,
		"status": "finished",
		"report": report,
	})
}

// respondParseError maps the parser's error taxonomy onto a 422 body
// that names the expected token, the found token and its position.
func respondParseError(w http.ResponseWriter, err error) {
	body := map[string]interface{}{
		"error": err.Error(),
	}

	var unexpected *parser.UnexpectedTokenError
	var eos *parser.UnexpectedEndOfStreamError
	var trailing *parser.TrailingTokensError
	var unknown *parser.UnknownPlayTypeError

	switch {
	case errors.As(err, &unexpected):
		body["kind"] = "unexpected_token"
		body["expected"] = unexpected.Expected
		body["found"] = unexpected.Found
		body["position"] = unexpected.Position
	case errors.As(err, &eos):
		body["kind"] = "unexpected_end_of_stream"
		body["position"] = eos.Position
	case errors.As(err, &trailing):
		body["kind"] = "trailing_tokens"
		body["found"] = trailing.Next
		body["position"] = trailing.Position
	case errors.As(err, &unknown):
		body["kind"] = "unknown_play_type"
		body["text"] = unknown.Text
	default:
		body["kind"] = "parse_error"
	}

	respondJSON(w, http.StatusUnprocessableEntity, body)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	respondJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
