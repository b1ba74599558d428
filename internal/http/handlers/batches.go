package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"flowz-server/internal/batchgen"
	"flowz-server/internal/domain"
	"flowz-server/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type batchGenerateRequest struct {
	StoreID      string                    `json:"store_id"`
	ProductIDs   []string                  `json:"product_ids"`
	ContentTypes map[domain.FieldType]bool `json:"content_types"`
	Settings     domain.GenerationSettings `json:"settings"`
}

// BatchGenerate creates a batch job and streams its progress as server-sent
// events over the same response. Validation failures are reported as plain
// JSON before the stream starts; once streaming begins all outcomes travel
// as events.
func (a *App) BatchGenerate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}
	var req batchGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.StoreID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "store_id required")
		return
	}
	if len(req.ProductIDs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "product_ids required")
		return
	}
	fields := domain.EnabledFields(req.ContentTypes)
	if len(fields) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one content type required")
		return
	}
	if _, err := a.Stores.GetForOwner(r.Context(), req.StoreID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusForbidden, "forbidden", "store not accessible")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve store")
		return
	}
	if !a.Generator.HasKey() {
		a.error(w, http.StatusInternalServerError, "internal", "generation is not configured")
		return
	}

	req.Settings.Normalize(middleware.LocaleFromContext(r.Context()))

	job := &domain.BatchJob{
		UserID:       userID,
		StoreID:      req.StoreID,
		ContentTypes: req.ContentTypes,
		Settings:     req.Settings,
		TotalItems:   len(req.ProductIDs),
	}
	if err := a.Jobs.CreateJob(r.Context(), job); err != nil {
		a.Logger.Error().Err(err).Msg("create batch job failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create batch job")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := &sseSink{w: w, flusher: flusher}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(a.heartbeatEvery())
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				sink.Close()
				return
			case <-ticker.C:
				_ = sink.Emit(batchgen.Heartbeat())
			}
		}
	}()

	items, err := a.Jobs.CreateItems(r.Context(), job.ID, req.ProductIDs)
	if err != nil {
		a.Logger.Error().Err(err).Str("job_id", job.ID).Msg("create batch items failed")
		a.Orchestrator.Fail(r.Context(), job, sink, errors.New("failed to prepare batch items"))
		return
	}

	a.Orchestrator.Run(r.Context(), job, items, sink)
}

func (a *App) heartbeatEvery() time.Duration {
	if a.HeartbeatEvery > 0 {
		return a.HeartbeatEvery
	}
	return 10 * time.Second
}

// sseSink writes events as SSE data frames. Writes are serialized so the
// heartbeat goroutine and the orchestrator never interleave frames.
type sseSink struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

func (s *sseSink) Emit(event any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return batchgen.ErrStreamClosed
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		s.closed = true
		return batchgen.ErrStreamClosed
	}
	s.flusher.Flush()
	return nil
}

func (s *sseSink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *sseSink) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

type batchJobDTO struct {
	ID              string     `json:"id"`
	StoreID         string     `json:"store_id"`
	Status          string     `json:"status"`
	TotalItems      int        `json:"total_items"`
	ProcessedItems  int        `json:"processed_items"`
	SuccessfulItems int        `json:"successful_items"`
	FailedItems     int        `json:"failed_items"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (a *App) BatchStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	job, err := a.Jobs.GetJobForUser(r.Context(), jobID, userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "batch job not found")
		return
	}
	a.json(w, http.StatusOK, batchJobDTO{
		ID:              job.ID,
		StoreID:         job.StoreID,
		Status:          string(job.Status),
		TotalItems:      job.TotalItems,
		ProcessedItems:  job.ProcessedItems,
		SuccessfulItems: job.SuccessfulItems,
		FailedItems:     job.FailedItems,
		ErrorMessage:    job.ErrorMessage,
		StartedAt:       job.StartedAt,
		CompletedAt:     job.CompletedAt,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	})
}

func (a *App) BatchItems(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	if _, err := a.Jobs.GetJobForUser(r.Context(), jobID, userID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "batch job not found")
		return
	}
	items, err := a.Jobs.ListItems(r.Context(), jobID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load items")
		return
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"id":            item.ID,
			"product_id":    item.ProductID,
			"status":        item.Status,
			"error_message": item.ErrorMessage,
			"created_at":    item.CreatedAt,
			"updated_at":    item.UpdatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}
