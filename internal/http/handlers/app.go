package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"flowz-server/internal/batchgen"
	"flowz-server/internal/domain"
	"flowz-server/internal/infra"
	"flowz-server/internal/middleware"
)

// ContentGenerator is the generation client surface the handlers depend on.
type ContentGenerator interface {
	batchgen.TextGenerator
	HasKey() bool
}

// App bundles the dependencies the HTTP handlers need. All fields are set
// once at startup and read-only afterwards.
type App struct {
	SQL       infra.SQLExecutor
	Logger    infra.Logger
	JWTSecret string

	Jobs     domain.BatchJobRepository
	Products domain.ProductRepository
	Stores   domain.StoreRepository

	Orchestrator *batchgen.Orchestrator
	Generator    ContentGenerator

	HeartbeatEvery time.Duration
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
