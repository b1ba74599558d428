package handlers

import (
	"net/http"
)

// Health reports process liveness plus whether content generation is usable,
// so deploys can tell a healthy-but-unconfigured instance apart from a broken
// one.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if a.Generator != nil {
		body["generation"] = a.Generator.HasKey()
	}
	a.json(w, http.StatusOK, body)
}
