package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flowz-server/pkg/zip"
)

func (a *App) StoresList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	stores, err := a.Stores.ListByOwner(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stores")
		return
	}
	items := make([]map[string]any, 0, len(stores))
	for _, s := range stores {
		items = append(items, map[string]any{
			"id":             s.ID,
			"name":           s.Name,
			"platform":       s.Platform,
			"domain":         s.Domain,
			"sync_status":    s.SyncStatus,
			"last_synced_at": s.LastSyncedAt,
			"created_at":     s.CreatedAt,
			"updated_at":     s.UpdatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// exportPageSize bounds each catalog page pulled during export.
const exportPageSize = 200

// StoreExport streams the store catalog as a zip archive, one JSON document
// per product, covering both working and draft content.
func (a *App) StoreExport(w http.ResponseWriter, r *http.Request) {
	store, ok := a.storeForRequest(w, r)
	if !ok {
		return
	}
	var entries []zip.Entry
	for offset := 0; ; offset += exportPageSize {
		products, err := a.Products.ListByStore(r.Context(), store.ID, exportPageSize, offset)
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load products")
			return
		}
		for i := range products {
			doc, err := json.MarshalIndent(toProductDTO(&products[i]), "", "  ")
			if err != nil {
				continue
			}
			entries = append(entries, zip.Entry{
				Name: fmt.Sprintf("products/%s.json", products[i].ID),
				Data: doc,
			})
		}
		if len(products) < exportPageSize {
			break
		}
	}
	archive := zip.Archive(entries)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=store-%s-%s.zip", store.ID, time.Now().Format("20060102")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
