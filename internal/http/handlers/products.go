package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"flowz-server/internal/domain"

	"github.com/go-chi/chi/v5"
)

type productDTO struct {
	ID             string            `json:"id"`
	StoreID        string            `json:"store_id"`
	Title          string            `json:"title"`
	SKU            string            `json:"sku,omitempty"`
	Price          float64           `json:"price"`
	ImageURL       string            `json:"image_url,omitempty"`
	Categories     []string          `json:"categories,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
	WorkingContent map[string]any    `json:"working_content,omitempty"`
	DraftContent   map[string]any    `json:"draft_content,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func toProductDTO(p *domain.Product) productDTO {
	return productDTO{
		ID:             p.ID,
		StoreID:        p.StoreID,
		Title:          p.Title,
		SKU:            p.SKU,
		Price:          p.Price,
		ImageURL:       p.ImageURL,
		Categories:     p.Categories,
		Tags:           p.Tags,
		Attributes:     p.Attributes,
		WorkingContent: p.WorkingContent,
		DraftContent:   p.DraftContent,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// storeForRequest resolves the store path parameter and enforces ownership.
func (a *App) storeForRequest(w http.ResponseWriter, r *http.Request) (*domain.Store, bool) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return nil, false
	}
	storeID := chi.URLParam(r, "store_id")
	store, err := a.Stores.GetForOwner(r.Context(), storeID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusForbidden, "forbidden", "store not accessible")
			return nil, false
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve store")
		return nil, false
	}
	return store, true
}

func (a *App) ProductsList(w http.ResponseWriter, r *http.Request) {
	store, ok := a.storeForRequest(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	products, err := a.Products.ListByStore(r.Context(), store.ID, limit, offset)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load products")
		return
	}
	items := make([]productDTO, 0, len(products))
	for i := range products {
		items = append(items, toProductDTO(&products[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ProductGet(w http.ResponseWriter, r *http.Request) {
	store, ok := a.storeForRequest(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "product_id")
	product, err := a.Products.GetForStore(r.Context(), productID, store.ID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	a.json(w, http.StatusOK, toProductDTO(product))
}

type draftUpdateRequest struct {
	Draft map[string]any `json:"draft"`
}

// ProductDraftUpdate replaces the product draft. The previous draft is
// snapshotted as a version first so the edit can be rolled back.
func (a *App) ProductDraftUpdate(w http.ResponseWriter, r *http.Request) {
	store, ok := a.storeForRequest(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "product_id")
	var req draftUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Draft == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "draft required")
		return
	}
	product, err := a.Products.GetForStore(r.Context(), productID, store.ID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if len(product.DraftContent) > 0 {
		if err := a.Products.CreateVersion(r.Context(), product.ID, a.currentUserID(r), product.DraftContent); err != nil {
			a.Logger.Error().Err(err).Str("product_id", product.ID).Msg("snapshot draft failed")
		}
	}
	if err := a.Products.UpdateDraft(r.Context(), product.ID, req.Draft); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update draft")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": product.ID, "draft_content": req.Draft})
}

func (a *App) ProductVersions(w http.ResponseWriter, r *http.Request) {
	store, ok := a.storeForRequest(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "product_id")
	if _, err := a.Products.GetForStore(r.Context(), productID, store.ID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	versions, err := a.Products.ListVersions(r.Context(), productID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load versions")
		return
	}
	items := make([]map[string]any, 0, len(versions))
	for _, v := range versions {
		items = append(items, map[string]any{
			"id":         v.ID,
			"version":    v.Version,
			"snapshot":   v.Snapshot,
			"created_by": v.CreatedBy,
			"created_at": v.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// ProductRestore copies a stored version snapshot back into the draft. The
// current draft is snapshotted first, so restore itself is reversible.
func (a *App) ProductRestore(w http.ResponseWriter, r *http.Request) {
	store, ok := a.storeForRequest(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "product_id")
	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil || version <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid version")
		return
	}
	product, err := a.Products.GetForStore(r.Context(), productID, store.ID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	snapshot, err := a.Products.GetVersion(r.Context(), productID, version)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "version not found")
		return
	}
	var draft map[string]any
	if err := json.Unmarshal(snapshot.Snapshot, &draft); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "corrupt version snapshot")
		return
	}
	if len(product.DraftContent) > 0 {
		if err := a.Products.CreateVersion(r.Context(), product.ID, a.currentUserID(r), product.DraftContent); err != nil {
			a.Logger.Error().Err(err).Str("product_id", product.ID).Msg("snapshot draft failed")
		}
	}
	if err := a.Products.UpdateDraft(r.Context(), product.ID, draft); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to restore draft")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": product.ID, "version": version, "draft_content": draft})
}
