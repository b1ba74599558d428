package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"flowz-server/internal/sqlinline"
)

type userProfileDTO struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	FullName      string         `json:"full_name"`
	Locale        string         `json:"locale"`
	Plan          string         `json:"plan"`
	PropertiesRaw map[string]any `json:"properties"`
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	var id, email, fullName, locale, plan string
	var propsBytes []byte
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &email, &fullName, &locale, &plan, &propsBytes, &createdAt, &updatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	props := map[string]any{}
	if len(propsBytes) > 0 {
		_ = json.Unmarshal(propsBytes, &props)
	}
	a.json(w, http.StatusOK, userProfileDTO{
		ID:            id,
		Email:         email,
		FullName:      fullName,
		Locale:        locale,
		Plan:          plan,
		PropertiesRaw: props,
	})
}
