package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"profile-service/internal/domain"
	"profile-service/internal/identity"
	"profile-service/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Me responds with the caller's profile, or JSON null when none exists.
// Reading never creates a row.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	creds := identity.Credentials{
		BearerToken:  identity.BearerFromHeader(r.Header.Get("Authorization")),
		TrustedPhone: r.URL.Query().Get("phone"),
	}

	profile, err := h.profileService.Me(r.Context(), creds)
	if err != nil {
		writeResolveError(w, err, "me_failed")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type updateRequest struct {
	Phone string `json:"phone"`
	domain.ProfilePatch
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	creds := identity.Credentials{
		BearerToken:  identity.BearerFromHeader(r.Header.Get("Authorization")),
		TrustedPhone: req.Phone,
	}

	profile, err := h.profileService.Update(r.Context(), creds, req.ProfilePatch)
	if err != nil {
		writeResolveError(w, err, "update_failed")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// writeResolveError maps each resolver failure to exactly one response shape;
// anything else is an upstream failure, logged with detail that never reaches
// the caller.
func writeResolveError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, identity.ErrMissingPhone):
		writeError(w, http.StatusBadRequest, "missing_phone")
	case errors.Is(err, identity.ErrMissingToken):
		writeError(w, http.StatusUnauthorized, "missing_token")
	case errors.Is(err, identity.ErrInvalidToken), errors.Is(err, identity.ErrMissingPhoneClaim):
		writeError(w, http.StatusUnauthorized, "invalid_token")
	default:
		log.Printf("ERROR %s: %v", fallback, err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
