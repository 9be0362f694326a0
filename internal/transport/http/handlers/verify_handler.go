package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"profile-service/internal/service"
)

type VerifyHandler struct {
	verifyService *service.VerifyService
}

func NewVerifyHandler(verifyService *service.VerifyService) *VerifyHandler {
	return &VerifyHandler{verifyService: verifyService}
}

type startRequest struct {
	Phone   string `json:"phone"`
	Channel string `json:"channel"`
}

func (h *VerifyHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	result, err := h.verifyService.Start(r.Context(), req.Phone, req.Channel)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhone):
			writeError(w, http.StatusBadRequest, "invalid_phone")
		case errors.Is(err, service.ErrBadChannel):
			writeError(w, http.StatusBadRequest, "invalid_channel")
		default:
			log.Printf("ERROR verify start: %v", err)
			writeError(w, http.StatusInternalServerError, "start_failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type checkRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *VerifyHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "missing_code")
		return
	}

	result, err := h.verifyService.Check(r.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhone):
			writeError(w, http.StatusBadRequest, "invalid_phone")
		case errors.Is(err, service.ErrInvalidCode):
			writeError(w, http.StatusUnauthorized, "invalid_code")
		default:
			log.Printf("ERROR verify check: %v", err)
			writeError(w, http.StatusInternalServerError, "check_failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
