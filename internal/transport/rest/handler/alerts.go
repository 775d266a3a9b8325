package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"mindscreen/internal/model"
	"mindscreen/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

const (
	defaultAlertLimit = 50
	maxAlertLimit     = 200
)

// AlertManager is the counsellor-facing side of the alert service
type AlertManager interface {
	ListRecent(ctx context.Context, limit int) ([]*model.Alert, error)
	Acknowledge(ctx context.Context, alertID, counsellorID string) (*model.Alert, error)
}

// AlertHandler handles counsellor alert endpoints
type AlertHandler struct {
	alertSvc AlertManager
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertSvc AlertManager) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

// List handles GET /v1/alerts
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultAlertLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}

	alerts, err := h.alertSvc.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}
	if alerts == nil {
		alerts = []*model.Alert{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// Acknowledge handles POST /v1/alerts/{id}/ack
func (h *AlertHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	counsellorID := middleware.GetCounsellorID(r.Context())
	if counsellorID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := mux.Vars(r)["id"]
	alert, err := h.alertSvc.Acknowledge(r.Context(), id, counsellorID)
	if errors.Is(err, model.ErrAlertNotFound) {
		writeError(w, http.StatusNotFound, "alert not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to acknowledge alert")
		return
	}

	writeJSON(w, http.StatusOK, alert)
}
