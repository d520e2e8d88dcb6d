package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"chargeops/internal/http/middleware"
	"chargeops/internal/models"
	"chargeops/internal/repository"
	"chargeops/internal/service"
)

// SessionsService is the lifecycle contract consumed by the handler.
type SessionsService interface {
	Start(ctx context.Context, input service.StartSessionInput) (*models.Session, error)
	Complete(ctx context.Context, id string, input service.CompleteSessionInput) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error)
}

// SessionsHandler serves the /api/sessions resource.
type SessionsHandler struct {
	service SessionsService
	logger  *zap.Logger
}

// NewSessionsHandler returns handler.
func NewSessionsHandler(service SessionsService, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{service: service, logger: logger}
}

func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.post(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request) {
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		session, err := h.service.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
		return
	}

	filter := repository.SessionFilter{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
	}
	sessions, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *SessionsHandler) post(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Action          string  `json:"action"`
		ID              string  `json:"id"`
		Station         string  `json:"station"`
		Platform        int     `json:"platform"`
		VehicleType     string  `json:"vehicleType"`
		VehicleImageURL string  `json:"vehicleImageUrl"`
		KWh             float64 `json:"kwh"`
		DurationMinutes int     `json:"durationMinutes"`
		Amount          float64 `json:"amount"`
		PaymentMethod   string  `json:"paymentMethod"`
		ScreenImageURL  string  `json:"screenImageUrl"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch req.Action {
	case "start":
		session, err := h.service.Start(r.Context(), service.StartSessionInput{
			Station:         req.Station,
			Platform:        req.Platform,
			VehicleType:     req.VehicleType,
			VehicleImageURL: req.VehicleImageURL,
			StartEmployeeID: identity.EmployeeID,
		})
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, session)

	case "complete":
		if strings.TrimSpace(req.ID) == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}
		session, err := h.service.Complete(r.Context(), req.ID, service.CompleteSessionInput{
			KWh:             req.KWh,
			DurationMinutes: req.DurationMinutes,
			Amount:          req.Amount,
			PaymentMethod:   req.PaymentMethod,
			ScreenImageURL:  req.ScreenImageURL,
			EndEmployeeID:   identity.EmployeeID,
		})
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, session)

	default:
		writeError(w, http.StatusBadRequest, "action must be start or complete")
	}
}
