package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"chargeops/internal/models"
	"chargeops/internal/service"
)

// EmployeesService is the provisioning contract consumed by the handler.
type EmployeesService interface {
	Create(ctx context.Context, input service.CreateEmployeeInput) (*models.Employee, error)
	Update(ctx context.Context, id string, input service.UpdateEmployeeInput) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
}

// EmployeesHandler serves the /api/employees resource. Responses never carry
// credential material.
type EmployeesHandler struct {
	service EmployeesService
	logger  *zap.Logger
}

// NewEmployeesHandler returns handler.
func NewEmployeesHandler(service EmployeesService, logger *zap.Logger) *EmployeesHandler {
	return &EmployeesHandler{service: service, logger: logger}
}

func (h *EmployeesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		methodNotAllowed(w, "GET, POST, PUT")
	}
}

func (h *EmployeesHandler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeesHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Position string `json:"position"`
		Shift    string `json:"shift"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	emp, err := h.service.Create(r.Context(), service.CreateEmployeeInput{
		Name:     req.Name,
		Position: req.Position,
		Shift:    req.Shift,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, emp)
}

func (h *EmployeesHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		ID       string  `json:"id"`
		Name     *string `json:"name"`
		Position *string `json:"position"`
		Shift    *string `json:"shift"`
		Role     *string `json:"role"`
		Password *string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	emp, err := h.service.Update(r.Context(), req.ID, service.UpdateEmployeeInput{
		Name:     req.Name,
		Position: req.Position,
		Shift:    req.Shift,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}
