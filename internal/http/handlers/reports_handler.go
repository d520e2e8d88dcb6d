package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"chargeops/internal/repository"
)

// ReportsService aggregates revenue figures.
type ReportsService interface {
	RevenueSummary(ctx context.Context) (*repository.RevenueSummary, error)
}

// NewReportsHandler handles GET /api/reports/summary.
func NewReportsHandler(service ReportsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.RevenueSummary(r.Context())
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
