package repository

import (
	"context"
	"fmt"
	"time"
)

// RevenueSummary aggregates completed-session financials for the reports view.
type RevenueSummary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalKWh            float64 `json:"totalKwh"`
	CompletedCount      int     `json:"completedCount"`
	ActiveCount         int     `json:"activeCount"`
	TodayRevenue        float64 `json:"todayRevenue"`
	TodayKWh            float64 `json:"todayKwh"`
	TodayCompletedCount int     `json:"todayCompletedCount"`
}

// RevenueSummary computes site totals in a single aggregate query. dayStart
// bounds the "today" figures.
func (r *SessionRepository) RevenueSummary(ctx context.Context, dayStart time.Time) (*RevenueSummary, error) {
	const query = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0),
			COALESCE(SUM(kwh) FILTER (WHERE status = 'completed'), 0),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'active'),
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed' AND end_time >= $1), 0),
			COALESCE(SUM(kwh) FILTER (WHERE status = 'completed' AND end_time >= $1), 0),
			COUNT(*) FILTER (WHERE status = 'completed' AND end_time >= $1)
		FROM charging_sessions
	`
	var summary RevenueSummary
	err := r.db.QueryRowContext(ctx, query, dayStart).Scan(
		&summary.TotalRevenue,
		&summary.TotalKWh,
		&summary.CompletedCount,
		&summary.ActiveCount,
		&summary.TodayRevenue,
		&summary.TodayKWh,
		&summary.TodayCompletedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("revenue summary: %w", err)
	}
	return &summary, nil
}
