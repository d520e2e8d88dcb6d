package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chargeops/internal/models"
	redisstore "chargeops/internal/redis"
	"chargeops/internal/repository"
	"chargeops/internal/validate"
)

// SessionStore is the persistence contract for charging sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Complete(ctx context.Context, id string, completion repository.SessionCompletion) (*models.Session, error)
	List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error)
	RevenueSummary(ctx context.Context, dayStart time.Time) (*repository.RevenueSummary, error)
}

// EventSink receives session lifecycle events for the live dashboard feed.
type EventSink interface {
	Broadcast(event interface{})
}

// SessionEvent is pushed to the event feed on every lifecycle change.
type SessionEvent struct {
	Type    string          `json:"type"`
	Session *models.Session `json:"session"`
}

// Event types.
const (
	EventSessionStarted   = "session_started"
	EventSessionCompleted = "session_completed"
)

// StartSessionInput carries fields for opening a session.
type StartSessionInput struct {
	Station         string
	Platform        int
	VehicleType     string
	VehicleImageURL string
	StartEmployeeID string
}

// CompleteSessionInput carries finalization fields.
type CompleteSessionInput struct {
	KWh             float64
	DurationMinutes int
	Amount          float64
	PaymentMethod   string
	ScreenImageURL  string
	EndEmployeeID   string
}

// SessionsService owns the active-to-completed session lifecycle.
type SessionsService struct {
	store       SessionStore
	activeStore *redisstore.Store
	events      EventSink
	logger      *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewSessionsService builds service. activeStore and events may be nil.
func NewSessionsService(store SessionStore, activeStore *redisstore.Store, events EventSink, logger *zap.Logger) *SessionsService {
	return &SessionsService{
		store:       store,
		activeStore: activeStore,
		events:      events,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Start opens a new active session.
func (s *SessionsService) Start(ctx context.Context, input StartSessionInput) (*models.Session, error) {
	input.Station = strings.TrimSpace(input.Station)
	input.VehicleType = strings.TrimSpace(input.VehicleType)
	input.VehicleImageURL = strings.TrimSpace(input.VehicleImageURL)

	if err := validate.SessionStart(input.VehicleType, input.Platform); err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:              s.newID(),
		StartTime:       s.now(),
		StartEmployeeID: input.StartEmployeeID,
		Station:         input.Station,
		Platform:        input.Platform,
		VehicleType:     input.VehicleType,
		VehicleImageURL: input.VehicleImageURL,
		Status:          models.SessionStatusActive,
	}

	if err := s.store.Create(ctx, session); err != nil {
		return nil, err
	}

	if s.activeStore != nil {
		cacheErr := s.activeStore.Save(ctx, redisstore.ActiveSession{
			SessionID:       session.ID,
			Station:         session.Station,
			Platform:        session.Platform,
			VehicleType:     session.VehicleType,
			StartEmployeeID: session.StartEmployeeID,
		})
		if cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to cache active session", zap.Error(cacheErr))
		}
	}

	if s.events != nil {
		s.events.Broadcast(SessionEvent{Type: EventSessionStarted, Session: session})
	}

	s.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("station", session.Station),
		zap.Int("platform", session.Platform),
	)
	return session, nil
}

// Complete finalizes a session exactly once. A second attempt surfaces
// repository.ErrSessionCompleted, never a silent no-op.
func (s *SessionsService) Complete(ctx context.Context, id string, input CompleteSessionInput) (*models.Session, error) {
	input.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	input.ScreenImageURL = strings.TrimSpace(input.ScreenImageURL)

	if err := validate.SessionCompletion(input.KWh, input.DurationMinutes, input.Amount, input.PaymentMethod); err != nil {
		return nil, err
	}

	session, err := s.store.Complete(ctx, id, repository.SessionCompletion{
		EndTime:         s.now(),
		EndEmployeeID:   input.EndEmployeeID,
		KWh:             input.KWh,
		DurationMinutes: input.DurationMinutes,
		Amount:          input.Amount,
		PaymentMethod:   input.PaymentMethod,
		ScreenImageURL:  input.ScreenImageURL,
	})
	if err != nil {
		return nil, err
	}

	if s.activeStore != nil {
		if err := s.activeStore.Delete(ctx, id); err != nil && err != redis.Nil {
			s.logger.Warn("failed to delete active session cache", zap.Error(err))
		}
	}

	if s.events != nil {
		s.events.Broadcast(SessionEvent{Type: EventSessionCompleted, Session: session})
	}

	s.logger.Info("session completed",
		zap.String("session_id", session.ID),
		zap.Float64("amount", session.Amount),
		zap.Float64("kwh", session.KWh),
	)
	return session, nil
}

// Get fetches one session by id.
func (s *SessionsService) Get(ctx context.Context, id string) (*models.Session, error) {
	return s.store.Get(ctx, id)
}

// List returns sessions matching the filter, most recent start first.
func (s *SessionsService) List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error) {
	if filter.Status != "" &&
		filter.Status != models.SessionStatusActive &&
		filter.Status != models.SessionStatusCompleted {
		return nil, &validate.Error{Field: "status", Reason: "must be active or completed"}
	}
	return s.store.List(ctx, filter)
}

// RevenueSummary aggregates site totals for the reports view. Today's
// figures are bounded by midnight UTC of the current day.
func (s *SessionsService) RevenueSummary(ctx context.Context) (*repository.RevenueSummary, error) {
	dayStart := s.now().Truncate(24 * time.Hour)
	return s.store.RevenueSummary(ctx, dayStart)
}
