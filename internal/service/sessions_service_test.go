package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"chargeops/internal/models"
	"chargeops/internal/repository"
	"chargeops/internal/validate"
)

// memSessionStore mimics the conditional-write semantics of the Postgres
// repository so the state machine can be exercised without a database.
type memSessionStore struct {
	sessions map[string]models.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]models.Session)}
}

func (m *memSessionStore) Create(ctx context.Context, session *models.Session) error {
	m.sessions[session.ID] = *session
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (m *memSessionStore) Complete(ctx context.Context, id string, completion repository.SessionCompletion) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if s.Status != models.SessionStatusActive {
		return nil, repository.ErrSessionCompleted
	}
	endTime := completion.EndTime
	endEmployee := completion.EndEmployeeID
	s.EndTime = &endTime
	s.EndEmployeeID = &endEmployee
	s.KWh = completion.KWh
	s.DurationMinutes = completion.DurationMinutes
	s.Amount = completion.Amount
	s.PaymentMethod = completion.PaymentMethod
	s.ScreenImageURL = completion.ScreenImageURL
	s.Status = models.SessionStatusCompleted
	m.sessions[id] = s
	copied := s
	return &copied, nil
}

func (m *memSessionStore) List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error) {
	var out []models.Session
	for _, s := range m.sessions {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if q := strings.ToLower(filter.Query); q != "" {
			if !strings.Contains(strings.ToLower(s.VehicleType), q) &&
				!strings.Contains(strings.ToLower(s.Station), q) &&
				!strings.Contains(strings.ToLower(s.ID), q) {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memSessionStore) RevenueSummary(ctx context.Context, dayStart time.Time) (*repository.RevenueSummary, error) {
	summary := &repository.RevenueSummary{}
	for _, s := range m.sessions {
		switch s.Status {
		case models.SessionStatusActive:
			summary.ActiveCount++
		case models.SessionStatusCompleted:
			summary.CompletedCount++
			summary.TotalRevenue += s.Amount
			summary.TotalKWh += s.KWh
			if s.EndTime != nil && !s.EndTime.Before(dayStart) {
				summary.TodayCompletedCount++
				summary.TodayRevenue += s.Amount
				summary.TodayKWh += s.KWh
			}
		}
	}
	return summary, nil
}

type captureSink struct {
	events []SessionEvent
}

func (c *captureSink) Broadcast(event interface{}) {
	if e, ok := event.(SessionEvent); ok {
		c.events = append(c.events, e)
	}
}

func newTestSessionsService(store SessionStore, sink EventSink) *SessionsService {
	svc := NewSessionsService(store, nil, sink, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	ids := 0
	svc.newID = func() string {
		ids++
		return []string{"sess-1", "sess-2", "sess-3"}[ids-1]
	}
	return svc
}

func TestStartCreatesActiveSession(t *testing.T) {
	store := newMemSessionStore()
	sink := &captureSink{}
	svc := newTestSessionsService(store, sink)

	session, err := svc.Start(context.Background(), StartSessionInput{
		Station:         "Main",
		Platform:        1,
		VehicleType:     "sedan",
		StartEmployeeID: "emp-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.ID != "sess-1" {
		t.Fatalf("expected generated id, got %q", session.ID)
	}
	if session.Status != models.SessionStatusActive {
		t.Fatalf("expected active status, got %q", session.Status)
	}
	if !session.StartTime.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected pinned start time, got %v", session.StartTime)
	}
	if session.StartEmployeeID != "emp-1" {
		t.Fatalf("expected start employee, got %q", session.StartEmployeeID)
	}
	if session.EndTime != nil || session.EndEmployeeID != nil ||
		session.KWh != 0 || session.DurationMinutes != 0 ||
		session.Amount != 0 || session.PaymentMethod != "" {
		t.Fatalf("completion fields must be unset on start: %+v", session)
	}

	if len(sink.events) != 1 || sink.events[0].Type != EventSessionStarted {
		t.Fatalf("expected one started event, got %+v", sink.events)
	}
}

func TestStartValidationLeavesStoreUntouched(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionsService(store, nil)

	_, err := svc.Start(context.Background(), StartSessionInput{
		Station:  "Main",
		Platform: 1,
	})
	var vErr *validate.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("no session should be persisted, got %d", len(store.sessions))
	}
}

func TestCompleteFinalizesExactlyOnce(t *testing.T) {
	store := newMemSessionStore()
	sink := &captureSink{}
	svc := newTestSessionsService(store, sink)

	started, err := svc.Start(context.Background(), StartSessionInput{
		Station:         "Main",
		Platform:        1,
		VehicleType:     "sedan",
		StartEmployeeID: "emp-1",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	completed, err := svc.Complete(context.Background(), started.ID, CompleteSessionInput{
		KWh:             10.5,
		DurationMinutes: 45,
		Amount:          5.25,
		PaymentMethod:   models.PaymentMethodCash,
		EndEmployeeID:   "emp-2",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.SessionStatusCompleted {
		t.Fatalf("expected completed status, got %q", completed.Status)
	}
	if completed.EndTime == nil || completed.Amount != 5.25 || completed.KWh != 10.5 {
		t.Fatalf("completion fields not written: %+v", completed)
	}
	if completed.EndEmployeeID == nil || *completed.EndEmployeeID != "emp-2" {
		t.Fatalf("expected end employee, got %+v", completed.EndEmployeeID)
	}

	afterFirst := store.sessions[started.ID]

	_, err = svc.Complete(context.Background(), started.ID, CompleteSessionInput{
		KWh:             1,
		DurationMinutes: 1,
		Amount:          1,
		PaymentMethod:   models.PaymentMethodCard,
		EndEmployeeID:   "emp-3",
	})
	if !errors.Is(err, repository.ErrSessionCompleted) {
		t.Fatalf("second completion must fail with ErrSessionCompleted, got %v", err)
	}

	afterSecond := store.sessions[started.ID]
	if afterFirst.Amount != afterSecond.Amount || afterFirst.KWh != afterSecond.KWh ||
		afterFirst.PaymentMethod != afterSecond.PaymentMethod {
		t.Fatalf("record changed after rejected completion: %+v vs %+v", afterFirst, afterSecond)
	}

	if len(sink.events) != 2 || sink.events[1].Type != EventSessionCompleted {
		t.Fatalf("expected started and completed events, got %+v", sink.events)
	}
}

func TestCompleteUnknownSession(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionsService(store, nil)

	_, err := svc.Complete(context.Background(), "missing", CompleteSessionInput{
		KWh:             10,
		DurationMinutes: 30,
		Amount:          3,
		PaymentMethod:   models.PaymentMethodCard,
	})
	if !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatal("no record should be created")
	}
}

func TestCompleteValidationRejectedBeforeWrite(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionsService(store, nil)

	started, err := svc.Start(context.Background(), StartSessionInput{
		Station:     "Main",
		Platform:    2,
		VehicleType: "truck",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err = svc.Complete(context.Background(), started.ID, CompleteSessionInput{
		KWh:             0,
		DurationMinutes: 30,
		Amount:          3,
		PaymentMethod:   models.PaymentMethodCard,
	})
	var vErr *validate.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.sessions[started.ID].Status != models.SessionStatusActive {
		t.Fatal("session must stay active after rejected completion")
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newTestSessionsService(newMemSessionStore(), nil)

	_, err := svc.List(context.Background(), repository.SessionFilter{Status: "paused"})
	var vErr *validate.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRevenueSummaryBoundsToday(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionsService(store, nil)

	yesterday := time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	store.sessions["old"] = models.Session{
		ID: "old", Status: models.SessionStatusCompleted,
		Amount: 7, KWh: 14, EndTime: &yesterday,
	}
	store.sessions["new"] = models.Session{
		ID: "new", Status: models.SessionStatusCompleted,
		Amount: 5.25, KWh: 10.5, EndTime: &today,
	}
	store.sessions["running"] = models.Session{
		ID: "running", Status: models.SessionStatusActive,
	}

	summary, err := svc.RevenueSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalRevenue != 12.25 || summary.CompletedCount != 2 || summary.ActiveCount != 1 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.TodayRevenue != 5.25 || summary.TodayCompletedCount != 1 {
		t.Fatalf("unexpected today figures: %+v", summary)
	}
}
