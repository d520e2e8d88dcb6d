package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"chargeops/internal/models"
)

var (
	// ErrSessionNotFound indicates a missing session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCompleted is returned when completing an already-completed session.
	ErrSessionCompleted = errors.New("session already completed")
)

// SessionFilter narrows a session listing. Zero values mean no filtering.
type SessionFilter struct {
	Status string
	Query  string
}

// SessionCompletion holds the finalization fields written by Complete.
type SessionCompletion struct {
	EndTime         time.Time
	EndEmployeeID   string
	KWh             float64
	DurationMinutes int
	Amount          float64
	PaymentMethod   string
	ScreenImageURL  string
}

// SessionRepository handles persistence of charging sessions.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	id, start_time, end_time, start_employee_id, end_employee_id,
	station, platform, vehicle_type, vehicle_image_url, screen_image_url,
	kwh, duration_minutes, amount, payment_method, status, created_at, updated_at
`

// Create inserts a new active session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	const query = `
		INSERT INTO charging_sessions
			(id, start_time, start_employee_id, station, platform, vehicle_type, vehicle_image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		session.ID,
		session.StartTime,
		session.StartEmployeeID,
		session.Station,
		session.Platform,
		session.VehicleType,
		session.VehicleImageURL,
		session.Status,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("session create: %w", err)
	}
	return nil
}

// Get fetches a session by id.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM charging_sessions WHERE id = $1`, sessionColumns)
	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	return session, nil
}

// Complete finalizes a session with a conditional write keyed on the active
// status, so two concurrent completers cannot both succeed. Returns
// ErrSessionNotFound for an unknown id and ErrSessionCompleted when the
// session is already terminal.
func (r *SessionRepository) Complete(ctx context.Context, id string, completion SessionCompletion) (*models.Session, error) {
	query := fmt.Sprintf(`
		UPDATE charging_sessions
		SET end_time = $2,
		    end_employee_id = $3,
		    kwh = $4,
		    duration_minutes = $5,
		    amount = $6,
		    payment_method = $7,
		    screen_image_url = $8,
		    status = $9,
		    updated_at = NOW()
		WHERE id = $1 AND status = $10
		RETURNING %s
	`, sessionColumns)

	session, err := scanSession(r.db.QueryRowContext(ctx, query,
		id,
		completion.EndTime,
		completion.EndEmployeeID,
		completion.KWh,
		completion.DurationMinutes,
		completion.Amount,
		completion.PaymentMethod,
		completion.ScreenImageURL,
		models.SessionStatusCompleted,
		models.SessionStatusActive,
	))
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session complete: %w", err)
	}

	// The conditional write missed: classify as unknown id or lost race.
	if _, getErr := r.Get(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrSessionCompleted
}

// escapeLike neutralizes LIKE metacharacters so the filter query matches
// them literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// List returns sessions matching the filter, most recent start first.
func (r *SessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.Session, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(vehicle_type ILIKE $%d OR station ILIKE $%d OR id ILIKE $%d)", n, n, n))
	}

	query := fmt.Sprintf(`SELECT %s FROM charging_sessions`, sessionColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("session list: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var s models.Session
	var (
		endTime       sql.NullTime
		endEmployeeID sql.NullString
		vehicleImage  sql.NullString
		screenImage   sql.NullString
		kwh           sql.NullFloat64
		duration      sql.NullInt64
		paymentMethod sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&s.StartTime,
		&endTime,
		&s.StartEmployeeID,
		&endEmployeeID,
		&s.Station,
		&s.Platform,
		&s.VehicleType,
		&vehicleImage,
		&screenImage,
		&kwh,
		&duration,
		&s.Amount,
		&paymentMethod,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		s.EndTime = &t
	}
	if endEmployeeID.Valid {
		id := endEmployeeID.String
		s.EndEmployeeID = &id
	}
	s.VehicleImageURL = vehicleImage.String
	s.ScreenImageURL = screenImage.String
	s.KWh = kwh.Float64
	s.DurationMinutes = int(duration.Int64)
	s.PaymentMethod = paymentMethod.String
	return &s, nil
}
