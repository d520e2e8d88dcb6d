package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"chargeops/internal/models"
)

var (
	// ErrEmployeeNotFound represents missing employee rows.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrUsernameTaken indicates the generated username already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// EmployeeUpdate carries a partial update; nil fields are left unchanged.
type EmployeeUpdate struct {
	Name         *string
	Position     *string
	Shift        *string
	Role         *string
	PasswordHash *string
}

// Empty reports whether the update would touch nothing.
func (u EmployeeUpdate) Empty() bool {
	return u.Name == nil && u.Position == nil && u.Shift == nil && u.Role == nil && u.PasswordHash == nil
}

// EmployeeRepository handles persistence of employees and their credentials.
// Every multi-row write runs inside a single transaction.
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository returns repository instance.
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts the credential and the employee as one atomic unit. On any
// failure the transaction rolls back and no row survives.
func (r *EmployeeRepository) Create(ctx context.Context, emp *models.Employee, cred *models.Credential) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("employee create: begin: %w", err)
	}
	defer tx.Rollback()

	const credQuery = `
		INSERT INTO credentials (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := tx.QueryRowContext(ctx, credQuery, cred.ID, cred.Username, cred.PasswordHash, cred.Role).
		Scan(&cred.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("employee create: insert credential: %w", err)
	}

	const empQuery = `
		INSERT INTO employees (id, name, position, role, shift, credential_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	if err := tx.QueryRowContext(ctx, empQuery, emp.ID, emp.Name, emp.Position, emp.Role, emp.Shift, cred.ID).
		Scan(&emp.CreatedAt); err != nil {
		return fmt.Errorf("employee create: insert employee: %w", err)
	}
	emp.CredentialID = cred.ID

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("employee create: commit: %w", err)
	}
	return nil
}

// Update applies present fields only. Role changes and password rotations
// propagate to the linked credential inside the same transaction.
func (r *EmployeeRepository) Update(ctx context.Context, id string, update EmployeeUpdate) (*models.Employee, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("employee update: begin: %w", err)
	}
	defer tx.Rollback()

	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Position != nil {
		add("position", *update.Position)
	}
	if update.Shift != nil {
		add("shift", *update.Shift)
	}
	if update.Role != nil {
		add("role", *update.Role)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("employee update: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrEmployeeNotFound
		}
	}

	if update.Role != nil {
		const query = `
			UPDATE credentials c
			SET role = $1
			FROM employees e
			WHERE e.credential_id = c.id AND e.id = $2
		`
		if _, err := tx.ExecContext(ctx, query, *update.Role, id); err != nil {
			return nil, fmt.Errorf("employee update: sync credential role: %w", err)
		}
	}

	if update.PasswordHash != nil {
		const query = `
			UPDATE credentials c
			SET password_hash = $1
			FROM employees e
			WHERE e.credential_id = c.id AND e.id = $2
		`
		if _, err := tx.ExecContext(ctx, query, *update.PasswordHash, id); err != nil {
			return nil, fmt.Errorf("employee update: rotate password: %w", err)
		}
	}

	emp, err := getEmployee(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("employee update: commit: %w", err)
	}
	return emp, nil
}

// GetByID fetches a single employee.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	return getEmployee(ctx, r.db, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getEmployee(ctx context.Context, q queryer, id string) (*models.Employee, error) {
	const query = `
		SELECT id, name, position, role, shift, credential_id, created_at
		FROM employees
		WHERE id = $1
	`
	var emp models.Employee
	err := q.QueryRowContext(ctx, query, id).
		Scan(&emp.ID, &emp.Name, &emp.Position, &emp.Role, &emp.Shift, &emp.CredentialID, &emp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("employee get: %w", err)
	}
	return &emp, nil
}

// List returns all employees ordered by name, id breaking ties.
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	const query = `
		SELECT id, name, position, role, shift, credential_id, created_at
		FROM employees
		ORDER BY name ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("employee list: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var emp models.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Position, &emp.Role, &emp.Shift, &emp.CredentialID, &emp.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetCredentialByUsername resolves a login identity together with its employee.
func (r *EmployeeRepository) GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, *models.Employee, error) {
	const query = `
		SELECT c.id, c.username, c.password_hash, c.role, c.created_at,
		       e.id, e.name, e.position, e.role, e.shift, e.credential_id, e.created_at
		FROM credentials c
		JOIN employees e ON e.credential_id = c.id
		WHERE c.username = $1
	`
	var cred models.Credential
	var emp models.Employee
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(username)).Scan(
		&cred.ID, &cred.Username, &cred.PasswordHash, &cred.Role, &cred.CreatedAt,
		&emp.ID, &emp.Name, &emp.Position, &emp.Role, &emp.Shift, &emp.CredentialID, &emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrEmployeeNotFound
		}
		return nil, nil, fmt.Errorf("credential get: %w", err)
	}
	return &cred, &emp, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
