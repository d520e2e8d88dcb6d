package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chargeops/internal/credentials"
	"chargeops/internal/models"
	"chargeops/internal/password"
	"chargeops/internal/repository"
	"chargeops/internal/validate"
)

// EmployeeStore is the persistence contract for employees and credentials.
type EmployeeStore interface {
	Create(ctx context.Context, emp *models.Employee, cred *models.Credential) error
	Update(ctx context.Context, id string, update repository.EmployeeUpdate) (*models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, *models.Employee, error)
}

// CreateEmployeeInput carries fields for a new staff record.
type CreateEmployeeInput struct {
	Name     string
	Position string
	Shift    string
	Role     string
	Password string
}

// UpdateEmployeeInput is a partial update; nil fields are left unchanged.
type UpdateEmployeeInput struct {
	Name     *string
	Position *string
	Shift    *string
	Role     *string
	Password *string
}

// EmployeesService provisions staff records with their login credentials.
type EmployeesService struct {
	store  EmployeeStore
	hasher password.Hasher
	gen    *credentials.Generator
	logger *zap.Logger

	newID func() string
}

// NewEmployeesService builds service.
func NewEmployeesService(store EmployeeStore, hasher password.Hasher, gen *credentials.Generator, logger *zap.Logger) *EmployeesService {
	return &EmployeesService{
		store:  store,
		hasher: hasher,
		gen:    gen,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Create provisions an employee and its credential as one atomic unit. When
// no password is supplied the default policy password is hashed instead. A
// generated username that collides with an existing one is regenerated once.
func (s *EmployeesService) Create(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Position = strings.TrimSpace(input.Position)
	input.Shift = strings.TrimSpace(input.Shift)
	input.Role = strings.TrimSpace(input.Role)
	if input.Role == "" {
		input.Role = models.RoleEmployee
	}

	if err := validate.EmployeeCreate(input.Name, input.Position, input.Shift); err != nil {
		return nil, err
	}
	if err := validate.Role(input.Role); err != nil {
		return nil, err
	}

	plain := input.Password
	if plain == "" {
		plain = credentials.DefaultPassword
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}

	emp := &models.Employee{
		ID:       s.newID(),
		Name:     input.Name,
		Position: input.Position,
		Role:     input.Role,
		Shift:    input.Shift,
	}
	cred := &models.Credential{
		ID:           s.newID(),
		Username:     s.gen.Username(),
		PasswordHash: hash,
		Role:         input.Role,
	}

	if err := s.store.Create(ctx, emp, cred); err != nil {
		if !errors.Is(err, repository.ErrUsernameTaken) {
			return nil, err
		}
		cred.Username = s.gen.Username()
		if err := s.store.Create(ctx, emp, cred); err != nil {
			return nil, err
		}
	}

	s.logger.Info("employee created",
		zap.String("employee_id", emp.ID),
		zap.String("role", emp.Role),
		zap.String("shift", emp.Shift),
	)
	return emp, nil
}

// Update applies the supplied fields only; strings that trim to empty count
// as absent. Role changes and password rotations ride the same transaction
// as the employee row.
func (s *EmployeesService) Update(ctx context.Context, id string, input UpdateEmployeeInput) (*models.Employee, error) {
	var update repository.EmployeeUpdate

	if v := trimmed(input.Name); v != nil {
		update.Name = v
	}
	if v := trimmed(input.Position); v != nil {
		update.Position = v
	}
	if v := trimmed(input.Shift); v != nil {
		if err := validate.Shift(*v); err != nil {
			return nil, err
		}
		update.Shift = v
	}
	if v := trimmed(input.Role); v != nil {
		if err := validate.Role(*v); err != nil {
			return nil, err
		}
		update.Role = v
	}
	if v := trimmed(input.Password); v != nil {
		hash, err := s.hasher.Hash(*v)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	if update.Empty() {
		return nil, &validate.Error{Field: "body", Reason: "has no fields to update"}
	}

	emp, err := s.store.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", zap.String("employee_id", emp.ID))
	return emp, nil
}

// List returns all employees ordered by name.
func (s *EmployeesService) List(ctx context.Context) ([]models.Employee, error) {
	return s.store.List(ctx)
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
