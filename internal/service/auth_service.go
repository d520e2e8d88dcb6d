package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"chargeops/internal/models"
	"chargeops/internal/password"
	"chargeops/internal/repository"
)

// ErrInvalidCredentials represents login failure.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// AuthService verifies logins against the credential store provisioned by
// EmployeesService.
type AuthService struct {
	store     EmployeeStore
	hasher    password.Hasher
	tokenizer *TokenService
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(store EmployeeStore, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:     store,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Login authenticates an employee and produces a JWT.
func (s *AuthService) Login(ctx context.Context, username, plain string) (string, *models.Employee, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return "", nil, ErrInvalidCredentials
	}

	cred, emp, err := s.store.GetCredentialByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(cred.PasswordHash, plain); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(emp.ID, cred.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("employee logged in", zap.String("employee_id", emp.ID))
	return token, emp, nil
}
