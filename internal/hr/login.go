package hr

import (
	"errors"
	"log"
	"time"

	"github.com/talentoplus/talentoplus/internal/auth"
	"github.com/talentoplus/talentoplus/internal/models"
	"github.com/talentoplus/talentoplus/internal/store"
)

// AuthService authenticates employees against their stored password hash
// and issues API tokens
type AuthService struct {
	store  store.Store
	tokens *auth.Manager
}

// NewAuthService creates an auth service
func NewAuthService(st store.Store, tokens *auth.Manager) *AuthService {
	return &AuthService{store: st, tokens: tokens}
}

// Login verifies credentials and returns a signed token. Unknown emails,
// accounts without a password and wrong passwords all collapse into
// ErrInvalidCredentials.
func (s *AuthService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	employee, err := s.store.GetEmployeeByEmail(req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if employee.PasswordHash == "" || auth.HashPassword(req.Password) != employee.PasswordHash {
		return nil, ErrInvalidCredentials
	}

	response, err := s.tokens.IssueToken(employee)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	employee.LastLogin = &now
	if err := s.store.UpdateEmployee(employee); err == nil {
		if err := s.store.SaveChanges(); err != nil {
			log.Printf("Failed to record last login for employee %d: %v", employee.ID, err)
		}
	} else {
		log.Printf("Failed to record last login for employee %d: %v", employee.ID, err)
		// Drop whatever the failed update staged so the next SaveChanges
		// on this session does not adopt it
		if err := s.store.ClearPendingChanges(); err != nil {
			log.Printf("Failed to discard staged last-login update: %v", err)
		}
	}

	return response, nil
}
