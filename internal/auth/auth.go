package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/talentoplus/talentoplus/internal/models"
)

// RoleEmployee is the role granted to API-authenticated employees
const RoleEmployee = "Empleado"

// HashPassword hashes a password with SHA-256, base64-encoded
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Claims carried by API tokens
type Claims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens
type Manager struct {
	key      []byte
	issuer   string
	audience string
	lifetime time.Duration
}

// NewManager creates a token manager
func NewManager(key, issuer, audience string, expireMinutes int) *Manager {
	return &Manager{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		lifetime: time.Duration(expireMinutes) * time.Minute,
	}
}

// IssueToken creates a signed token for an authenticated employee
func (m *Manager) IssueToken(e *models.Employee) (*models.LoginResponse, error) {
	expiration := time.Now().Add(m.lifetime)

	claims := Claims{
		Email:    e.PersonalEmail,
		FullName: e.FullName(),
		Role:     RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", e.ID),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{
		Token:      token,
		Expiration: expiration,
		FullName:   e.FullName(),
		Role:       RoleEmployee,
	}, nil
}

// VerifyToken parses and validates a token, returning its claims
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.key, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithAudience(m.audience))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
