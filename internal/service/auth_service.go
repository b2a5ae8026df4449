package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// sessionTTL bounds anonymous sessions. Clients re-issue freely.
const sessionTTL = 24 * time.Hour

// AuthService issues and validates anonymous session tokens. There are no
// user accounts; sessions exist so the analyze endpoint has an identity
// to attach request logging and future throttling to.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(secret string) *AuthService {
	return &AuthService{jwtSecret: []byte(secret)}
}

// CreateSession issues a fresh anonymous session token
func (s *AuthService) CreateSession() (*model.SessionResponse, error) {
	sessionID := "sess_" + uuid.New().String()[:8]

	claims := &model.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.SessionResponse{
		Token:     tokenString,
		SessionID: sessionID,
	}, nil
}

// ValidateSession validates a session JWT and returns its claims
func (s *AuthService) ValidateSession(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
