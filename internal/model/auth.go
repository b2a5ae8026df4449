package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are JWT claims for anonymous frontend sessions
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// SessionResponse is returned after creating a session
type SessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}
