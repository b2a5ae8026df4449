package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateSession(t *testing.T) {
	svc := NewAuthService("test-secret")

	resp, err := svc.CreateSession()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.SessionID, "sess_"))
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateSession(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, claims.SessionID)
	require.NotNil(t, claims.ExpiresAt)
}

func TestValidateSessionRejectsBadToken(t *testing.T) {
	svc := NewAuthService("test-secret")

	_, err := svc.ValidateSession("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateSessionRejectsForeignSecret(t *testing.T) {
	resp, err := NewAuthService("secret-a").CreateSession()
	require.NoError(t, err)

	_, err = NewAuthService("secret-b").ValidateSession(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
