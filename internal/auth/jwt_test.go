package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	adminID := uuid.New()
	now := time.Now().UTC()

	token, err := m.Issue(adminID, "Alex Officer", "superadmin", now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, adminID.String(), claims.AdminID)
	assert.Equal(t, "Alex Officer", claims.AdminName)
	assert.Equal(t, "superadmin", claims.AdminRole)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)

	token, err := m.Issue(uuid.New(), "Alex Officer", "superadmin", time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	validator := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New(), "Alex Officer", "superadmin", time.Now().UTC())
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsMalformedToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	_, err := m.Validate("definitely.not.ajwt")
	assert.Error(t, err)
}
