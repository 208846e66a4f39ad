package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetverse/models"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-key"), time.Hour)

	p := models.Principal{
		ID:    "64f000000000000000000001",
		Email: "hr@example.com",
		Name:  "Dana",
		Role:  models.RoleHR,
	}

	token, err := issuer.Generate(p)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewTokenIssuer([]byte("key-a"), time.Hour)
	other := NewTokenIssuer([]byte("key-b"), time.Hour)

	token, err := issuer.Generate(models.Principal{ID: "1", Email: "e@x.com", Role: models.RoleEmployee})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-key"), -time.Minute)

	token, err := issuer.Generate(models.Principal{ID: "1", Email: "e@x.com", Role: models.RoleHR})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-key"), time.Hour)

	token, err := issuer.Generate(models.Principal{ID: "1", Email: "e@x.com", Role: "superadmin"})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorContains(t, err, "unknown role")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
