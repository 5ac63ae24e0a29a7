//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/jwt"
	"order-core/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("test-secret-key-that-is-long-enough")
	validator := usecase.NewTokenValidator(svc)
	userID := uuid.New()

	mint := func(subject, role string) string {
		token, err := svc.GenerateToken(subject, role, time.Hour)
		require.NoError(t, err)
		return token
	}

	t.Run("success: user and role", func(t *testing.T) {
		id, role, err := validator.ValidateToken(mint(userID.String(), "admin"))
		require.NoError(t, err)
		assert.Equal(t, userID, id)
		assert.Equal(t, usecase.RoleAdmin, role)
	})

	t.Run("success: missing role means customer", func(t *testing.T) {
		_, role, err := validator.ValidateToken(mint(userID.String(), ""))
		require.NoError(t, err)
		assert.Equal(t, usecase.RoleCustomer, role)
	})

	t.Run("error: subject is not a uuid", func(t *testing.T) {
		_, _, err := validator.ValidateToken(mint("ada", "customer"))
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})

	t.Run("error: unknown role", func(t *testing.T) {
		_, _, err := validator.ValidateToken(mint(userID.String(), "root"))
		assert.True(t, errs.Is(err, usecase.ErrUnknownRole))
	})
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"customer", "operator", "admin"} {
		role, err := usecase.ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}
	_, err := usecase.ParseRole("superuser")
	assert.Error(t, err)
}
