package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/koko-king/models"
)

func TestAuthenticator(t *testing.T) {
	a, err := NewAuthenticator(map[models.Role]StaffCredential{
		models.RoleKitchen: {Identifier: "kitchen@kokoking.com", Password: "demo123"},
		models.RoleAdmin:   {Identifier: "admin", Password: "admin123"},
	})
	require.NoError(t, err)

	assert.NoError(t, a.Login(models.RoleKitchen, "Kitchen@KokoKing.com ", "demo123"))
	assert.NoError(t, a.Login(models.RoleAdmin, "admin", "admin123"))

	assert.ErrorIs(t, a.Login(models.RoleKitchen, "kitchen@kokoking.com", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, a.Login(models.RoleAdmin, "kitchen@kokoking.com", "demo123"), ErrInvalidCredentials)
	assert.ErrorIs(t, a.Login(models.RoleManager, "manager@kokoking.com", "admin123"), ErrInvalidCredentials)

	_, err = NewAuthenticator(map[models.Role]StaffCredential{models.RoleDriver: {Password: "x"}})
	assert.Error(t, err)
}
