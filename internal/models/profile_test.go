package models_test

import (
	"testing"

	"nyayadhaar/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProfileBeforeCreateAssignsID(t *testing.T) {
	profile := &models.Profile{Email: "a@example.com"}
	err := profile.BeforeCreate(nil)
	assert.NoError(t, err)
	_, err = uuid.Parse(profile.ID)
	assert.NoError(t, err)
}

func TestProfileBeforeCreateKeepsExistingID(t *testing.T) {
	id := uuid.New().String()
	profile := &models.Profile{ID: id}
	err := profile.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, id, profile.ID)
}

func TestVictimBeforeCreateAssignsID(t *testing.T) {
	victim := &models.Victim{UserID: uuid.New().String()}
	err := victim.BeforeCreate(nil)
	assert.NoError(t, err)
	_, err = uuid.Parse(victim.ID)
	assert.NoError(t, err)
}

func TestIsOfficerRole(t *testing.T) {
	for _, role := range models.OfficerRoles {
		assert.True(t, models.IsOfficerRole(role), "role %s should be an officer role", role)
	}
	assert.False(t, models.IsOfficerRole(models.RoleUser))
	assert.False(t, models.IsOfficerRole(""))
	assert.False(t, models.IsOfficerRole("District_Officer"))
}
