package import_targets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflane/backoffice-backend/models"
)

func TestNormalizeEmail(t *testing.T) {
	email, err := normalizeEmail("  Alice.Martin@Acme.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice.martin@acme.com", email)

	_, err = normalizeEmail("not an address")
	assert.Error(t, err)

	_, err = normalizeEmail("")
	assert.Error(t, err)
}

func TestRegistryHoldsAllEntityTypes(t *testing.T) {
	registry := NewRegistry(nil)

	for _, entityType := range []models.ImportEntityType{
		models.ImportEntityLead,
		models.ImportEntityEmployee,
		models.ImportEntityCandidate,
		models.ImportEntityCheckInOut,
	} {
		target, err := registry.TargetFor(entityType)
		require.NoError(t, err)
		assert.Equal(t, entityType, target.EntityType())
	}

	_, err := registry.TargetFor("SPACESHIP")
	assert.ErrorIs(t, err, models.ErrUnknownEntityType)
}

func TestCheckInOutNaturalKey(t *testing.T) {
	target := CheckInOutTarget{}
	recordedAt := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

	key, err := target.NaturalKeyOf(models.ImportRecord{
		"employee_number": "EMP-042",
		"timestamp":       recordedAt,
		"direction":       "IN",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP-042@2024-03-15T08:30:00Z", key)

	_, err = target.NaturalKeyOf(models.ImportRecord{"employee_number": "EMP-042"})
	assert.Error(t, err)
}

func TestLeadDefaultsStatusOnCreate(t *testing.T) {
	attributes := adaptLeadAttributes(models.ImportRecord{
		"email": "alice@acme.com",
	})
	assert.Equal(t, "NEW", attributes.Status)

	attributes = adaptLeadAttributes(models.ImportRecord{
		"email":  "alice@acme.com",
		"status": "QUALIFIED",
	})
	assert.Equal(t, "QUALIFIED", attributes.Status)
}

func TestEmployeeAttributesAdaptation(t *testing.T) {
	hiredOn := time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)
	attributes := adaptEmployeeAttributes(models.ImportRecord{
		"email":           "bob@acme.com",
		"first_name":      "Bob",
		"last_name":       "Diallo",
		"employee_number": "EMP-007",
		"hired_on":        hiredOn,
	})

	assert.Equal(t, "EMP-007", attributes.EmployeeNumber)
	require.NotNil(t, attributes.HiredOn)
	assert.True(t, hiredOn.Equal(*attributes.HiredOn))

	attributes = adaptEmployeeAttributes(models.ImportRecord{"email": "bob@acme.com"})
	assert.Nil(t, attributes.HiredOn)
}
