package registry_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registry "github.com/MiotoIntelligentApplications/integrado-back"
)

func TestOwnerJSONNeverLeaksPasswordHash(t *testing.T) {
	owner := &registry.Owner{
		ID:           uuid.New(),
		Document:     "12345678900",
		Email:        "owner@example.com",
		PasswordHash: "super-secret-hash",
	}

	raw, err := json.Marshal(owner)
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(raw), "super-secret-hash"))
	assert.Contains(t, string(raw), "owner@example.com")
}

func TestOwnerPublicProfile(t *testing.T) {
	id := uuid.New()
	owner := &registry.Owner{
		ID:           id,
		Document:     "12345678900",
		Email:        "owner@example.com",
		City:         "Curitiba",
		State:        "PR",
		PasswordHash: "super-secret-hash",
	}

	profile := owner.PublicProfile()
	assert.Equal(t, id.String(), profile.ID)
	assert.Equal(t, "owner@example.com", profile.Email)
	assert.Equal(t, "Curitiba", profile.City)

	raw, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "super-secret-hash"))

	var nilOwner *registry.Owner
	assert.Equal(t, registry.OwnerProfile{}, nilOwner.PublicProfile())
}

func TestVehicleOverwrite(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	vehicle := &registry.Vehicle{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		LicensePlate: "OLD1A11",
		Make:         "Volvo",
		Color:        "white",
		Year:         2019,
		AxlesNumber:  3,
		DateCreated:  &created,
	}
	originalID := vehicle.ID
	originalOwner := vehicle.OwnerID

	vehicle.Overwrite(&registry.Vehicle{
		LicensePlate: "NEW2B22",
		Type:         "trailer",
		Year:         2024,
	})

	// identity and ownership survive, everything else is replaced
	assert.Equal(t, originalID, vehicle.ID)
	assert.Equal(t, originalOwner, vehicle.OwnerID)
	assert.Equal(t, "NEW2B22", vehicle.LicensePlate)
	assert.Equal(t, "trailer", vehicle.Type)
	assert.Equal(t, 2024, vehicle.Year)
	assert.Empty(t, vehicle.Make)
	assert.Empty(t, vehicle.Color)
	assert.Zero(t, vehicle.AxlesNumber)

	require.NotNil(t, vehicle.DateLastUpdated)
	assert.WithinDuration(t, time.Now(), *vehicle.DateLastUpdated, time.Minute)
	assert.Equal(t, created, *vehicle.DateCreated)
}
