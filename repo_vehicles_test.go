package registry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func createTestOwner(t *testing.T, db *bun.DB, email string) *Owner {
	t.Helper()
	owner, err := NewOwnersRepository(db).Create(context.Background(), testOwner(email))
	require.NoError(t, err)
	return owner
}

func testVehicle(plate string) *Vehicle {
	return &Vehicle{
		LicensePlate:      plate,
		LicensePlateCity:  "Curitiba",
		LicensePlateState: "PR",
		Type:              "truck",
		Make:              "Volvo",
		Color:             "white",
		Year:              2020,
		Renavam:           "12345678901",
		Chassis:           "9BWZZZ377VT004251",
		AxlesNumber:       3,
	}
}

func TestVehiclesRepositoryCreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	owner := createTestOwner(t, db, "fleet@example.com")
	repo := NewVehiclesRepository(db)
	ctx := context.Background()

	vehicle, err := repo.Create(ctx, owner.ID, testVehicle("ABC1D23"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, vehicle.ID)
	assert.Equal(t, owner.ID, vehicle.OwnerID)

	found, err := repo.GetScoped(ctx, owner.ID, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC1D23", found.LicensePlate)
	assert.Equal(t, "Volvo", found.Make)
}

func TestVehiclesRepositoryCreateForcesOwner(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	owner := createTestOwner(t, db, "forced@example.com")
	intruder := createTestOwner(t, db, "intruder@example.com")
	repo := NewVehiclesRepository(db)
	ctx := context.Background()

	// a payload claiming a different owner gets stamped with the caller's id
	v := testVehicle("XYZ9A87")
	v.OwnerID = intruder.ID

	vehicle, err := repo.Create(ctx, owner.ID, v)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, vehicle.OwnerID)
}

func TestVehiclesRepositoryOwnershipScoping(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestOwner(t, db, "alice@example.com")
	bob := createTestOwner(t, db, "bob@example.com")
	repo := NewVehiclesRepository(db)
	ctx := context.Background()

	vehicle, err := repo.Create(ctx, alice.ID, testVehicle("AAA1B11"))
	require.NoError(t, err)

	// another owner's vehicle looks exactly like a missing row
	_, err = repo.GetScoped(ctx, bob.ID, vehicle.ID)
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	_, err = repo.UpdateScoped(ctx, bob.ID, vehicle.ID, testVehicle("BBB2C22"))
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	err = repo.DeleteScoped(ctx, bob.ID, vehicle.ID)
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	// the row is untouched for its real owner
	found, err := repo.GetScoped(ctx, alice.ID, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, "AAA1B11", found.LicensePlate)
}

func TestVehiclesRepositoryListByOwner(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestOwner(t, db, "alice@example.com")
	bob := createTestOwner(t, db, "bob@example.com")
	repo := NewVehiclesRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, alice.ID, testVehicle("AAA1B11"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, alice.ID, testVehicle("AAA2B22"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, bob.ID, testVehicle("BBB1C11"))
	require.NoError(t, err)

	vehicles, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	for _, v := range vehicles {
		assert.Equal(t, alice.ID, v.OwnerID)
	}

	empty, err := repo.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVehiclesRepositoryUpdateReplacesEverything(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	owner := createTestOwner(t, db, "update@example.com")
	repo := NewVehiclesRepository(db)
	ctx := context.Background()

	vehicle, err := repo.Create(ctx, owner.ID, testVehicle("OLD1A11"))
	require.NoError(t, err)

	replacement := &Vehicle{
		LicensePlate: "NEW2B22",
		Type:         "trailer",
		Year:         2024,
	}

	updated, err := repo.UpdateScoped(ctx, owner.ID, vehicle.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, "NEW2B22", updated.LicensePlate)
	assert.Equal(t, "trailer", updated.Type)
	assert.Equal(t, 2024, updated.Year)
	// fields absent from the replacement are cleared, not preserved
	assert.Empty(t, updated.Make)
	assert.Empty(t, updated.Color)
	assert.Zero(t, updated.AxlesNumber)

	require.NotNil(t, updated.DateLastUpdated)
	assert.WithinDuration(t, time.Now(), *updated.DateLastUpdated, time.Minute)

	// the replace is persisted
	found, err := repo.GetScoped(ctx, owner.ID, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, "NEW2B22", found.LicensePlate)
	assert.Empty(t, found.Make)
}

func TestVehiclesRepositoryDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	owner := createTestOwner(t, db, "delete@example.com")
	repo := NewVehiclesRepository(db)
	ctx := context.Background()

	vehicle, err := repo.Create(ctx, owner.ID, testVehicle("DEL1A11"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteScoped(ctx, owner.ID, vehicle.ID))

	_, err = repo.GetScoped(ctx, owner.ID, vehicle.ID)
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	// deleting twice reports not found
	err = repo.DeleteScoped(ctx, owner.ID, vehicle.ID)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
