package registry

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// VehiclesRepository persists vehicles. Every read and write that targets a
// single row is scoped by owner id so one owner can never see or touch
// another owner's records.
type VehiclesRepository interface {
	Create(ctx context.Context, ownerID uuid.UUID, vehicle *Vehicle) (*Vehicle, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Vehicle, error)
	GetScoped(ctx context.Context, ownerID, vehicleID uuid.UUID) (*Vehicle, error)
	UpdateScoped(ctx context.Context, ownerID, vehicleID uuid.UUID, replacement *Vehicle) (*Vehicle, error)
	DeleteScoped(ctx context.Context, ownerID, vehicleID uuid.UUID) error
}

type vehiclesRepository struct {
	db *bun.DB
}

// NewVehiclesRepository creates a Bun backed vehicles repository.
func NewVehiclesRepository(db *bun.DB) VehiclesRepository {
	return &vehiclesRepository{db: db}
}

func (r *vehiclesRepository) Create(ctx context.Context, ownerID uuid.UUID, vehicle *Vehicle) (*Vehicle, error) {
	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}
	vehicle.OwnerID = ownerID

	_, err := r.db.NewInsert().
		Model(vehicle).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to create vehicle")
	}

	return vehicle, nil
}

func (r *vehiclesRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Vehicle, error) {
	var vehicles []*Vehicle
	err := r.db.NewSelect().
		Model(&vehicles).
		Where("owner_id = ?", ownerID).
		Order("date_created DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Vehicle{}, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "vehicle list failed")
	}

	if vehicles == nil {
		vehicles = []*Vehicle{}
	}
	return vehicles, nil
}

func (r *vehiclesRepository) GetScoped(ctx context.Context, ownerID, vehicleID uuid.UUID) (*Vehicle, error) {
	vehicle := new(Vehicle)
	err := r.db.NewSelect().
		Model(vehicle).
		Where("id = ? AND owner_id = ?", vehicleID, ownerID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVehicleNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "vehicle lookup failed")
	}
	return vehicle, nil
}

// UpdateScoped replaces every mutable column with the values carried by
// replacement and refreshes date_last_updated.
func (r *vehiclesRepository) UpdateScoped(ctx context.Context, ownerID, vehicleID uuid.UUID, replacement *Vehicle) (*Vehicle, error) {
	vehicle, err := r.GetScoped(ctx, ownerID, vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Overwrite(replacement)

	_, err = r.db.NewUpdate().
		Model(vehicle).
		Where("id = ? AND owner_id = ?", vehicleID, ownerID).
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to update vehicle")
	}

	return vehicle, nil
}

func (r *vehiclesRepository) DeleteScoped(ctx context.Context, ownerID, vehicleID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Vehicle)(nil)).
		Where("id = ? AND owner_id = ?", vehicleID, ownerID).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to delete vehicle")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to read delete result")
	}
	if affected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}
