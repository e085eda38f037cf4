package registry

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS vehicle_owners (
		id UUID PRIMARY KEY,
		document VARCHAR NOT NULL UNIQUE,
		email VARCHAR NOT NULL UNIQUE,
		address VARCHAR,
		state VARCHAR,
		city VARCHAR,
		phone VARCHAR,
		password_hash VARCHAR NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES vehicle_owners (id),
		license_plate VARCHAR NOT NULL,
		license_plate_city VARCHAR,
		license_plate_state VARCHAR,
		v_type VARCHAR,
		v_make VARCHAR,
		color VARCHAR,
		year INTEGER,
		renavam VARCHAR,
		chassis VARCHAR,
		axles_number INTEGER,
		date_created TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		date_last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_owner_id ON vehicles (owner_id)`,
}

// CreateSchema creates the tables the package needs if they do not exist.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to create schema")
		}
	}
	return nil
}
