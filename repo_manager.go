package registry

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RepositoryManager bundles the persistence repositories behind a single
// handle and exposes transaction scoping.
type RepositoryManager interface {
	Owners() OwnersRepository
	Vehicles() VehiclesRepository
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
	MustValidate()
}

type repositoryManager struct {
	db       *bun.DB
	owners   OwnersRepository
	vehicles VehiclesRepository
}

// NewRepositoryManager creates the repository manager for the given database.
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &repositoryManager{
		db:       db,
		owners:   NewOwnersRepository(db),
		vehicles: NewVehiclesRepository(db),
	}
}

func (m *repositoryManager) Owners() OwnersRepository {
	return m.owners
}

func (m *repositoryManager) Vehicles() VehiclesRepository {
	return m.vehicles
}

func (m *repositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	if opts == nil {
		opts = &sql.TxOptions{}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, fn)
	}
}

func (m *repositoryManager) Validate() error {
	if m.db == nil {
		return goerrors.New("repository manager has no database", goerrors.CategoryInternal)
	}
	return m.db.Ping()
}

func (m *repositoryManager) MustValidate() {
	if err := m.Validate(); err != nil {
		panic(err)
	}
}
