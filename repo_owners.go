package registry

import (
	"context"
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OwnersRepository persists vehicle owner accounts.
type OwnersRepository interface {
	Create(ctx context.Context, owner *Owner) (*Owner, error)
	CreateTx(ctx context.Context, tx bun.IDB, owner *Owner) (*Owner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	GetByEmail(ctx context.Context, email string) (*Owner, error)
	GetByIdentifier(ctx context.Context, identifier string) (*Owner, error)
}

type ownersRepository struct {
	db *bun.DB
}

// NewOwnersRepository creates a Bun backed owners repository.
func NewOwnersRepository(db *bun.DB) OwnersRepository {
	return &ownersRepository{db: db}
}

func (r *ownersRepository) Create(ctx context.Context, owner *Owner) (*Owner, error) {
	return r.CreateTx(ctx, r.db, owner)
}

func (r *ownersRepository) CreateTx(ctx context.Context, tx bun.IDB, owner *Owner) (*Owner, error) {
	if owner.ID == uuid.Nil {
		owner.ID = uuid.New()
	}

	_, err := tx.NewInsert().
		Model(owner).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if dup := uniqueViolationError(err); dup != nil {
			return nil, dup
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to create owner")
	}

	return owner, nil
}

func (r *ownersRepository) GetByID(ctx context.Context, id uuid.UUID) (*Owner, error) {
	owner := new(Owner)
	err := r.db.NewSelect().
		Model(owner).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapOwnerLookupError(err)
	}
	return owner, nil
}

func (r *ownersRepository) GetByEmail(ctx context.Context, email string) (*Owner, error) {
	owner := new(Owner)
	err := r.db.NewSelect().
		Model(owner).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, wrapOwnerLookupError(err)
	}
	return owner, nil
}

// GetByIdentifier accepts either an owner id or an email address.
func (r *ownersRepository) GetByIdentifier(ctx context.Context, identifier string) (*Owner, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		return r.GetByID(ctx, id)
	}
	return r.GetByEmail(ctx, identifier)
}

func wrapOwnerLookupError(err error) error {
	if err == sql.ErrNoRows {
		return ErrOwnerNotFound
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "owner lookup failed")
}

// uniqueViolationError maps a driver uniqueness failure to the matching
// conflict error, using the constraint column named in the driver message.
func uniqueViolationError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") &&
		!strings.Contains(msg, "duplicate key value") {
		return nil
	}
	if strings.Contains(msg, "document") {
		return ErrDocumentRegistered
	}
	return ErrEmailRegistered
}
