package registry

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type RegisterOwnerMessage struct {
	Document  string `json:"document"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	State     string `json:"state"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	UseHashid bool
}

func (e RegisterOwnerMessage) Type() string { return "owner.register" }

type RegisterOwnerHandler struct {
	repo RepositoryManager
}

func NewRegisterOwnerHandler(repo RepositoryManager) *RegisterOwnerHandler {
	return &RegisterOwnerHandler{repo: repo}
}

// Execute registers a new owner account. The created owner is written back
// into the returned value so callers can mint a token for it right away.
func (h *RegisterOwnerHandler) Execute(ctx context.Context, event RegisterOwnerMessage) (*Owner, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during owner registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterOwnerHandler) execute(ctx context.Context, event RegisterOwnerMessage) (*Owner, error) {
	owner := &Owner{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		owner.PasswordHash = hash
		owner.Document = event.Document
		owner.Email = event.Email
		owner.Address = event.Address
		owner.State = event.State
		owner.City = event.City
		owner.Phone = event.Phone
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				owner.ID = id
			}
		}

		if owner, err = h.repo.Owners().CreateTx(ctx, tx, owner); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "owner registration transaction failed")
	}

	return owner, nil
}
