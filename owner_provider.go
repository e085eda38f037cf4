package registry

import (
	"context"

	"github.com/goliatone/go-errors"
)

// OwnerIdentity adapts a stored Owner to the Identity interface consumed by
// the token service.
type OwnerIdentity struct {
	owner *Owner
}

func NewOwnerIdentity(owner *Owner) *OwnerIdentity {
	return &OwnerIdentity{owner: owner}
}

func (o *OwnerIdentity) ID() string    { return o.owner.ID.String() }
func (o *OwnerIdentity) Email() string { return o.owner.Email }

func (o *OwnerIdentity) Profile() OwnerProfile {
	return o.owner.PublicProfile()
}

// OwnerProvider implements IdentityProvider over the owners repository.
type OwnerProvider struct {
	repo   OwnersRepository
	logger Logger
}

func NewOwnerProvider(repo OwnersRepository) *OwnerProvider {
	return &OwnerProvider{
		repo:   repo,
		logger: defLogger{},
	}
}

func (p *OwnerProvider) WithLogger(logger Logger) *OwnerProvider {
	p.logger = logger
	return p
}

// VerifyIdentity checks the email and password pair. A missing owner and a
// wrong password produce the same error so callers cannot enumerate
// registered addresses.
func (p *OwnerProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	owner, err := p.repo.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			// burn a comparison so timing does not leak existence
			_ = ComparePasswordAndHash(password, RandomPasswordHash())
			return nil, ErrMismatchedHashAndPassword
		}
		p.logger.Error("VerifyIdentity lookup error", "error", err)
		return nil, err
	}

	if err := ComparePasswordAndHash(password, owner.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return NewOwnerIdentity(owner), nil
}

// FindIdentityByIdentifier resolves an owner by id or email.
func (p *OwnerProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	owner, err := p.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return NewOwnerIdentity(owner), nil
}
