package interfaces

import (
	"context"
	"errors"

	"fnol_intake/internal/domain/entities"
)

var ErrEmailTaken = errors.New("email already registered")

// IUserRepository abstracts persistence for user accounts.
// Lookups return a zero User (empty ID) when nothing matches.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]entities.User, error)
	UpdateInsuranceCompany(ctx context.Context, id string, company string) (entities.User, error)
}
