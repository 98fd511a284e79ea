package interfaces

import (
	"context"
	"errors"

	"fnol_intake/internal/domain/entities"
)

// ErrClaimNumberTaken is returned by Create when the generated claim number is
// already in use. Callers retry with a new number.
var ErrClaimNumberTaken = errors.New("claim number already taken")

// IClaimRepository abstracts persistence for claims and their activity log.
//
// Atomicity requirements:
//   - Create persists the claim and its creation entry together.
//   - UpdateStatus changes the status (and note) and appends the entry together;
//     no reader may observe one without the other.
//
// Lookups return a zero Claim (empty ID) when nothing matches.

type IClaimRepository interface {
	Create(ctx context.Context, c entities.Claim, entry entities.ActivityLogEntry) (entities.Claim, error)
	GetByID(ctx context.Context, id string) (entities.Claim, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Claim, error)
	ListAll(ctx context.Context) ([]entities.Claim, error)
	UpdateStatus(ctx context.Context, id string, status entities.ClaimStatus, internalNote *string, entry entities.ActivityLogEntry) (entities.Claim, error)
	ListActivity(ctx context.Context, claimID string) ([]entities.ActivityLogEntry, error)
}
