package repository

import (
	"context"
	"sort"
	"sync"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"
)

// ClaimMemoryRepository keeps claims in process memory (STORE_DRIVER=memory).
// A single mutex gives the same all-or-nothing guarantees the durable stores
// get from transactions.
type ClaimMemoryRepository struct {
	mu       sync.RWMutex
	claims   map[string]entities.Claim
	numbers  map[string]string
	activity map[string][]entities.ActivityLogEntry
}

var _ interfaces.IClaimRepository = (*ClaimMemoryRepository)(nil)

func NewClaimMemoryRepository() *ClaimMemoryRepository {
	return &ClaimMemoryRepository{
		claims:   make(map[string]entities.Claim),
		numbers:  make(map[string]string),
		activity: make(map[string][]entities.ActivityLogEntry),
	}
}

func (r *ClaimMemoryRepository) Create(_ context.Context, c entities.Claim, entry entities.ActivityLogEntry) (entities.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.numbers[c.ClaimNumber]; taken {
		return entities.Claim{}, interfaces.ErrClaimNumberTaken
	}
	r.numbers[c.ClaimNumber] = c.ID
	r.claims[c.ID] = c
	r.activity[c.ID] = append(r.activity[c.ID], entry)
	return c, nil
}

func (r *ClaimMemoryRepository) GetByID(_ context.Context, id string) (entities.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.claims[id], nil
}

func (r *ClaimMemoryRepository) ListByUserID(_ context.Context, userID string) ([]entities.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Claim, 0)
	for _, c := range r.claims {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sortClaimsNewestFirst(out)
	return out, nil
}

func (r *ClaimMemoryRepository) ListAll(_ context.Context) ([]entities.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Claim, 0, len(r.claims))
	for _, c := range r.claims {
		out = append(out, c)
	}
	sortClaimsNewestFirst(out)
	return out, nil
}

func (r *ClaimMemoryRepository) UpdateStatus(_ context.Context, id string, status entities.ClaimStatus, internalNote *string, entry entities.ActivityLogEntry) (entities.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.claims[id]
	if !ok {
		return entities.Claim{}, nil
	}
	c.Status = status
	if internalNote != nil {
		c.InternalNote = *internalNote
	}
	r.claims[id] = c
	r.activity[id] = append(r.activity[id], entry)
	return c, nil
}

func (r *ClaimMemoryRepository) ListActivity(_ context.Context, claimID string) ([]entities.ActivityLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.activity[claimID]
	out := make([]entities.ActivityLogEntry, len(src))
	for i := range src {
		out[len(src)-1-i] = src[i]
	}
	return out, nil
}

func sortClaimsNewestFirst(claims []entities.Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		if claims[i].CreatedAt.Equal(claims[j].CreatedAt) {
			return claims[i].ID > claims[j].ID
		}
		return claims[i].CreatedAt.After(claims[j].CreatedAt)
	})
}
