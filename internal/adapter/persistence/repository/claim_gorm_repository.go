package repository

import (
	"context"
	"errors"
	"fmt"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"

	"gorm.io/gorm"
)

var errClaimMissing = errors.New("claim missing")

// ClaimGormRepository persists claims in a SQL database through GORM.
type ClaimGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IClaimRepository = (*ClaimGormRepository)(nil)

func NewClaimGormRepository(db *gorm.DB) *ClaimGormRepository {
	return &ClaimGormRepository{db: db}
}

func (r *ClaimGormRepository) Create(ctx context.Context, c entities.Claim, entry entities.ActivityLogEntry) (entities.Claim, error) {
	claim := toClaimModel(c)
	log := toActivityModel(entry)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}
		return tx.Create(&log).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entities.Claim{}, interfaces.ErrClaimNumberTaken
	}
	if err != nil {
		return entities.Claim{}, fmt.Errorf("create claim: %w", err)
	}
	return c, nil
}

func (r *ClaimGormRepository) GetByID(ctx context.Context, id string) (entities.Claim, error) {
	var m claimModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Claim{}, nil
	}
	if err != nil {
		return entities.Claim{}, err
	}
	return m.toEntity(), nil
}

func (r *ClaimGormRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Claim, error) {
	var rows []claimModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return claimsFromModels(rows), nil
}

func (r *ClaimGormRepository) ListAll(ctx context.Context) ([]entities.Claim, error) {
	var rows []claimModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return claimsFromModels(rows), nil
}

func (r *ClaimGormRepository) UpdateStatus(ctx context.Context, id string, status entities.ClaimStatus, internalNote *string, entry entities.ActivityLogEntry) (entities.Claim, error) {
	changes := map[string]any{"status": string(status)}
	if internalNote != nil {
		changes["internal_note"] = *internalNote
	}
	log := toActivityModel(entry)

	var updated claimModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&claimModel{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errClaimMissing
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(&updated).Error
	})
	if errors.Is(err, errClaimMissing) {
		return entities.Claim{}, nil
	}
	if err != nil {
		return entities.Claim{}, fmt.Errorf("update claim status: %w", err)
	}
	return updated.toEntity(), nil
}

func (r *ClaimGormRepository) ListActivity(ctx context.Context, claimID string) ([]entities.ActivityLogEntry, error) {
	var rows []activityModel
	err := r.db.WithContext(ctx).
		Where("claim_id = ?", claimID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.ActivityLogEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func claimsFromModels(rows []claimModel) []entities.Claim {
	out := make([]entities.Claim, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out
}
