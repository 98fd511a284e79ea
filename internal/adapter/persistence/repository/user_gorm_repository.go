package repository

import (
	"context"
	"errors"
	"fmt"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IUserRepository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	m := toUserModel(u)
	err := r.db.WithContext(ctx).Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entities.User{}, interfaces.ErrEmailTaken
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	return r.takeWhere(ctx, "id = ?", id)
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.takeWhere(ctx, "email = ?", email)
}

func (r *UserGormRepository) takeWhere(ctx context.Context, query string, arg string) (entities.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.User{}, nil
	}
	if err != nil {
		return entities.User{}, err
	}
	return m.toEntity(), nil
}

func (r *UserGormRepository) GetByIDs(ctx context.Context, ids []string) (map[string]entities.User, error) {
	out := make(map[string]entities.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []userModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = m.toEntity()
	}
	return out, nil
}

func (r *UserGormRepository) UpdateInsuranceCompany(ctx context.Context, id string, company string) (entities.User, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update("insurance_company", company)
	if res.Error != nil {
		return entities.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.User{}, nil
	}
	return r.GetByID(ctx, id)
}
