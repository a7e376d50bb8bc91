package gormdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndtrung/khoban/internal/domain"
)

type ComboRepo struct{ db *gorm.DB }

func NewComboRepo(db *gorm.DB) *ComboRepo { return &ComboRepo{db: db} }

func (r *ComboRepo) List(ctx context.Context) ([]domain.Combo, error) {
	var list []domain.Combo
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ComboRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Combo, error) {
	var c domain.Combo
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ComboRepo) FindBySKU(ctx context.Context, sku string) (*domain.Combo, error) {
	var c domain.Combo
	if err := r.db.WithContext(ctx).First(&c, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ComboRepo) Save(ctx context.Context, c *domain.Combo) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ComboRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Combo{}, "id = ?", id).Error
}
