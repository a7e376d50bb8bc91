package gormdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndtrung/khoban/internal/domain"
)

type EcommerceOrderRepo struct{ db *gorm.DB }

func NewEcommerceOrderRepo(db *gorm.DB) *EcommerceOrderRepo { return &EcommerceOrderRepo{db: db} }

func (r *EcommerceOrderRepo) List(ctx context.Context) ([]domain.EcommerceOrder, error) {
	var list []domain.EcommerceOrder
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *EcommerceOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.EcommerceOrder, error) {
	var o domain.EcommerceOrder
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *EcommerceOrderRepo) FindByCode(ctx context.Context, code string) (*domain.EcommerceOrder, error) {
	var o domain.EcommerceOrder
	if err := r.db.WithContext(ctx).First(&o, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *EcommerceOrderRepo) Save(ctx context.Context, o *domain.EcommerceOrder) error {
	if err := r.db.WithContext(ctx).Save(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *EcommerceOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.EcommerceOrder{}, "id = ?", id).Error
}

type ExportOrderRepo struct{ db *gorm.DB }

func NewExportOrderRepo(db *gorm.DB) *ExportOrderRepo { return &ExportOrderRepo{db: db} }

func (r *ExportOrderRepo) List(ctx context.Context) ([]domain.ExportOrder, error) {
	var list []domain.ExportOrder
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ExportOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExportOrder, error) {
	var o domain.ExportOrder
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *ExportOrderRepo) Save(ctx context.Context, o *domain.ExportOrder) error {
	if err := r.db.WithContext(ctx).Save(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ExportOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ExportOrder{}, "id = ?", id).Error
}
