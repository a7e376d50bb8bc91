package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndtrung/khoban/internal/domain"
)

type ActivityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) List(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&domain.ActivityLog{})
	if f.Module != "" {
		q = q.Where("module = ?", f.Module)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Start != nil {
		q = q.Where("timestamp >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("timestamp <= ?", *f.End)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	var list []domain.ActivityLog
	if err := q.Order("timestamp desc").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ActivityRepo) ByRecord(ctx context.Context, module, recordID string) ([]domain.ActivityLog, error) {
	var list []domain.ActivityLog
	if err := r.db.WithContext(ctx).
		Where("module = ? AND record_id = ?", module, recordID).
		Order("timestamp desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ActivityRepo) Save(ctx context.Context, l *domain.ActivityLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ActivityRepo) Stats(ctx context.Context) (*domain.ActivityStats, error) {
	stats := &domain.ActivityStats{
		ByModule: map[string]int64{},
		ByAction: map[string]int64{},
	}
	if err := r.db.WithContext(ctx).Model(&domain.ActivityLog{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}
	var rows []bucket
	if err := r.db.WithContext(ctx).Model(&domain.ActivityLog{}).
		Select("module as key, count(*) as count").Group("module").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, b := range rows {
		stats.ByModule[b.Key] = b.Count
	}
	rows = rows[:0]
	if err := r.db.WithContext(ctx).Model(&domain.ActivityLog{}).
		Select("action as key, count(*) as count").Group("action").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, b := range rows {
		stats.ByAction[b.Key] = b.Count
	}

	if err := r.db.WithContext(ctx).Order("timestamp desc").Limit(10).Find(&stats.Recent).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

type ConfigRepo struct{ db *gorm.DB }

func NewConfigRepo(db *gorm.DB) *ConfigRepo { return &ConfigRepo{db: db} }

func (r *ConfigRepo) Get(ctx context.Context, key string) (string, error) {
	var c domain.AppConfig
	err := r.db.WithContext(ctx).First(&c, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return c.Value, nil
}

func (r *ConfigRepo) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&domain.AppConfig{Key: key, Value: value}).Error
}
