package logstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
)

type (
	WeightLogRepository interface {
		AddWeightLog(ctx context.Context, entry *entities.WeightLogEntry) error
		GetWeightLogs(ctx context.Context, userID string, limit int) ([]*entities.WeightLogEntry, error)
		GetLatestWeightLog(ctx context.Context, userID string) (*entities.WeightLogEntry, error)
	}

	weightLogRepository struct {
		db *gorm.DB
	}
)

func NewWeightLogRepository(db *gorm.DB) WeightLogRepository {
	return &weightLogRepository{db: db}
}

func (r *weightLogRepository) AddWeightLog(ctx context.Context, entry *entities.WeightLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *weightLogRepository) GetWeightLogs(ctx context.Context, userID string, limit int) ([]*entities.WeightLogEntry, error) {
	var entries []*entities.WeightLogEntry
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *weightLogRepository) GetLatestWeightLog(ctx context.Context, userID string) (*entities.WeightLogEntry, error) {
	var entry entities.WeightLogEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at desc").
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
