package logstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
)

type (
	MealLogRepository interface {
		AddMealLog(ctx context.Context, entry *entities.MealLogEntry) error
		GetMealLogByID(ctx context.Context, id string) (*entities.MealLogEntry, error)
		DeleteMealLog(ctx context.Context, id string) error
		GetMealLogs(ctx context.Context, userID string, limit int) ([]*entities.MealLogEntry, error)
		GetMealLogsByDay(ctx context.Context, userID string, day time.Time) ([]*entities.MealLogEntry, error)
	}

	mealLogRepository struct {
		db *gorm.DB
	}
)

func NewMealLogRepository(db *gorm.DB) MealLogRepository {
	return &mealLogRepository{db: db}
}

func (r *mealLogRepository) AddMealLog(ctx context.Context, entry *entities.MealLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *mealLogRepository) GetMealLogByID(ctx context.Context, id string) (*entities.MealLogEntry, error) {
	var entry entities.MealLogEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *mealLogRepository) DeleteMealLog(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MealLogEntry{}).Error
}

func (r *mealLogRepository) GetMealLogs(ctx context.Context, userID string, limit int) ([]*entities.MealLogEntry, error) {
	var entries []*entities.MealLogEntry
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("consumed_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mealLogRepository) GetMealLogsByDay(ctx context.Context, userID string, day time.Time) ([]*entities.MealLogEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var entries []*entities.MealLogEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, end).
		Order("consumed_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
