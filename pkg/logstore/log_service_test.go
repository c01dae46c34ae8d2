package logstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/logstore"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func (r *memUserRepo) CreateUser(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID.String()] = u
	return nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) UpdateUser(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID.String()] = u
	return nil
}

func (r *memUserRepo) CheckEmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newLogServiceFixture() (logstore.LogService, *memMealRepo, *memWeightRepo, *entities.User) {
	testUser := &entities.User{
		ID:              uuid.New(),
		Name:            "Alice Tan",
		HeightCm:        165,
		CurrentWeightKg: 70,
		TargetCalories:  1800,
		TargetProteinG:  126,
		TargetCarbsG:    180,
		TargetFatG:      50,
	}

	mealRepo := &memMealRepo{}
	weightRepo := &memWeightRepo{}
	userRepo := &memUserRepo{users: map[string]*entities.User{testUser.ID.String(): testUser}}
	feed := logstore.NewFeed(mealRepo, weightRepo)

	return logstore.NewLogService(mealRepo, weightRepo, userRepo, feed), mealRepo, weightRepo, testUser
}

func TestAddWeightLogUpdatesProfileWeight(t *testing.T) {
	service, _, weightRepo, testUser := newLogServiceFixture()

	res, err := service.AddWeightLog(context.Background(), domain.AddWeightLogRequest{WeightKg: 68}, testUser.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 68.0, res.WeightKg)

	require.Len(t, weightRepo.entries, 1)
	assert.Equal(t, 68.0, testUser.CurrentWeightKg)
	assert.InDelta(t, 68.0/(1.65*1.65), testUser.BMI, 0.01)
}

func TestAddWeightLogRejectsNonPositiveWeight(t *testing.T) {
	service, _, _, testUser := newLogServiceFixture()

	_, err := service.AddWeightLog(context.Background(), domain.AddWeightLogRequest{WeightKg: 0}, testUser.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
}

func TestGetDailySummaryTotalsTodayOnly(t *testing.T) {
	service, mealRepo, weightRepo, testUser := newLogServiceFixture()

	now := time.Now()
	breakfast := mealEntry(testUser.ID, "oatmeal", now.Add(-40*time.Minute))
	breakfast.Calories = 320
	breakfast.ProteinG = 12
	lunch := mealEntry(testUser.ID, "chicken salad", now.Add(-10*time.Minute))
	lunch.Calories = 450
	lunch.ProteinG = 38
	yesterday := mealEntry(testUser.ID, "pizza", now.Add(-26*time.Hour))
	yesterday.Calories = 900
	mealRepo.add(breakfast)
	mealRepo.add(lunch)
	mealRepo.add(yesterday)

	require.NoError(t, weightRepo.AddWeightLog(context.Background(), &entities.WeightLogEntry{
		ID: uuid.New(), UserID: testUser.ID, WeightKg: 69.5, RecordedAt: now.Add(-30*time.Minute),
	}))
	require.NoError(t, weightRepo.AddWeightLog(context.Background(), &entities.WeightLogEntry{
		ID: uuid.New(), UserID: testUser.ID, WeightKg: 69.2, RecordedAt: now.Add(-5*time.Minute),
	}))

	summary, err := service.GetDailySummary(context.Background(), testUser.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.MealsLogged)
	assert.Equal(t, 770.0, summary.Calories)
	assert.Equal(t, 50.0, summary.ProteinG)
	assert.Equal(t, 1800, summary.TargetCalories)
	assert.Equal(t, 69.2, summary.LatestWeightKg)
}

func TestGetDailySummaryWithoutWeighIn(t *testing.T) {
	service, _, _, testUser := newLogServiceFixture()

	summary, err := service.GetDailySummary(context.Background(), testUser.ID.String())
	require.NoError(t, err)
	assert.Zero(t, summary.LatestWeightKg)
	assert.Zero(t, summary.MealsLogged)
}
