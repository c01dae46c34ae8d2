package logstore_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/logstore"
)

type memMealRepo struct {
	mu      sync.Mutex
	entries []*entities.MealLogEntry
}

func (r *memMealRepo) add(entry *entities.MealLogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *memMealRepo) AddMealLog(_ context.Context, entry *entities.MealLogEntry) error {
	r.add(entry)
	return nil
}

func (r *memMealRepo) GetMealLogByID(_ context.Context, id string) (*entities.MealLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ID.String() == id {
			return entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memMealRepo) DeleteMealLog(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.ID.String() != id {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
	return nil
}

func (r *memMealRepo) GetMealLogs(_ context.Context, userID string, limit int) ([]*entities.MealLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.MealLogEntry
	for _, entry := range r.entries {
		if entry.UserID.String() == userID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConsumedAt.After(out[j].ConsumedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMealRepo) GetMealLogsByDay(_ context.Context, userID string, day time.Time) ([]*entities.MealLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.MealLogEntry
	for _, entry := range r.entries {
		consumed := entry.ConsumedAt.In(day.Location())
		if entry.UserID.String() == userID &&
			consumed.Year() == day.Year() && consumed.Month() == day.Month() && consumed.Day() == day.Day() {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memWeightRepo struct {
	mu      sync.Mutex
	entries []*entities.WeightLogEntry
}

func (r *memWeightRepo) AddWeightLog(_ context.Context, entry *entities.WeightLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memWeightRepo) GetWeightLogs(_ context.Context, userID string, limit int) ([]*entities.WeightLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.WeightLogEntry
	for _, entry := range r.entries {
		if entry.UserID.String() == userID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memWeightRepo) GetLatestWeightLog(ctx context.Context, userID string) (*entities.WeightLogEntry, error) {
	entries, err := r.GetWeightLogs(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return entries[0], nil
}

func mealEntry(userID uuid.UUID, name string, consumedAt time.Time) *entities.MealLogEntry {
	return &entities.MealLogEntry{
		ID:         uuid.New(),
		UserID:     userID,
		MealName:   name,
		Calories:   300,
		ConsumedAt: consumedAt,
	}
}

func TestSubscribeReceivesSnapshotAfterRefresh(t *testing.T) {
	mealRepo := &memMealRepo{}
	weightRepo := &memWeightRepo{}
	feed := logstore.NewFeed(mealRepo, weightRepo)

	userID := uuid.New()
	updates, cancel := feed.Subscribe(userID.String())
	defer cancel()

	mealRepo.add(mealEntry(userID, "oatmeal", time.Now()))
	feed.Refresh(userID.String())

	select {
	case update := <-updates:
		assert.Equal(t, userID.String(), update.UserID)
		require.Len(t, update.Meals, 1)
		assert.Equal(t, "oatmeal", update.Meals[0].MealName)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestPendingSnapshotIsSuperseded(t *testing.T) {
	mealRepo := &memMealRepo{}
	weightRepo := &memWeightRepo{}
	feed := logstore.NewFeed(mealRepo, weightRepo)

	userID := uuid.New()
	updates, cancel := feed.Subscribe(userID.String())
	defer cancel()

	mealRepo.add(mealEntry(userID, "oatmeal", time.Now().Add(-time.Hour)))
	feed.Refresh(userID.String())
	require.Eventually(t, func() bool {
		return len(feed.MealSnapshot(context.Background(), userID.String())) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// The first snapshot is still pending; a newer one replaces it instead
	// of queueing behind it.
	mealRepo.add(mealEntry(userID, "chicken salad", time.Now()))
	feed.Refresh(userID.String())
	require.Eventually(t, func() bool {
		return len(feed.MealSnapshot(context.Background(), userID.String())) == 2
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case update := <-updates:
		assert.Len(t, update.Meals, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}

	select {
	case update, ok := <-updates:
		if ok {
			t.Fatalf("unexpected second pending snapshot with %d meals", len(update.Meals))
		}
	default:
	}
}

func TestCancelDuringRefreshIsSafe(t *testing.T) {
	mealRepo := &memMealRepo{}
	weightRepo := &memWeightRepo{}
	feed := logstore.NewFeed(mealRepo, weightRepo)

	userID := uuid.New()
	mealRepo.add(mealEntry(userID, "oatmeal", time.Now()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		updates, cancel := feed.Subscribe(userID.String())
		wg.Add(2)
		go func() {
			defer wg.Done()
			feed.Refresh(userID.String())
		}()
		go func() {
			defer wg.Done()
			cancel()
			// Draining after cancel must not panic either.
			for range updates {
			}
		}()
	}
	wg.Wait()

	// Cancelling twice is a no-op.
	_, cancel := feed.Subscribe(userID.String())
	cancel()
	cancel()
}

func TestMealSnapshotColdCacheLoads(t *testing.T) {
	mealRepo := &memMealRepo{}
	weightRepo := &memWeightRepo{}
	feed := logstore.NewFeed(mealRepo, weightRepo)

	userID := uuid.New()
	mealRepo.add(mealEntry(userID, "oatmeal", time.Now().Add(-time.Hour)))
	mealRepo.add(mealEntry(userID, "chicken salad", time.Now()))

	snapshot := feed.MealSnapshot(context.Background(), userID.String())
	require.Len(t, snapshot, 2)
	assert.Equal(t, "chicken salad", snapshot[0].MealName)
	assert.Equal(t, "oatmeal", snapshot[1].MealName)
}
