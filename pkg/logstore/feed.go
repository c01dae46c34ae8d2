package logstore

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
)

// LogUpdate is one wholesale snapshot push: the full ordered log lists for a
// user, replacing whatever the subscriber held before. Updates are not
// incremental patches.
type LogUpdate struct {
	UserID  string
	Meals   []*entities.MealLogEntry
	Weights []*entities.WeightLogEntry
}

type (
	// Feed caches per-user log snapshots and pushes a replacement snapshot
	// to subscribers after every write. A write and its snapshot refresh are
	// not transactionally linked: readers of Snapshot may trail the store by
	// one write.
	Feed interface {
		Subscribe(userID string) (<-chan LogUpdate, func())
		Refresh(userID string)
		MealSnapshot(ctx context.Context, userID string) []*entities.MealLogEntry
		WeightSnapshot(ctx context.Context, userID string) []*entities.WeightLogEntry
	}

	feed struct {
		mealRepository   MealLogRepository
		weightRepository WeightLogRepository

		mu      sync.RWMutex
		meals   map[string][]*entities.MealLogEntry
		weights map[string][]*entities.WeightLogEntry
		subs    map[string]map[int]chan LogUpdate
		nextSub int
	}
)

func NewFeed(mealRepository MealLogRepository, weightRepository WeightLogRepository) Feed {
	return &feed{
		mealRepository:   mealRepository,
		weightRepository: weightRepository,
		meals:            make(map[string][]*entities.MealLogEntry),
		weights:          make(map[string][]*entities.WeightLogEntry),
		subs:             make(map[string]map[int]chan LogUpdate),
	}
}

func (f *feed) Subscribe(userID string) (<-chan LogUpdate, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subs[userID] == nil {
		f.subs[userID] = make(map[int]chan LogUpdate)
	}
	id := f.nextSub
	f.nextSub++

	ch := make(chan LogUpdate, 1)
	f.subs[userID][id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[userID][id]; ok {
			delete(f.subs[userID], id)
			close(sub)
		}
	}
	return ch, cancel
}

// Refresh reloads the user's log lists from the store and broadcasts the new
// snapshot. It runs asynchronously; callers fire it after a write and move on.
func (f *feed) Refresh(userID string) {
	go func() {
		ctx := context.Background()

		meals, err := f.mealRepository.GetMealLogs(ctx, userID, 0)
		if err != nil {
			log.Errorf("feed refresh meals for %s: %v", userID, err)
			return
		}
		weights, err := f.weightRepository.GetWeightLogs(ctx, userID, 0)
		if err != nil {
			log.Errorf("feed refresh weights for %s: %v", userID, err)
			return
		}

		f.mu.Lock()
		f.meals[userID] = meals
		f.weights[userID] = weights

		// Broadcast while still holding the lock. Sends never block, and
		// cancel closes a channel under this same lock, so a send cannot
		// race a close.
		update := LogUpdate{UserID: userID, Meals: meals, Weights: weights}
		for _, ch := range f.subs[userID] {
			// Each subscriber holds at most one pending snapshot; a newer
			// one supersedes it.
			select {
			case ch <- update:
			default:
				select {
				case <-ch:
				default:
				}
				select {
				case ch <- update:
				default:
				}
			}
		}
		f.mu.Unlock()
	}()
}

// MealSnapshot returns the cached meal list, ordered by consumed_at
// descending. A user with no cached snapshot gets a synchronous load; after
// that, reads serve whatever the last refresh produced.
func (f *feed) MealSnapshot(ctx context.Context, userID string) []*entities.MealLogEntry {
	f.mu.RLock()
	cached, ok := f.meals[userID]
	f.mu.RUnlock()
	if ok {
		return cached
	}

	meals, err := f.mealRepository.GetMealLogs(ctx, userID, 0)
	if err != nil {
		log.Errorf("feed load meals for %s: %v", userID, err)
		return nil
	}
	f.mu.Lock()
	f.meals[userID] = meals
	f.mu.Unlock()
	return meals
}

func (f *feed) WeightSnapshot(ctx context.Context, userID string) []*entities.WeightLogEntry {
	f.mu.RLock()
	cached, ok := f.weights[userID]
	f.mu.RUnlock()
	if ok {
		return cached
	}

	weights, err := f.weightRepository.GetWeightLogs(ctx, userID, 0)
	if err != nil {
		log.Errorf("feed load weights for %s: %v", userID, err)
		return nil
	}
	f.mu.Lock()
	f.weights[userID] = weights
	f.mu.Unlock()
	return weights
}
