package goal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/goal"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/nutrition"
)

func testProfile() nutrition.Profile {
	return nutrition.Profile{
		Age:           30,
		Gender:        "male",
		HeightCm:      180,
		WeightKg:      90,
		ActivityLevel: "moderately_active",
	}
}

func TestValidateGoalRejectsWrongDirection(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		goalType string
		target   float64
	}{
		{"loss with target above current", domain.GoalWeightLoss, 95},
		{"loss with target equal to current", domain.GoalWeightLoss, 90},
		{"gain with target below current", domain.GoalWeightGain, 85},
		{"muscle gain with target below current", domain.GoalMuscleGain, 85},
		{"maintain with target outside band", domain.GoalMaintainWeight, 93},
		{"unknown goal type", "bulk", 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := goal.ValidateGoal(testProfile(), tt.goalType, tt.target, "2026-06-01", today)
			assert.ErrorIs(t, err, domain.ErrInvalidGoalDirection)
		})
	}
}

func TestValidateGoalRejectsUnsafeTimeframe(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// 10 kg loss with a 2-week deadline needs at least 10 weeks at 1.0 kg/week.
	_, err := goal.ValidateGoal(testProfile(), domain.GoalWeightLoss, 80, "2026-03-15", today)
	var unsafeErr *domain.UnsafeTimeframeError
	require.True(t, errors.As(err, &unsafeErr))
	assert.Equal(t, 10, unsafeErr.MinWeeks)

	// Gain is capped at 0.5 kg/week: 4 kg in 2 weeks needs 8 weeks.
	_, err = goal.ValidateGoal(testProfile(), domain.GoalWeightGain, 94, "2026-03-15", today)
	require.True(t, errors.As(err, &unsafeErr))
	assert.Equal(t, 8, unsafeErr.MinWeeks)
}

func TestValidateGoalRejectsBadDate(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := goal.ValidateGoal(testProfile(), domain.GoalWeightLoss, 85, "June 1st", today)
	assert.ErrorIs(t, err, domain.ErrInvalidTargetDate)
}

func TestValidateGoalSuccessReturnsTargetBundle(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	validated, err := goal.ValidateGoal(testProfile(), domain.GoalWeightLoss, 84, "2026-06-01", today)
	require.NoError(t, err)

	assert.Equal(t, domain.GoalWeightLoss, validated.GoalType)
	assert.Equal(t, 92, validated.DaysToGoal)
	assert.Positive(t, validated.Targets.Calories)
	assert.Positive(t, validated.Targets.ProteinG)
	assert.Positive(t, validated.Targets.CarbsG)
	assert.Positive(t, validated.Targets.WaterMl)
	assert.Equal(t, "12 weeks to reach 84kg", validated.EstimatedTimeframe)
}

func TestValidateGoalMaintenanceTimeframe(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	validated, err := goal.ValidateGoal(testProfile(), domain.GoalMaintainWeight, 90, "2026-06-01", today)
	require.NoError(t, err)

	assert.Equal(t, "Maintain current weight", validated.EstimatedTimeframe)
	assert.Zero(t, validated.Targets.SafeWeeklyChangeKg)
	assert.Equal(t, int(validated.Targets.TDEEKcal+0.5), validated.Targets.Calories)
}

func TestValidateGoalDateOnlyParsing(t *testing.T) {
	t.Parallel()

	// The same calendar dates must produce the same daysToGoal regardless of
	// the caller's time of day.
	morning := time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	a, err := goal.ValidateGoal(testProfile(), domain.GoalWeightLoss, 84, "2026-06-01", morning)
	require.NoError(t, err)
	b, err := goal.ValidateGoal(testProfile(), domain.GoalWeightLoss, 84, "2026-06-01", evening)
	require.NoError(t, err)

	assert.Equal(t, a.DaysToGoal, b.DaysToGoal)
}

func TestValidateGoalPastDeadlineClampsToOneDay(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	validated, err := goal.ValidateGoal(testProfile(), domain.GoalMaintainWeight, 90, "2026-02-01", today)
	require.NoError(t, err)
	assert.Equal(t, 1, validated.DaysToGoal)
}
