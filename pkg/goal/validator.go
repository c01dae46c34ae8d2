package goal

import (
	"math"
	"time"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/nutrition"
)

// ValidatedGoal is the output of a successful validation: the goal itself
// plus the complete daily target bundle. Targets are only ever persisted from
// one of these, never edited field by field.
type ValidatedGoal struct {
	GoalType           string
	TargetWeightKg     float64
	TargetDate         time.Time
	DaysToGoal         int
	WeeksToGoal        float64
	Targets            nutrition.Targets
	EstimatedTimeframe string
}

// ValidateGoal checks a proposed goal against the profile, failing fast on
// the first violation, and computes the target bundle on success. The target
// date is parsed as a date-only value so the result does not drift with the
// caller's time of day.
func ValidateGoal(p nutrition.Profile, goalType string, targetWeightKg float64, targetDate string, today time.Time) (ValidatedGoal, error) {
	delta := targetWeightKg - p.WeightKg

	switch goalType {
	case domain.GoalWeightLoss:
		if targetWeightKg >= p.WeightKg {
			return ValidatedGoal{}, domain.ErrInvalidGoalDirection
		}
	case domain.GoalWeightGain, domain.GoalMuscleGain:
		if targetWeightKg <= p.WeightKg {
			return ValidatedGoal{}, domain.ErrInvalidGoalDirection
		}
	case domain.GoalMaintainWeight:
		if math.Abs(delta) > 2 {
			return ValidatedGoal{}, domain.ErrInvalidGoalDirection
		}
	default:
		return ValidatedGoal{}, domain.ErrInvalidGoalDirection
	}

	parsed, err := time.Parse("2006-01-02", targetDate)
	if err != nil {
		return ValidatedGoal{}, domain.ErrInvalidTargetDate
	}
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysToGoal := int(math.Ceil(parsed.Sub(todayMidnight).Hours() / 24))
	if daysToGoal < 1 {
		daysToGoal = 1
	}
	weeksToGoal := float64(daysToGoal) / 7

	if goalType != domain.GoalMaintainWeight && math.Abs(delta) >= nutrition.MaintenanceBandKg {
		maxRate := nutrition.MaxGainRatePerWeek
		if goalType == domain.GoalWeightLoss {
			maxRate = nutrition.MaxLossRatePerWeek
		}
		minWeeks := int(math.Ceil(math.Abs(delta) / maxRate))
		if weeksToGoal < float64(minWeeks) {
			return ValidatedGoal{}, &domain.UnsafeTimeframeError{MinWeeks: minWeeks}
		}
	}

	targets := nutrition.ComputeTargets(p, nutrition.Goal{
		Type:           goalType,
		TargetWeightKg: targetWeightKg,
		WeeksToGoal:    weeksToGoal,
	})
	if targets.CarbsG < 0 {
		return ValidatedGoal{}, domain.ErrInfeasibleMacros
	}

	return ValidatedGoal{
		GoalType:           goalType,
		TargetWeightKg:     targetWeightKg,
		TargetDate:         parsed,
		DaysToGoal:         daysToGoal,
		WeeksToGoal:        weeksToGoal,
		Targets:            targets,
		EstimatedTimeframe: estimatedTimeframe(targetWeightKg, delta, targets.SafeWeeklyChangeKg),
	}, nil
}

func estimatedTimeframe(targetWeightKg, delta, weeklyRate float64) string {
	if weeklyRate == 0 {
		return "Maintain current weight"
	}
	weeks := int(math.Ceil(math.Abs(delta) / weeklyRate))
	return formatTimeframe(weeks, targetWeightKg)
}
