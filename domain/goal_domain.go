package domain

import (
	"errors"
	"fmt"
)

const (
	GoalWeightLoss     = "weight_loss"
	GoalWeightGain     = "weight_gain"
	GoalMaintainWeight = "maintain_weight"
	GoalMuscleGain     = "muscle_gain"

	ActivitySedentary  = "sedentary"
	ActivityLight      = "lightly_active"
	ActivityModerate   = "moderately_active"
	ActivityVeryActive = "very_active"
	ActivityExtreme    = "extremely_active"
)

var (
	MessageSuccessGetGoal    = "goal retrieved successfully"
	MessageSuccessUpdateGoal = "goal updated successfully"

	MessageFailedGetGoal    = "failed to retrieve goal"
	MessageFailedUpdateGoal = "failed to update goal"

	ErrInvalidGoalDirection = errors.New("target weight is inconsistent with the goal type")
	ErrInvalidTargetDate    = errors.New("invalid target date")
	ErrInfeasibleMacros     = errors.New("goal produces an infeasible macro split")
	ErrProfileIncomplete    = errors.New("profile is missing fields required for goal calculation")
)

// UnsafeTimeframeError reports a goal whose deadline would require losing or
// gaining weight faster than the safe weekly rate allows.
type UnsafeTimeframeError struct {
	MinWeeks int
}

func (e *UnsafeTimeframeError) Error() string {
	return fmt.Sprintf("goal timeframe too short: at least %d weeks required", e.MinWeeks)
}

type (
	UpdateGoalRequest struct {
		GoalType       string  `json:"goal_type" validate:"required,oneof=weight_loss weight_gain maintain_weight muscle_gain"`
		TargetWeightKg float64 `json:"target_weight_kg" validate:"required,gt=0"`
		TargetDate     string  `json:"target_date" validate:"required"`
	}

	GoalTargetsResponse struct {
		GoalType           string  `json:"goal_type"`
		TargetWeightKg     float64 `json:"target_weight_kg"`
		TargetDate         string  `json:"target_date"`
		Calories           int     `json:"calories"`
		ProteinG           int     `json:"protein_g"`
		CarbsG             int     `json:"carbs_g"`
		FatG               int     `json:"fat_g"`
		WaterMl            int     `json:"water_ml"`
		BMRKcal            float64 `json:"bmr_kcal"`
		TDEEKcal           float64 `json:"tdee_kcal"`
		SafeWeeklyChangeKg float64 `json:"safe_weekly_change_kg"`
		EstimatedTimeframe string  `json:"estimated_timeframe"`
	}
)
