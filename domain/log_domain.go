package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddMealLog    = "meal logged successfully"
	MessageSuccessDeleteMealLog = "meal log deleted successfully"
	MessageSuccessGetMealLogs   = "meal logs retrieved successfully"
	MessageSuccessAddWeightLog  = "weight logged successfully"
	MessageSuccessGetWeightLogs = "weight logs retrieved successfully"
	MessageSuccessGetSummary    = "daily summary retrieved successfully"

	MessageFailedAddMealLog    = "failed to log meal"
	MessageFailedDeleteMealLog = "failed to delete meal log"
	MessageFailedGetMealLogs   = "failed to retrieve meal logs"
	MessageFailedAddWeightLog  = "failed to log weight"
	MessageFailedGetWeightLogs = "failed to retrieve weight logs"
	MessageFailedGetSummary    = "failed to retrieve daily summary"

	ErrMealLogNotFound   = errors.New("meal log entry not found")
	ErrWeightLogNotFound = errors.New("weight log entry not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrNegativeNutrition = errors.New("calories and macros must be non-negative")
	ErrInvalidWeight     = errors.New("weight must be positive")
)

type (
	AddMealLogRequest struct {
		MealName string   `json:"meal_name" validate:"required"`
		MealType string   `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack other"`
		Amount   float64  `json:"amount" validate:"required,gt=0"`
		Unit     string   `json:"unit" validate:"required,oneof=g ml oz cup piece serving"`
		Calories float64  `json:"calories" validate:"min=0"`
		ProteinG float64  `json:"protein_g" validate:"min=0"`
		CarbsG   float64  `json:"carbs_g" validate:"min=0"`
		FatG     float64  `json:"fat_g" validate:"min=0"`
		FiberG   *float64 `json:"fiber_g,omitempty" validate:"omitempty,min=0"`
	}

	MealLogResponse struct {
		ID         string    `json:"id"`
		MealName   string    `json:"meal_name"`
		MealType   string    `json:"meal_type"`
		Amount     float64   `json:"amount"`
		Unit       string    `json:"unit"`
		Calories   float64   `json:"calories"`
		ProteinG   float64   `json:"protein_g"`
		CarbsG     float64   `json:"carbs_g"`
		FatG       float64   `json:"fat_g"`
		FiberG     *float64  `json:"fiber_g,omitempty"`
		ImageURL   string    `json:"image_url,omitempty"`
		ConsumedAt time.Time `json:"consumed_at"`
		CreatedAt  time.Time `json:"created_at"`
	}

	AddWeightLogRequest struct {
		WeightKg   float64  `json:"weight_kg" validate:"required,gt=0"`
		BodyFatPct *float64 `json:"body_fat_pct,omitempty" validate:"omitempty,min=0,max=100"`
		MuscleKg   *float64 `json:"muscle_kg,omitempty" validate:"omitempty,gt=0"`
	}

	WeightLogResponse struct {
		ID         string    `json:"id"`
		WeightKg   float64   `json:"weight_kg"`
		BodyFatPct *float64  `json:"body_fat_pct,omitempty"`
		MuscleKg   *float64  `json:"muscle_kg,omitempty"`
		RecordedAt time.Time `json:"recorded_at"`
		CreatedAt  time.Time `json:"created_at"`
	}

	// DailySummaryResponse is today's consumed totals against the profile
	// targets. It also feeds the chat context bundle.
	DailySummaryResponse struct {
		Date           string  `json:"date"`
		Calories       float64 `json:"calories"`
		ProteinG       float64 `json:"protein_g"`
		CarbsG         float64 `json:"carbs_g"`
		FatG           float64 `json:"fat_g"`
		TargetCalories int     `json:"target_calories"`
		TargetProteinG int     `json:"target_protein_g"`
		TargetCarbsG   int     `json:"target_carbs_g"`
		TargetFatG     int     `json:"target_fat_g"`
		MealsLogged    int     `json:"meals_logged"`
		LatestWeightKg float64 `json:"latest_weight_kg,omitempty"`
	}
)
