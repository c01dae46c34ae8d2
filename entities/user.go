package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string    `json:"name"`
	Email      string    `gorm:"unique" json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`

	// Profile captured during onboarding
	Age             int     `json:"age"`
	Gender          string  `json:"gender"` // "male", "female", "other"
	HeightCm        float64 `json:"height_cm"`
	CurrentWeightKg float64 `json:"current_weight_kg"`
	BMI             float64 `json:"bmi"`
	ActivityLevel   string  `json:"activity_level"`
	City            string  `json:"city,omitempty"`
	Country         string  `json:"country,omitempty"`
	Timezone        string  `json:"timezone,omitempty"`

	// Goal and daily targets. Targets are only ever written together as the
	// output of a goal recompute.
	GoalType       string     `json:"goal_type"`
	TargetWeightKg float64    `json:"target_weight_kg"`
	TargetDate     *time.Time `json:"target_date,omitempty"`
	TargetCalories int        `json:"target_calories"`
	TargetProteinG int        `json:"target_protein_g"`
	TargetCarbsG   int        `json:"target_carbs_g"`
	TargetFatG     int        `json:"target_fat_g"`
	TargetWaterMl  int        `json:"target_water_ml"`

	OnboardingComplete bool   `json:"onboarding_complete"`
	LastCheckInDate    string `json:"last_check_in_date,omitempty"` // YYYY-MM-DD

	Timestamp
}
