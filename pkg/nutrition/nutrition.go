package nutrition

import (
	"math"
)

// KcalPerKg is the energy equivalent of one kilogram of body fat.
const KcalPerKg = 7700.0

// Safe weekly rate-of-change bounds in kg/week.
const (
	MinLossRatePerWeek = 0.5
	MaxLossRatePerWeek = 1.0
	MinGainRatePerWeek = 0.25
	MaxGainRatePerWeek = 0.5

	// Below this delta a goal is treated as maintenance.
	MaintenanceBandKg = 0.5

	// Calorie floors applied on the loss branch only.
	MinCaloriesFemale = 1200
	MinCaloriesMale   = 1500
)

// activityMultipliers maps activity levels to their TDEE multiplier. This is
// the single source of truth for valid activity levels.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extremely_active":  1.9,
}

// activityWaterBonus is the extra daily water in ml per activity level.
var activityWaterBonus = map[string]float64{
	"sedentary":         0,
	"lightly_active":    250,
	"moderately_active": 500,
	"very_active":       750,
	"extremely_active":  1000,
}

type Profile struct {
	Age           int
	Gender        string // "male", "female", "other"
	HeightCm      float64
	WeightKg      float64
	ActivityLevel string
}

type Goal struct {
	Type           string // "weight_loss", "weight_gain", "maintain_weight", "muscle_gain"
	TargetWeightKg float64
	WeeksToGoal    float64
}

type Targets struct {
	Calories           int
	ProteinG           int
	CarbsG             int
	FatG               int
	WaterMl            int
	SafeWeeklyChangeKg float64
	BMRKcal            float64
	TDEEKcal           float64
}

// ActivityMultiplier returns the TDEE multiplier for an activity level.
func ActivityMultiplier(level string) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// BMR estimates basal metabolic rate via Mifflin-St Jeor. The gender offset
// is +5 for male, -161 for female, and -78 (the average of the two) for other.
func BMR(p Profile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch p.Gender {
	case "male":
		return base + 5
	case "female":
		return base - 161
	default:
		return base - 78
	}
}

// TDEE is BMR scaled by the activity multiplier. Unknown activity levels fall
// back to sedentary; callers validate the enum before computing.
func TDEE(p Profile) float64 {
	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	return BMR(p) * mult
}

// BMI is weight over squared height in metres.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// SafeWeeklyRate clamps the weekly change implied by the goal into the safe
// band: [0.5, 1.0] kg/week for loss, [0.25, 0.5] kg/week for gain, zero for
// maintenance or deltas inside the maintenance band.
func SafeWeeklyRate(p Profile, g Goal) float64 {
	delta := math.Abs(g.TargetWeightKg - p.WeightKg)
	if g.Type == "maintain_weight" || delta < MaintenanceBandKg {
		return 0
	}

	weeks := g.WeeksToGoal
	if weeks < 1 {
		weeks = 1
	}
	rate := delta / weeks

	if g.Type == "weight_loss" {
		return clamp(rate, MinLossRatePerWeek, MaxLossRatePerWeek)
	}
	return clamp(rate, MinGainRatePerWeek, MaxGainRatePerWeek)
}

// ComputeTargets derives the full daily target bundle from a profile and a
// goal. Pure and deterministic: same inputs always produce the same outputs.
// The carb remainder may come out negative for extreme inputs; the goal
// validator rejects those before the targets are persisted.
func ComputeTargets(p Profile, g Goal) Targets {
	bmr := BMR(p)
	tdee := TDEE(p)
	rate := SafeWeeklyRate(p, g)

	dailyDelta := rate * KcalPerKg / 7
	var calories float64
	switch g.Type {
	case "weight_loss":
		calories = tdee - dailyDelta
		floor := float64(MinCaloriesMale)
		if p.Gender == "female" {
			floor = MinCaloriesFemale
		}
		if calories < floor {
			calories = floor
		}
	case "weight_gain", "muscle_gain":
		calories = tdee + dailyDelta
	default:
		calories = tdee
	}
	targetCalories := int(math.Round(calories))

	proteinG := int(math.Round(p.WeightKg * 1.8))
	fatG := int(math.Round(float64(targetCalories) * 0.25 / 9))
	carbsG := int(math.Round((float64(targetCalories) - float64(proteinG)*4 - float64(fatG)*9) / 4))

	waterMl := int(math.Round(p.WeightKg*35 + activityWaterBonus[p.ActivityLevel]))

	return Targets{
		Calories:           targetCalories,
		ProteinG:           proteinG,
		CarbsG:             carbsG,
		FatG:               fatG,
		WaterMl:            waterMl,
		SafeWeeklyChangeKg: rate,
		BMRKcal:            bmr,
		TDEEKcal:           tdee,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
