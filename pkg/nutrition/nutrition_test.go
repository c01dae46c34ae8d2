package nutrition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/nutrition"
)

func TestBMRMifflinStJeor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile nutrition.Profile
		want    float64
	}{
		{
			name:    "male 30y 80kg 175cm",
			profile: nutrition.Profile{Age: 30, Gender: "male", HeightCm: 175, WeightKg: 80},
			want:    1748.75,
		},
		{
			name:    "female 30y 80kg 175cm",
			profile: nutrition.Profile{Age: 30, Gender: "female", HeightCm: 175, WeightKg: 80},
			want:    1582.75,
		},
		{
			name:    "other gender uses averaged offset",
			profile: nutrition.Profile{Age: 30, Gender: "other", HeightCm: 175, WeightKg: 80},
			want:    1665.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, nutrition.BMR(tt.profile), 0.001)
		})
	}
}

func TestTDEEUsesActivityMultiplier(t *testing.T) {
	t.Parallel()

	p := nutrition.Profile{Age: 30, Gender: "male", HeightCm: 175, WeightKg: 80, ActivityLevel: "moderately_active"}
	assert.InDelta(t, 1748.75*1.55, nutrition.TDEE(p), 0.001)

	p.ActivityLevel = "extremely_active"
	assert.InDelta(t, 1748.75*1.9, nutrition.TDEE(p), 0.001)
}

func TestComputeTargetsDeterministic(t *testing.T) {
	t.Parallel()

	p := nutrition.Profile{Age: 28, Gender: "female", HeightCm: 165, WeightKg: 70, ActivityLevel: "lightly_active"}
	g := nutrition.Goal{Type: "weight_loss", TargetWeightKg: 64, WeeksToGoal: 12}

	first := nutrition.ComputeTargets(p, g)
	second := nutrition.ComputeTargets(p, g)
	assert.Equal(t, first, second)
}

func TestSafeWeeklyRateClamps(t *testing.T) {
	t.Parallel()

	p := nutrition.Profile{Age: 30, Gender: "male", HeightCm: 180, WeightKg: 90, ActivityLevel: "sedentary"}

	tests := []struct {
		name string
		goal nutrition.Goal
		want float64
	}{
		{
			name: "aggressive loss clamps to 1.0",
			goal: nutrition.Goal{Type: "weight_loss", TargetWeightKg: 70, WeeksToGoal: 4},
			want: 1.0,
		},
		{
			name: "slow loss clamps up to 0.5",
			goal: nutrition.Goal{Type: "weight_loss", TargetWeightKg: 88, WeeksToGoal: 52},
			want: 0.5,
		},
		{
			name: "gain clamps to 0.5",
			goal: nutrition.Goal{Type: "weight_gain", TargetWeightKg: 100, WeeksToGoal: 4},
			want: 0.5,
		},
		{
			name: "slow gain clamps up to 0.25",
			goal: nutrition.Goal{Type: "weight_gain", TargetWeightKg: 92, WeeksToGoal: 52},
			want: 0.25,
		},
		{
			name: "maintenance is zero",
			goal: nutrition.Goal{Type: "maintain_weight", TargetWeightKg: 90, WeeksToGoal: 10},
			want: 0,
		},
		{
			name: "tiny delta is treated as maintenance",
			goal: nutrition.Goal{Type: "weight_loss", TargetWeightKg: 89.7, WeeksToGoal: 10},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, nutrition.SafeWeeklyRate(p, tt.goal), 0.001)
		})
	}
}

func TestCalorieFloorOnLossBranch(t *testing.T) {
	t.Parallel()

	// A small, light, sedentary profile whose deficit would dip below the floor.
	female := nutrition.Profile{Age: 50, Gender: "female", HeightCm: 150, WeightKg: 48, ActivityLevel: "sedentary"}
	loss := nutrition.Goal{Type: "weight_loss", TargetWeightKg: 44, WeeksToGoal: 4}

	targets := nutrition.ComputeTargets(female, loss)
	assert.GreaterOrEqual(t, targets.Calories, 1200)

	male := female
	male.Gender = "male"
	targets = nutrition.ComputeTargets(male, loss)
	assert.GreaterOrEqual(t, targets.Calories, 1500)

	other := female
	other.Gender = "other"
	targets = nutrition.ComputeTargets(other, loss)
	assert.GreaterOrEqual(t, targets.Calories, 1500)

	// Gain branch has no floor and sits above TDEE.
	gain := nutrition.Goal{Type: "weight_gain", TargetWeightKg: 52, WeeksToGoal: 10}
	targets = nutrition.ComputeTargets(female, gain)
	assert.Greater(t, float64(targets.Calories), targets.TDEEKcal)
}

func TestMacroSplit(t *testing.T) {
	t.Parallel()

	p := nutrition.Profile{Age: 30, Gender: "male", HeightCm: 180, WeightKg: 80, ActivityLevel: "moderately_active"}
	g := nutrition.Goal{Type: "maintain_weight", TargetWeightKg: 80, WeeksToGoal: 0}

	targets := nutrition.ComputeTargets(p, g)

	assert.Equal(t, 144, targets.ProteinG) // 80 * 1.8
	// Fat covers 25% of calories at 9 kcal/g; carbs fill the remainder at 4 kcal/g.
	wantFat := int(float64(targets.Calories)*0.25/9 + 0.5)
	assert.Equal(t, wantFat, targets.FatG)
	wantCarbs := int((float64(targets.Calories)-float64(targets.ProteinG)*4-float64(targets.FatG)*9)/4 + 0.5)
	assert.Equal(t, wantCarbs, targets.CarbsG)
}

func TestWaterTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  int
	}{
		{"sedentary", 2800},
		{"lightly_active", 3050},
		{"moderately_active", 3300},
		{"very_active", 3550},
		{"extremely_active", 3800},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			p := nutrition.Profile{Age: 30, Gender: "male", HeightCm: 180, WeightKg: 80, ActivityLevel: tt.level}
			g := nutrition.Goal{Type: "maintain_weight", TargetWeightKg: 80}
			assert.Equal(t, tt.want, nutrition.ComputeTargets(p, g).WaterMl)
		})
	}
}

func TestBMI(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 24.69, nutrition.BMI(80, 180), 0.01)
	assert.Equal(t, 0.0, nutrition.BMI(80, 0))
}
