package goal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/logstore"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/nutrition"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/user"
)

type (
	GoalService interface {
		CompleteOnboarding(ctx context.Context, req domain.OnboardingRequest, userID string) (domain.GoalTargetsResponse, error)
		UpdateGoal(ctx context.Context, req domain.UpdateGoalRequest, userID string) (domain.GoalTargetsResponse, error)
		GetGoal(ctx context.Context, userID string) (domain.GoalTargetsResponse, error)
	}

	goalService struct {
		userRepository   user.UserRepository
		weightRepository logstore.WeightLogRepository
		feed             logstore.Feed
	}
)

func NewGoalService(
	userRepository user.UserRepository,
	weightRepository logstore.WeightLogRepository,
	feed logstore.Feed,
) GoalService {
	return &goalService{
		userRepository:   userRepository,
		weightRepository: weightRepository,
		feed:             feed,
	}
}

func (s *goalService) CompleteOnboarding(ctx context.Context, req domain.OnboardingRequest, userID string) (domain.GoalTargetsResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GoalTargetsResponse{}, domain.ErrUserNotFound
		}
		return domain.GoalTargetsResponse{}, err
	}
	if found.OnboardingComplete {
		return domain.GoalTargetsResponse{}, domain.ErrOnboardingDone
	}

	profile := nutrition.Profile{
		Age:           req.Age,
		Gender:        req.Gender,
		HeightCm:      req.HeightCm,
		WeightKg:      req.CurrentWeightKg,
		ActivityLevel: req.ActivityLevel,
	}

	validated, err := ValidateGoal(profile, req.GoalType, req.TargetWeightKg, req.TargetDate, time.Now())
	if err != nil {
		return domain.GoalTargetsResponse{}, err
	}

	found.Age = req.Age
	found.Gender = req.Gender
	found.HeightCm = req.HeightCm
	found.CurrentWeightKg = req.CurrentWeightKg
	found.BMI = math.Round(nutrition.BMI(req.CurrentWeightKg, req.HeightCm)*10) / 10
	found.ActivityLevel = req.ActivityLevel
	found.City = req.City
	found.Country = req.Country
	found.Timezone = req.Timezone
	found.OnboardingComplete = true
	applyTargets(found, validated)

	if err := s.userRepository.UpdateUser(ctx, found); err != nil {
		return domain.GoalTargetsResponse{}, err
	}

	// Seed the weight history with the onboarding weight.
	seed := &entities.WeightLogEntry{
		ID:         uuid.New(),
		UserID:     found.ID,
		WeightKg:   req.CurrentWeightKg,
		RecordedAt: time.Now(),
	}
	if err := s.weightRepository.AddWeightLog(ctx, seed); err != nil {
		return domain.GoalTargetsResponse{}, err
	}
	s.feed.Refresh(userID)

	return toGoalTargetsResponse(validated), nil
}

func (s *goalService) UpdateGoal(ctx context.Context, req domain.UpdateGoalRequest, userID string) (domain.GoalTargetsResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GoalTargetsResponse{}, domain.ErrUserNotFound
		}
		return domain.GoalTargetsResponse{}, err
	}

	if found.Age == 0 || found.HeightCm == 0 || found.CurrentWeightKg == 0 || found.ActivityLevel == "" {
		return domain.GoalTargetsResponse{}, domain.ErrProfileIncomplete
	}

	profile := nutrition.Profile{
		Age:           found.Age,
		Gender:        found.Gender,
		HeightCm:      found.HeightCm,
		WeightKg:      found.CurrentWeightKg,
		ActivityLevel: found.ActivityLevel,
	}

	validated, err := ValidateGoal(profile, req.GoalType, req.TargetWeightKg, req.TargetDate, time.Now())
	if err != nil {
		return domain.GoalTargetsResponse{}, err
	}

	applyTargets(found, validated)
	if err := s.userRepository.UpdateUser(ctx, found); err != nil {
		return domain.GoalTargetsResponse{}, err
	}

	return toGoalTargetsResponse(validated), nil
}

func (s *goalService) GetGoal(ctx context.Context, userID string) (domain.GoalTargetsResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GoalTargetsResponse{}, domain.ErrUserNotFound
		}
		return domain.GoalTargetsResponse{}, err
	}
	if !found.OnboardingComplete {
		return domain.GoalTargetsResponse{}, domain.ErrProfileIncomplete
	}

	response := domain.GoalTargetsResponse{
		GoalType:       found.GoalType,
		TargetWeightKg: found.TargetWeightKg,
		Calories:       found.TargetCalories,
		ProteinG:       found.TargetProteinG,
		CarbsG:         found.TargetCarbsG,
		FatG:           found.TargetFatG,
		WaterMl:        found.TargetWaterMl,
	}
	if found.TargetDate != nil {
		response.TargetDate = found.TargetDate.Format("2006-01-02")
	}

	// BMR/TDEE and timeframe are cheap to recompute from the stored profile.
	profile := nutrition.Profile{
		Age:           found.Age,
		Gender:        found.Gender,
		HeightCm:      found.HeightCm,
		WeightKg:      found.CurrentWeightKg,
		ActivityLevel: found.ActivityLevel,
	}
	response.BMRKcal = nutrition.BMR(profile)
	response.TDEEKcal = nutrition.TDEE(profile)

	weeksToGoal := 1.0
	if found.TargetDate != nil {
		days := time.Until(*found.TargetDate).Hours() / 24
		if days > 1 {
			weeksToGoal = days / 7
		}
	}
	rate := nutrition.SafeWeeklyRate(profile, nutrition.Goal{
		Type:           found.GoalType,
		TargetWeightKg: found.TargetWeightKg,
		WeeksToGoal:    weeksToGoal,
	})
	response.SafeWeeklyChangeKg = rate
	response.EstimatedTimeframe = estimatedTimeframe(found.TargetWeightKg, found.TargetWeightKg-found.CurrentWeightKg, rate)

	return response, nil
}

// applyTargets writes the goal and the full target bundle onto the user in
// one place. Targets never change independently of a recompute.
func applyTargets(u *entities.User, v ValidatedGoal) {
	targetDate := v.TargetDate
	u.GoalType = v.GoalType
	u.TargetWeightKg = v.TargetWeightKg
	u.TargetDate = &targetDate
	u.TargetCalories = v.Targets.Calories
	u.TargetProteinG = v.Targets.ProteinG
	u.TargetCarbsG = v.Targets.CarbsG
	u.TargetFatG = v.Targets.FatG
	u.TargetWaterMl = v.Targets.WaterMl
}

func toGoalTargetsResponse(v ValidatedGoal) domain.GoalTargetsResponse {
	return domain.GoalTargetsResponse{
		GoalType:           v.GoalType,
		TargetWeightKg:     v.TargetWeightKg,
		TargetDate:         v.TargetDate.Format("2006-01-02"),
		Calories:           v.Targets.Calories,
		ProteinG:           v.Targets.ProteinG,
		CarbsG:             v.Targets.CarbsG,
		FatG:               v.Targets.FatG,
		WaterMl:            v.Targets.WaterMl,
		BMRKcal:            v.Targets.BMRKcal,
		TDEEKcal:           v.Targets.TDEEKcal,
		SafeWeeklyChangeKg: v.Targets.SafeWeeklyChangeKg,
		EstimatedTimeframe: v.EstimatedTimeframe,
	}
}

func formatTimeframe(weeks int, targetWeightKg float64) string {
	return fmt.Sprintf("%d weeks to reach %gkg", weeks, targetWeightKg)
}
