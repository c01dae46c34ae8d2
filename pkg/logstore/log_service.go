package logstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/user"
)

type (
	LogService interface {
		AddMealLog(ctx context.Context, req domain.AddMealLogRequest, userID string) (domain.MealLogResponse, error)
		DeleteMealLog(ctx context.Context, id string, userID string) error
		GetMealLogs(ctx context.Context, userID string, limit int) ([]domain.MealLogResponse, error)
		AddWeightLog(ctx context.Context, req domain.AddWeightLogRequest, userID string) (domain.WeightLogResponse, error)
		GetWeightLogs(ctx context.Context, userID string, limit int) ([]domain.WeightLogResponse, error)
		GetDailySummary(ctx context.Context, userID string) (domain.DailySummaryResponse, error)
	}

	logService struct {
		mealRepository   MealLogRepository
		weightRepository WeightLogRepository
		userRepository   user.UserRepository
		feed             Feed
	}
)

func NewLogService(
	mealRepository MealLogRepository,
	weightRepository WeightLogRepository,
	userRepository user.UserRepository,
	feed Feed,
) LogService {
	return &logService{
		mealRepository:   mealRepository,
		weightRepository: weightRepository,
		userRepository:   userRepository,
		feed:             feed,
	}
}

func (s *logService) AddMealLog(ctx context.Context, req domain.AddMealLogRequest, userID string) (domain.MealLogResponse, error) {
	if req.Amount <= 0 {
		return domain.MealLogResponse{}, domain.ErrInvalidAmount
	}
	if req.Calories < 0 || req.ProteinG < 0 || req.CarbsG < 0 || req.FatG < 0 {
		return domain.MealLogResponse{}, domain.ErrNegativeNutrition
	}
	if req.FiberG != nil && *req.FiberG < 0 {
		return domain.MealLogResponse{}, domain.ErrNegativeNutrition
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MealLogResponse{}, domain.ErrParseUUID
	}

	entry := &entities.MealLogEntry{
		ID:         uuid.New(),
		UserID:     userUUID,
		MealName:   req.MealName,
		MealType:   req.MealType,
		Amount:     req.Amount,
		Unit:       req.Unit,
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatG:       req.FatG,
		FiberG:     req.FiberG,
		ConsumedAt: time.Now(),
	}

	if err := s.mealRepository.AddMealLog(ctx, entry); err != nil {
		return domain.MealLogResponse{}, err
	}
	s.feed.Refresh(userID)

	return toMealLogResponse(entry), nil
}

func (s *logService) DeleteMealLog(ctx context.Context, id string, userID string) error {
	entry, err := s.mealRepository.GetMealLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealLogNotFound
		}
		return err
	}

	if entry.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	if err := s.mealRepository.DeleteMealLog(ctx, id); err != nil {
		return err
	}
	s.feed.Refresh(userID)
	return nil
}

func (s *logService) GetMealLogs(ctx context.Context, userID string, limit int) ([]domain.MealLogResponse, error) {
	entries, err := s.mealRepository.GetMealLogs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	response := make([]domain.MealLogResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toMealLogResponse(entry))
	}
	return response, nil
}

func (s *logService) AddWeightLog(ctx context.Context, req domain.AddWeightLogRequest, userID string) (domain.WeightLogResponse, error) {
	if req.WeightKg <= 0 {
		return domain.WeightLogResponse{}, domain.ErrInvalidWeight
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.WeightLogResponse{}, domain.ErrParseUUID
	}

	entry := &entities.WeightLogEntry{
		ID:         uuid.New(),
		UserID:     userUUID,
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		MuscleKg:   req.MuscleKg,
		RecordedAt: time.Now(),
	}

	if err := s.weightRepository.AddWeightLog(ctx, entry); err != nil {
		return domain.WeightLogResponse{}, err
	}

	// The profile tracks the most recent weight for goal and BMI purposes.
	if found, err := s.userRepository.GetUserByID(ctx, userID); err == nil {
		found.CurrentWeightKg = req.WeightKg
		if found.HeightCm > 0 {
			heightM := found.HeightCm / 100
			found.BMI = req.WeightKg / (heightM * heightM)
		}
		_ = s.userRepository.UpdateUser(ctx, found)
	}

	s.feed.Refresh(userID)

	return domain.WeightLogResponse{
		ID:         entry.ID.String(),
		WeightKg:   entry.WeightKg,
		BodyFatPct: entry.BodyFatPct,
		MuscleKg:   entry.MuscleKg,
		RecordedAt: entry.RecordedAt,
		CreatedAt:  entry.CreatedAt,
	}, nil
}

func (s *logService) GetWeightLogs(ctx context.Context, userID string, limit int) ([]domain.WeightLogResponse, error) {
	entries, err := s.weightRepository.GetWeightLogs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	response := make([]domain.WeightLogResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, domain.WeightLogResponse{
			ID:         entry.ID.String(),
			WeightKg:   entry.WeightKg,
			BodyFatPct: entry.BodyFatPct,
			MuscleKg:   entry.MuscleKg,
			RecordedAt: entry.RecordedAt,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return response, nil
}

func (s *logService) GetDailySummary(ctx context.Context, userID string) (domain.DailySummaryResponse, error) {
	entries, err := s.mealRepository.GetMealLogsByDay(ctx, userID, time.Now())
	if err != nil {
		return domain.DailySummaryResponse{}, err
	}

	summary := domain.DailySummaryResponse{
		Date:        time.Now().Format("2006-01-02"),
		MealsLogged: len(entries),
	}
	for _, entry := range entries {
		summary.Calories += entry.Calories
		summary.ProteinG += entry.ProteinG
		summary.CarbsG += entry.CarbsG
		summary.FatG += entry.FatG
	}

	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DailySummaryResponse{}, domain.ErrUserNotFound
		}
		return domain.DailySummaryResponse{}, err
	}
	summary.TargetCalories = found.TargetCalories
	summary.TargetProteinG = found.TargetProteinG
	summary.TargetCarbsG = found.TargetCarbsG
	summary.TargetFatG = found.TargetFatG

	// A user who has never weighed in just leaves the field empty.
	if latest, err := s.weightRepository.GetLatestWeightLog(ctx, userID); err == nil {
		summary.LatestWeightKg = latest.WeightKg
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DailySummaryResponse{}, err
	}

	return summary, nil
}

func toMealLogResponse(entry *entities.MealLogEntry) domain.MealLogResponse {
	return domain.MealLogResponse{
		ID:         entry.ID.String(),
		MealName:   entry.MealName,
		MealType:   entry.MealType,
		Amount:     entry.Amount,
		Unit:       entry.Unit,
		Calories:   entry.Calories,
		ProteinG:   entry.ProteinG,
		CarbsG:     entry.CarbsG,
		FatG:       entry.FatG,
		FiberG:     entry.FiberG,
		ImageURL:   entry.ImageURL,
		ConsumedAt: entry.ConsumedAt,
		CreatedAt:  entry.CreatedAt,
	}
}
