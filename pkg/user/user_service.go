package user

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/utils"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/utils/mailing"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/jwt"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/nutrition"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		SendVerificationEmail(ctx context.Context, req domain.SendVerificationRequest) error
		VerifyEmail(ctx context.Context, token string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		Me(ctx context.Context, userID string) (domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	exists, err := s.userRepository.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	newUser := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return domain.RegisterResponse{}, err
	}

	if err := s.sendVerification(newUser); err != nil {
		// Registration stands even if the mail fails; the user can re-request.
		fmt.Printf("failed to send verification email: %v\n", err)
	}

	return domain.RegisterResponse{
		ID:    newUser.ID.String(),
		Name:  newUser.Name,
		Email: newUser.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	found, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(found.ID.String(), found.Role)
	return domain.LoginResponse{
		Token: token,
		Role:  found.Role,
	}, nil
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerificationRequest) error {
	found, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if found.IsVerified {
		return domain.ErrAlreadyVerified
	}

	return s.sendVerification(found)
}

func (s *userService) sendVerification(u *entities.User) error {
	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": u.ID.String(),
		"purpose": "verify_email",
	}, 24*time.Hour)
	if err != nil {
		return err
	}

	verifyURL := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to Niblet! Please verify your email by clicking <a href=%q>here</a>.</p>",
		u.Name, verifyURL,
	)
	return mailing.SendMail(u.Email, "Verify your Niblet account", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(token)
	if err != nil {
		return err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "verify_email" {
		return domain.ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	found.IsVerified = true
	return s.userRepository.UpdateUser(ctx, found)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	found, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": found.ID.String(),
		"purpose": "reset_password",
	}, 30*time.Minute)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Reset your Niblet password by clicking <a href=%q>here</a>. The link expires in 30 minutes.</p>",
		found.Name, resetURL,
	)
	return mailing.SendMail(found.Email, "Reset your Niblet password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "reset_password" {
		return domain.ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	found.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, found)
}

func (s *userService) Me(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.ProfileResponse{}, err
	}

	return domain.ProfileResponse{
		ID:                 found.ID.String(),
		Name:               found.Name,
		Email:              found.Email,
		Age:                found.Age,
		Gender:             found.Gender,
		HeightCm:           found.HeightCm,
		CurrentWeightKg:    found.CurrentWeightKg,
		BMI:                found.BMI,
		ActivityLevel:      found.ActivityLevel,
		City:               found.City,
		Country:            found.Country,
		Timezone:           found.Timezone,
		GoalType:           found.GoalType,
		TargetWeightKg:     found.TargetWeightKg,
		TargetDate:         found.TargetDate,
		TargetCalories:     found.TargetCalories,
		TargetProteinG:     found.TargetProteinG,
		TargetCarbsG:       found.TargetCarbsG,
		TargetFatG:         found.TargetFatG,
		TargetWaterMl:      found.TargetWaterMl,
		OnboardingComplete: found.OnboardingComplete,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) error {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.Name != "" {
		found.Name = req.Name
	}
	if req.Age > 0 {
		found.Age = req.Age
	}
	if req.HeightCm > 0 {
		found.HeightCm = req.HeightCm
		found.BMI = roundBMI(found.CurrentWeightKg, found.HeightCm)
	}
	if req.ActivityLevel != "" {
		found.ActivityLevel = req.ActivityLevel
	}
	if req.City != "" {
		found.City = req.City
	}
	if req.Country != "" {
		found.Country = req.Country
	}
	if req.Timezone != "" {
		found.Timezone = req.Timezone
	}

	return s.userRepository.UpdateUser(ctx, found)
}

func roundBMI(weightKg, heightCm float64) float64 {
	return math.Round(nutrition.BMI(weightKg, heightCm)*10) / 10
}
