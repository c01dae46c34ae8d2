package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login successful"
	MessageSuccessSendVerification = "verification email sent successfully"
	MessageSuccessVerifyEmail      = "email verified successfully"
	MessageSuccessGetProfile       = "profile retrieved successfully"
	MessageSuccessUpdateProfile    = "profile updated successfully"
	MessageSuccessOnboarding       = "onboarding completed successfully"
	MessageSuccessForgotPassword   = "password reset email sent successfully"
	MessageSuccessResetPassword    = "password reset successfully"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedSendVerification = "failed to send verification email"
	MessageFailedVerifyEmail      = "failed to verify email"
	MessageFailedGetProfile       = "failed to retrieve profile"
	MessageFailedUpdateProfile    = "failed to update profile"
	MessageFailedOnboarding       = "failed to complete onboarding"
	MessageFailedForgotPassword   = "failed to send password reset email"
	MessageFailedResetPassword    = "failed to reset password"

	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrAlreadyVerified     = errors.New("email already verified")
	ErrOnboardingDone      = errors.New("onboarding already completed")
	ErrInvalidProfileField = errors.New("invalid profile field")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	SendVerificationRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	// OnboardingRequest captures the questionnaire. Completing it computes
	// the daily targets and seeds the first weight log entry.
	OnboardingRequest struct {
		Age             int     `json:"age" validate:"required,min=1,max=120"`
		Gender          string  `json:"gender" validate:"required,oneof=male female other"`
		HeightCm        float64 `json:"height_cm" validate:"required,gt=0"`
		CurrentWeightKg float64 `json:"current_weight_kg" validate:"required,gt=0"`
		ActivityLevel   string  `json:"activity_level" validate:"required,oneof=sedentary lightly_active moderately_active very_active extremely_active"`
		City            string  `json:"city" validate:"omitempty"`
		Country         string  `json:"country" validate:"omitempty"`
		Timezone        string  `json:"timezone" validate:"omitempty"`
		GoalType        string  `json:"goal_type" validate:"required,oneof=weight_loss weight_gain maintain_weight muscle_gain"`
		TargetWeightKg  float64 `json:"target_weight_kg" validate:"required,gt=0"`
		TargetDate      string  `json:"target_date" validate:"required"`
	}

	ProfileResponse struct {
		ID                 string     `json:"id"`
		Name               string     `json:"name"`
		Email              string     `json:"email"`
		Age                int        `json:"age"`
		Gender             string     `json:"gender"`
		HeightCm           float64    `json:"height_cm"`
		CurrentWeightKg    float64    `json:"current_weight_kg"`
		BMI                float64    `json:"bmi"`
		ActivityLevel      string     `json:"activity_level"`
		City               string     `json:"city,omitempty"`
		Country            string     `json:"country,omitempty"`
		Timezone           string     `json:"timezone,omitempty"`
		GoalType           string     `json:"goal_type"`
		TargetWeightKg     float64    `json:"target_weight_kg"`
		TargetDate         *time.Time `json:"target_date,omitempty"`
		TargetCalories     int        `json:"target_calories"`
		TargetProteinG     int        `json:"target_protein_g"`
		TargetCarbsG       int        `json:"target_carbs_g"`
		TargetFatG         int        `json:"target_fat_g"`
		TargetWaterMl      int        `json:"target_water_ml"`
		OnboardingComplete bool       `json:"onboarding_complete"`
	}

	UpdateProfileRequest struct {
		Name          string  `json:"name" validate:"omitempty"`
		Age           int     `json:"age" validate:"omitempty,min=1,max=120"`
		HeightCm      float64 `json:"height_cm" validate:"omitempty,gt=0"`
		ActivityLevel string  `json:"activity_level" validate:"omitempty,oneof=sedentary lightly_active moderately_active very_active extremely_active"`
		City          string  `json:"city" validate:"omitempty"`
		Country       string  `json:"country" validate:"omitempty"`
		Timezone      string  `json:"timezone" validate:"omitempty"`
	}
)
