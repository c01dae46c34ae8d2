package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	// Context tags select the system role text and generation budget for the
	// completion call.
	ContextNutritionCalculation = "nutrition_calculation"
	ContextNibletAssistant      = "niblet_assistant"
	ContextDefault              = "default"
)

var (
	MessageSuccessSendMessage   = "message processed successfully"
	MessageSuccessGetTranscript = "transcript retrieved successfully"
	MessageSuccessNewSession    = "new session started successfully"

	MessageFailedSendMessage   = "failed to process message"
	MessageFailedGetTranscript = "failed to retrieve transcript"
	MessageFailedNewSession    = "failed to start new session"
	MessageMissingChatMessage  = "message is required"
	MessageQuotaExceeded       = "completion service quota exceeded"

	ErrEmptyMessage           = errors.New("message is required")
	ErrQuotaExceeded          = errors.New("completion service quota exceeded")
	ErrExtractorNotConfigured = errors.New("completion service not configured")
	ErrExtractionFailed       = errors.New("completion service request failed")
	ErrRemovalTargetNotFound  = errors.New("no matching meal found to remove")
)

type (
	SendMessageRequest struct {
		Message    string                `json:"message" form:"message" validate:"required"`
		ContextTag string                `json:"context" form:"context" validate:"omitempty,oneof=nutrition_calculation niblet_assistant default"`
		Image      *multipart.FileHeader `json:"-" form:"image" validate:"omitempty"`
	}

	ChatMessageResponse struct {
		MessageID string    `json:"message_id"`
		Role      string    `json:"role"`
		Content   string    `json:"content"`
		ImageURL  string    `json:"image_url,omitempty"`
		SentAt    time.Time `json:"sent_at"`

		MealLogged      bool    `json:"meal_logged,omitempty"`
		LoggedMealName  string  `json:"logged_meal_name,omitempty"`
		LoggedCalories  float64 `json:"logged_calories,omitempty"`
		WeightLogged    bool    `json:"weight_logged,omitempty"`
		LoggedWeightKg  float64 `json:"logged_weight_kg,omitempty"`
		MealRemoved     bool    `json:"meal_removed,omitempty"`
		RemovedMealName string  `json:"removed_meal_name,omitempty"`
		RemovedCalories float64 `json:"removed_calories,omitempty"`
	}

	SendMessageResponse struct {
		// LoadingLabel is the pre-classified UX hint ("logging" or
		// "thinking") chosen before extraction runs.
		LoadingLabel string              `json:"loading_label"`
		Reply        ChatMessageResponse `json:"reply"`
	}

	TranscriptResponse struct {
		Messages []ChatMessageResponse `json:"messages"`
	}
)
