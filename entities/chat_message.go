package entities

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is the persisted form of a transcript message. Transient
// per-request data (inline image bytes) never reaches this table; only the
// uploaded image URL is stored.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	MessageID string    `gorm:"index" json:"message_id"` // time+random composite, unique per transcript
	Role      string    `json:"role"`                    // "user", "assistant"
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`

	// Echo of side effects applied while producing this message
	MealLogged      bool    `json:"meal_logged"`
	LoggedMealName  string  `json:"logged_meal_name,omitempty"`
	LoggedCalories  float64 `json:"logged_calories,omitempty"`
	MealRemoved     bool    `json:"meal_removed"`
	RemovedMealName string  `json:"removed_meal_name,omitempty"`
	RemovedCalories float64 `json:"removed_calories,omitempty"`
	WeightLogged    bool    `json:"weight_logged"`
	LoggedWeightKg  float64 `json:"logged_weight_kg,omitempty"`

	// ClarificationFor holds the meal mention an assistant message asked a
	// portion question about, so the same question is not asked twice in a row.
	ClarificationFor string `json:"clarification_for,omitempty"`

	SchemaVersion int       `json:"schema_version"`
	SentAt        time.Time `gorm:"type:timestamp" json:"sent_at"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
