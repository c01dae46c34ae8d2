package entities

import (
	"time"

	"github.com/google/uuid"
)

type MealLogEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	MealName   string    `json:"meal_name"`
	MealType   string    `json:"meal_type"` // "breakfast", "lunch", "dinner", "snack", "other"
	Amount     float64   `json:"amount"`
	Unit       string    `json:"unit"` // "g", "ml", "oz", "cup", "piece", "serving"
	Calories   float64   `json:"calories"`
	ProteinG   float64   `json:"protein_g"`
	CarbsG     float64   `json:"carbs_g"`
	FatG       float64   `json:"fat_g"`
	FiberG     *float64  `json:"fiber_g,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	ConsumedAt time.Time `gorm:"type:timestamp" json:"consumed_at"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
