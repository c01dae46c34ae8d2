package entities

import (
	"time"

	"github.com/google/uuid"
)

type WeightLogEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	WeightKg   float64   `json:"weight_kg"`
	BodyFatPct *float64  `json:"body_fat_pct,omitempty"`
	MuscleKg   *float64  `json:"muscle_kg,omitempty"`
	RecordedAt time.Time `gorm:"type:timestamp" json:"recorded_at"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
