package intent

import (
	"context"
	"time"
)

// IntentExtractor turns one chat utterance plus its context bundle into a
// structured extraction result. The production implementation delegates to a
// completion service; a deterministic rule-based implementation stands in for
// it in tests.
type IntentExtractor interface {
	Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResult, error)
}

// ImageAttachment carries inline image bytes for the duration of one request.
// It is never persisted; the transcript stores only an uploaded URL.
type ImageAttachment struct {
	Data     []byte
	MimeType string
}

// UserContext is the per-turn context bundle handed to the extractor.
type UserContext struct {
	ProfileSummary string
	TodayCalories  float64
	TodayProteinG  float64
	TodayCarbsG    float64
	TodayFatG      float64
	RecentMeals    []string
	LocalTime      time.Time

	// LastClarifiedMeal is the meal mention the previous assistant message
	// already asked a portion question about. A repeated portionless mention
	// of the same meal gets advice, not a second question.
	LastClarifiedMeal string
}

type ExtractionRequest struct {
	Message    string
	Image      *ImageAttachment
	ContextTag string
	User       UserContext
}

// MealLog is one aggregate meal entry. Multi-component meals are summed into
// a single entry with a composite name, never one entry per component.
type MealLog struct {
	ShouldLog bool     `json:"shouldLog"`
	MealName  string   `json:"mealName"`
	MealType  string   `json:"mealType"`
	Amount    float64  `json:"amount"`
	Unit      string   `json:"unit"`
	Calories  float64  `json:"calories"`
	Protein   float64  `json:"protein"`
	Carbs     float64  `json:"carbs"`
	Fat       float64  `json:"fat"`
	Fiber     *float64 `json:"fiber,omitempty"`
}

type WeightLog struct {
	ShouldLog bool    `json:"shouldLog"`
	WeightKg  float64 `json:"weight"`
}

// MealRemoval targets either the literal token "latest" or a free-text
// fragment matched against recent meal names.
type MealRemoval struct {
	ShouldRemove bool   `json:"shouldRemove"`
	MealToRemove string `json:"mealToRemove"`
}

// ExtractionResult is the strict tagged output of one turn. Response is
// always present; the payloads are optional and may co-occur (a message can
// state a meal and a weight in the same breath). Unparseable marks a result
// degraded from malformed completion output: Response then carries the raw
// text and no payload is ever attached.
type ExtractionResult struct {
	Response    string       `json:"response"`
	MealLog     *MealLog     `json:"mealLog,omitempty"`
	WeightLog   *WeightLog   `json:"weightLog,omitempty"`
	MealRemoval *MealRemoval `json:"mealRemoval,omitempty"`

	// ClarificationFor is set when Response is a portion question for a meal
	// mention, so the next turn can suppress a repeat question.
	ClarificationFor string `json:"-"`

	Unparseable bool `json:"-"`
}

// HasSideEffects reports whether applying this result writes anything.
func (r *ExtractionResult) HasSideEffects() bool {
	return (r.MealLog != nil && r.MealLog.ShouldLog) ||
		(r.WeightLog != nil && r.WeightLog.ShouldLog) ||
		(r.MealRemoval != nil && r.MealRemoval.ShouldRemove)
}
