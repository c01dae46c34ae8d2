package intent

import (
	"fmt"
	"strings"
)

// GenerationConfig is the per-context completion budget. The calculation
// context runs cold and short for deterministic numeric extraction; the
// assistant context gets room to talk.
type GenerationConfig struct {
	Temperature float64
	MaxTokens   int
}

const systemNibletAssistant = `You are Niblet, a friendly nutrition assistant inside a diet tracking app.
You answer questions, give advice, and turn what the user tells you into structured log actions.

Respond ONLY with a single valid JSON object, no markdown and no extra text, shaped exactly like:
{
  "response": "what you say back to the user",
  "mealLog": {"shouldLog": true, "mealName": "...", "mealType": "breakfast|lunch|dinner|snack|other", "amount": 0, "unit": "g|ml|oz|cup|piece|serving", "calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0},
  "weightLog": {"shouldLog": true, "weight": 0},
  "mealRemoval": {"shouldRemove": true, "mealToRemove": "latest or a meal name fragment"}
}
Omit mealLog, weightLog, and mealRemoval entirely unless they apply.

Rules you must follow exactly:
- Only log a meal when the user states in the PAST TENSE that they ate or drank something ("I ate", "I had", "just ate").
- Never log when the user asks what to eat, asks for suggestions or ideas, or talks about future meals, even if amounts appear in the message.
- Only log a meal when the message contains a portion: an explicit amount, or a typical portion phrase. Typical portions: 1 cup cooked rice = 200 g, 1 piece meat or fish = 100 g, 2 pieces meat = 150 g, 1 slice = 30 g, 1 medium potato = 150 g, 1 handful nuts = 30 g. An explicit amount always wins over a default.
- If a consumption statement has no portion of any kind, do not log; ask ONE short question for the amount in "response".
- A meal with several components is ONE aggregate entry: sum calories, protein, carbs, fat, and fiber across components, combine the gram weights, and use a composite name.
- Log weight when the user states their current weight ("I weigh", "my weight is", "weighed myself").
- A single message may log both a meal and a weight.
- Emit mealRemoval when the user wants an entry removed, deleted, or undone. Use "latest" for their most recent meal, otherwise a fragment of the meal name.`

const systemNutritionCalculation = `You are a nutrition calculation engine. Given a food description, return accurate
calorie and macronutrient numbers. Respond ONLY with a single valid JSON object with a "response" string and,
when a quantified food is described, a "mealLog" object: {"shouldLog": true, "mealName", "mealType", "amount",
"unit", "calories", "protein", "carbs", "fat", "fiber"}. No markdown, no explanations outside the JSON.`

const systemDefault = `You are a helpful nutrition assistant. Respond ONLY with a single valid JSON object
with a "response" string field containing your answer.`

// SystemPrompt selects the system role text for a context tag.
func SystemPrompt(contextTag string) string {
	switch contextTag {
	case "nutrition_calculation":
		return systemNutritionCalculation
	case "niblet_assistant":
		return systemNibletAssistant
	default:
		return systemDefault
	}
}

// GenerationConfigFor returns the budget for a context tag.
func GenerationConfigFor(contextTag string) GenerationConfig {
	switch contextTag {
	case "nutrition_calculation":
		return GenerationConfig{Temperature: 0.1, MaxTokens: 512}
	case "niblet_assistant":
		return GenerationConfig{Temperature: 0.7, MaxTokens: 2048}
	default:
		return GenerationConfig{Temperature: 0.4, MaxTokens: 1024}
	}
}

// BuildUserPrompt composes the user turn: the context bundle followed by the
// raw utterance.
func BuildUserPrompt(req ExtractionRequest) string {
	var b strings.Builder

	if req.User.ProfileSummary != "" {
		fmt.Fprintf(&b, "User profile: %s\n", req.User.ProfileSummary)
	}
	fmt.Fprintf(&b, "Logged today: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat\n",
		req.User.TodayCalories, req.User.TodayProteinG, req.User.TodayCarbsG, req.User.TodayFatG)
	if len(req.User.RecentMeals) > 0 {
		fmt.Fprintf(&b, "Recent meals: %s\n", strings.Join(req.User.RecentMeals, ", "))
	}
	if !req.User.LocalTime.IsZero() {
		fmt.Fprintf(&b, "Current local time: %s\n", req.User.LocalTime.Format("Mon 15:04"))
	}
	if req.User.LastClarifiedMeal != "" {
		fmt.Fprintf(&b, "You already asked once how much %q the user had; do not ask again.\n", req.User.LastClarifiedMeal)
	}

	fmt.Fprintf(&b, "\nUser message: %s", req.Message)
	return b.String()
}
