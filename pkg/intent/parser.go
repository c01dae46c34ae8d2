package intent

import (
	"encoding/json"
	"regexp"
	"strings"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseCompletion converts raw completion-service text into an
// ExtractionResult. Model output is expected to be a single JSON object but
// often arrives wrapped in markdown fences or prose; anything that cannot be
// parsed into the schema degrades to an unparseable advice result carrying
// the raw text, never an error. Payloads that fail validation are dropped
// rather than trusted.
func ParseCompletion(raw string) *ExtractionResult {
	text := strings.TrimSpace(raw)
	if match := jsonObjectPattern.FindString(text); match != "" {
		text = match
	}
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	var result ExtractionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return &ExtractionResult{Response: raw, Unparseable: true}
	}
	if result.Response == "" {
		// A schema-shaped object with no response field is not trusted.
		return &ExtractionResult{Response: raw, Unparseable: true}
	}

	sanitize(&result)
	return &result
}

// sanitize validates each payload against the domain invariants and drops
// the ones that fail. Field presence is never trusted implicitly.
func sanitize(r *ExtractionResult) {
	if r.MealLog != nil {
		m := r.MealLog
		if !m.ShouldLog || m.MealName == "" || m.Amount <= 0 ||
			m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 ||
			(m.Fiber != nil && *m.Fiber < 0) {
			r.MealLog = nil
		} else {
			if !validMealType(m.MealType) {
				m.MealType = "other"
			}
			if !validUnit(m.Unit) {
				m.Unit = "g"
			}
		}
	}
	if r.WeightLog != nil {
		w := r.WeightLog
		if !w.ShouldLog || w.WeightKg <= 0 || w.WeightKg > 500 {
			r.WeightLog = nil
		}
	}
	if r.MealRemoval != nil {
		m := r.MealRemoval
		if !m.ShouldRemove || strings.TrimSpace(m.MealToRemove) == "" {
			r.MealRemoval = nil
		}
	}
}

func validMealType(t string) bool {
	switch t {
	case "breakfast", "lunch", "dinner", "snack", "other":
		return true
	}
	return false
}

func validUnit(u string) bool {
	switch u {
	case "g", "ml", "oz", "cup", "piece", "serving":
		return true
	}
	return false
}

// ApplyGuards enforces the disambiguation rules on an extraction result,
// whatever produced it. Suggestion-seeking messages never log; a consumption
// statement without any portion indicator gets a single clarification
// question instead of a meal entry, and never the same question twice in a
// row for the same meal mention.
func ApplyGuards(req ExtractionRequest, r *ExtractionResult) *ExtractionResult {
	if r.Unparseable {
		return r
	}

	if IsSuggestionSeeking(req.Message) {
		r.MealLog = nil
		r.WeightLog = nil
		r.MealRemoval = nil
		return r
	}

	if r.MealLog != nil && !HasPortionIndicator(req.Message) {
		mention := strings.ToLower(strings.TrimSpace(r.MealLog.MealName))
		r.MealLog = nil
		if mention != "" && mention == strings.ToLower(req.User.LastClarifiedMeal) {
			// Already asked once; answer with advice instead of repeating.
			r.Response = "No rush - whenever you know the amount, tell me and I'll log it."
			return r
		}
		r.Response = clarificationQuestion(mention)
		r.ClarificationFor = mention
	}
	return r
}

func clarificationQuestion(mention string) string {
	if mention == "" {
		return "How much did you have? A rough amount like grams, cups, or pieces works."
	}
	return "How much " + mention + " did you have? A rough amount like grams, cups, or pieces works."
}
