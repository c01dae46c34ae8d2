package intent

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ruleBasedExtractor is the deterministic IntentExtractor. It implements the
// same contract as the completion-backed extractor from keyword rules and a
// small food table, and stands in for the live service in tests and when no
// API key is configured.
type ruleBasedExtractor struct{}

func NewRuleBasedExtractor() IntentExtractor {
	return &ruleBasedExtractor{}
}

// foodFacts is per-100g nutrition for foods the rule extractor recognizes.
type foodFacts struct {
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}

var knownFoods = map[string]foodFacts{
	"chicken": {165, 31, 0, 3.6},
	"beef":    {250, 26, 0, 15},
	"pork":    {242, 27, 0, 14},
	"fish":    {206, 22, 0, 12},
	"salmon":  {208, 20, 0, 13},
	"egg":     {155, 13, 1.1, 11},
	"eggs":    {155, 13, 1.1, 11},
	"rice":    {130, 2.7, 28, 0.3},
	"pasta":   {131, 5, 25, 1.1},
	"bread":   {265, 9, 49, 3.2},
	"potato":  {77, 2, 17, 0.1},
	"oatmeal": {68, 2.4, 12, 1.4},
	"salad":   {20, 1.5, 4, 0.2},
	"nuts":    {607, 20, 21, 54},
	"yogurt":  {59, 10, 3.6, 0.4},
	"apple":   {52, 0.3, 14, 0.2},
	"banana":  {89, 1.1, 23, 0.3},
}

var defaultFacts = foodFacts{150, 8, 15, 6}

var knownFoodPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(knownFoods))
	for food := range knownFoods {
		patterns[food] = regexp.MustCompile(`\b` + food + `\b`)
	}
	return patterns
}()

var explicitGramsPattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(g|grams?|ml|oz|cups?|pieces?|slices?|servings?)\b`)

func (e *ruleBasedExtractor) Extract(_ context.Context, req ExtractionRequest) (*ExtractionResult, error) {
	result := &ExtractionResult{}

	if !IsSuggestionSeeking(req.Message) {
		if IsConsumptionStatement(req.Message) {
			result.MealLog = buildMealLog(req)
		}
		if IsWeightStatement(req.Message) {
			result.WeightLog = buildWeightLog(req.Message)
		}
		if IsRemovalStatement(req.Message) {
			result.MealRemoval = buildMealRemoval(req.Message)
		}
	}

	switch {
	case result.MealLog != nil && result.WeightLog != nil:
		result.Response = "Noted, logging your meal and weight."
	case result.MealLog != nil:
		result.Response = fmt.Sprintf("Logged %s for you.", result.MealLog.MealName)
	case result.WeightLog != nil:
		result.Response = fmt.Sprintf("Got it, recording %.1f kg.", result.WeightLog.WeightKg)
	case result.MealRemoval != nil:
		result.Response = "Okay, removing that entry."
	default:
		result.Response = adviceReply(req)
	}

	return ApplyGuards(req, result), nil
}

// buildMealLog aggregates every recognized component into one entry: summed
// macros, combined gram weight, composite name.
func buildMealLog(req ExtractionRequest) *MealLog {
	message := strings.ToLower(req.Message)

	var components []string
	for food, pattern := range knownFoodPatterns {
		if pattern.MatchString(message) {
			components = append(components, food)
		}
	}
	sort.Strings(components)

	explicit := explicitGramsPattern.FindStringSubmatch(req.Message)
	typicalGrams, hasTypical := TypicalPortionGrams(req.Message)

	var grams float64
	switch {
	case hasTypical:
		// Recognized portion phrases like "2 pieces of meat" carry their
		// own gram weight and win over the generic unit conversion.
		grams = typicalGrams
	case explicit != nil:
		amount, _ := strconv.ParseFloat(explicit[1], 64)
		grams = toGrams(amount, explicit[2])
	default:
		// No portion indicator; ApplyGuards turns this into a clarification.
		grams = 0
	}

	name := compositeName(components, req.Message)

	if len(components) == 0 {
		components = []string{""}
	}
	perComponent := grams / float64(len(components))
	var totals foodFacts
	for _, food := range components {
		facts, ok := knownFoods[food]
		if !ok {
			facts = defaultFacts
		}
		totals.calories += facts.calories * perComponent / 100
		totals.protein += facts.protein * perComponent / 100
		totals.carbs += facts.carbs * perComponent / 100
		totals.fat += facts.fat * perComponent / 100
	}

	return &MealLog{
		ShouldLog: true,
		MealName:  name,
		MealType:  mealTypeForTime(req),
		Amount:    grams,
		Unit:      "g",
		Calories:  math.Round(totals.calories),
		Protein:   math.Round(totals.protein*10) / 10,
		Carbs:     math.Round(totals.carbs*10) / 10,
		Fat:       math.Round(totals.fat*10) / 10,
	}
}

func compositeName(components []string, message string) string {
	if len(components) > 0 {
		return strings.Join(components, " + ")
	}

	// Fall back to the words after the consumption marker.
	lower := strings.ToLower(message)
	for _, marker := range consumptionMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			rest := strings.TrimSpace(message[idx+len(marker):])
			rest = explicitGramsPattern.ReplaceAllString(rest, "")
			rest = strings.Trim(strings.TrimSpace(rest), ".!?,")
			for _, filler := range []string{"a ", "an ", "some ", "of "} {
				rest = strings.TrimPrefix(rest, filler)
			}
			if rest != "" {
				return rest
			}
		}
	}
	return "meal"
}

func mealTypeForTime(req ExtractionRequest) string {
	if req.User.LocalTime.IsZero() {
		return "other"
	}
	switch hour := req.User.LocalTime.Hour(); {
	case hour < 11:
		return "breakfast"
	case hour < 16:
		return "lunch"
	case hour < 21:
		return "dinner"
	default:
		return "snack"
	}
}

func buildWeightLog(message string) *WeightLog {
	match := weightStatementPattern.FindStringSubmatch(message)
	if match == nil {
		return nil
	}
	weight, err := strconv.ParseFloat(match[1], 64)
	if err != nil || weight <= 0 || weight > 500 {
		return nil
	}
	return &WeightLog{ShouldLog: true, WeightKg: weight}
}

func buildMealRemoval(message string) *MealRemoval {
	lower := strings.ToLower(message)
	for _, marker := range latestMealMarkers {
		if strings.Contains(lower, marker) {
			return &MealRemoval{ShouldRemove: true, MealToRemove: "latest"}
		}
	}

	for _, verb := range []string{"remove", "delete", "undo", "take off", "scratch"} {
		if idx := strings.Index(lower, verb); idx >= 0 {
			fragment := strings.TrimSpace(lower[idx+len(verb):])
			for _, filler := range []string{"the ", "my ", "that "} {
				fragment = strings.TrimPrefix(fragment, filler)
			}
			fragment = strings.TrimSuffix(fragment, " meal")
			fragment = strings.Trim(fragment, ".!?, ")
			if fragment != "" {
				return &MealRemoval{ShouldRemove: true, MealToRemove: fragment}
			}
		}
	}
	return &MealRemoval{ShouldRemove: true, MealToRemove: "latest"}
}

func toGrams(amount float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSuffix(unit, "s")) {
	case "oz":
		return amount * 28.35
	case "cup":
		return amount * 200
	case "piece":
		return amount * 100
	case "slice":
		return amount * 30
	case "serving":
		return amount * 150
	default: // g, gram, ml
		return amount
	}
}

func adviceReply(req ExtractionRequest) string {
	remaining := ""
	if req.User.TodayCalories > 0 {
		remaining = fmt.Sprintf(" You've logged %.0f kcal so far today.", req.User.TodayCalories)
	}
	return "Happy to help with that." + remaining +
		" Aim for a balanced plate: lean protein, whole grains, and plenty of vegetables."
}
