package intent

import (
	"regexp"
	"strings"
)

// The linguistic gates below are shared by the rule-based extractor and by
// the post-extraction guards applied to completion-service output.

var consumptionMarkers = []string{
	"i ate", "i had", "just ate", "just had", "i've eaten", "i have eaten",
	"ate a", "ate some", "had a", "had some", "i drank", "just drank",
	"finished eating", "for breakfast i", "for lunch i", "for dinner i",
}

var suggestionMarkers = []string{
	"what should", "what can i", "suggest", "recommend", "recommendation",
	"ideas", "any idea", "should i eat", "should i have", "going to eat",
	"will eat", "planning to", "plan to eat", "can you give me",
}

var weightMarkers = []string{
	"i weigh", "my weight is", "weighed myself", "i'm at", "i am at",
	"weighed in at", "my weight today", "scale says", "scale said",
}

var removalMarkers = []string{
	"remove", "delete", "undo", "take off", "take out", "scratch",
	"didn't eat", "did not eat", "logged by mistake",
}

var latestMealMarkers = []string{
	"last meal", "latest meal", "latest", "last one", "last entry",
	"my last", "the last", "most recent",
}

// explicitPortionPattern matches a number followed by a recognized unit.
var explicitPortionPattern = regexp.MustCompile(
	`(?i)\b\d+(?:\.\d+)?\s*(?:g|grams?|kg|ml|l|oz|ounces?|cups?|pieces?|slices?|servings?|tbsps?|tsps?|bowls?)\b`)

// weightStatementPattern captures the number in a weight statement.
var weightStatementPattern = regexp.MustCompile(
	`(?i)\b(\d+(?:\.\d+)?)\s*(?:kg|kgs|kilos?|kilograms?)\b`)

// typicalPortion is a recognized portion phrase and its default gram weight.
// Defaults avoid a clarification round-trip for common counted portions.
type typicalPortion struct {
	pattern *regexp.Regexp
	grams   float64
}

var typicalPortions = []typicalPortion{
	{regexp.MustCompile(`(?i)\b(?:a|one|1)\s+cup\s+(?:of\s+)?(?:cooked\s+)?rice\b`), 200},
	{regexp.MustCompile(`(?i)\b(?:two|2)\s+pieces?\s+(?:of\s+)?(?:meat|chicken|beef|pork|fish)\b`), 150},
	{regexp.MustCompile(`(?i)\b(?:a|one|1)\s+piece\s+(?:of\s+)?(?:meat|chicken|beef|pork|fish|salmon)\b`), 100},
	{regexp.MustCompile(`(?i)\b(?:a|one|1)\s+slice\b`), 30},
	{regexp.MustCompile(`(?i)\b(?:a|one|1)\s+medium\s+potato\b`), 150},
	{regexp.MustCompile(`(?i)\b(?:a|one|1)\s+handful\s+(?:of\s+)?nuts\b`), 30},
}

// IsConsumptionStatement reports whether the utterance contains past-tense
// consumption language.
func IsConsumptionStatement(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range consumptionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsSuggestionSeeking reports future-tense or advice-seeking language. Such
// messages never produce a logging intent regardless of co-occurring portion
// words.
func IsSuggestionSeeking(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range suggestionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsWeightStatement reports a first-person present-state weight statement
// carrying a number.
func IsWeightStatement(message string) bool {
	lower := strings.ToLower(message)
	if !weightStatementPattern.MatchString(lower) {
		return false
	}
	for _, marker := range weightMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsRemovalStatement reports removal/deletion/undo language aimed at a meal.
func IsRemovalStatement(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range removalMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// HasPortionIndicator reports whether the message carries any portion signal:
// an explicit amount or a recognized typical-portion phrase.
func HasPortionIndicator(message string) bool {
	if explicitPortionPattern.MatchString(message) {
		return true
	}
	for _, tp := range typicalPortions {
		if tp.pattern.MatchString(message) {
			return true
		}
	}
	return false
}

// TypicalPortionGrams returns the default gram weight for a typical-portion
// phrase, if the message contains one.
func TypicalPortionGrams(message string) (float64, bool) {
	for _, tp := range typicalPortions {
		if tp.pattern.MatchString(message) {
			return tp.grams, true
		}
	}
	return 0, false
}

// PreclassifyLabel picks the loading indicator shown while the turn is in
// flight. It is a UX hint only, chosen by cheap keyword matching before the
// extractor runs, and may disagree with the extractor's eventual decision.
func PreclassifyLabel(message string) string {
	if IsSuggestionSeeking(message) {
		return "thinking"
	}
	if IsConsumptionStatement(message) || IsWeightStatement(message) || IsRemovalStatement(message) {
		return "logging"
	}
	return "thinking"
}
