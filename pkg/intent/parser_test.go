package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/intent"
)

func TestParseCompletionPlainJSON(t *testing.T) {
	t.Parallel()

	raw := `{"response":"Logged it!","mealLog":{"shouldLog":true,"mealName":"grilled chicken","mealType":"lunch","amount":150,"unit":"g","calories":248,"protein":46.5,"carbs":0,"fat":5.4}}`
	result := intent.ParseCompletion(raw)

	assert.False(t, result.Unparseable)
	assert.Equal(t, "Logged it!", result.Response)
	require.NotNil(t, result.MealLog)
	assert.True(t, result.MealLog.ShouldLog)
	assert.Equal(t, "grilled chicken", result.MealLog.MealName)
	assert.Equal(t, 150.0, result.MealLog.Amount)
}

func TestParseCompletionStripsMarkdownFences(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"response\":\"Got it\",\"weightLog\":{\"shouldLog\":true,\"weight\":82.5}}\n```"
	result := intent.ParseCompletion(raw)

	assert.False(t, result.Unparseable)
	require.NotNil(t, result.WeightLog)
	assert.Equal(t, 82.5, result.WeightLog.WeightKg)
}

func TestParseCompletionExtractsObjectFromProse(t *testing.T) {
	t.Parallel()

	raw := "Sure! Here is the result:\n{\"response\":\"Hello\"}\nLet me know if you need more."
	result := intent.ParseCompletion(raw)

	assert.False(t, result.Unparseable)
	assert.Equal(t, "Hello", result.Response)
}

func TestParseCompletionMalformedDegradesToAdvice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "Eat more vegetables and drink water."},
		{"broken json", `{"response": "truncated`},
		{"object without response", `{"mealLog":{"shouldLog":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := intent.ParseCompletion(tt.raw)
			assert.True(t, result.Unparseable)
			assert.Equal(t, tt.raw, result.Response)
			assert.Nil(t, result.MealLog)
			assert.Nil(t, result.WeightLog)
			assert.Nil(t, result.MealRemoval)
		})
	}
}

func TestParseCompletionDropsInvalidPayloads(t *testing.T) {
	t.Parallel()

	raw := `{"response":"ok",
		"mealLog":{"shouldLog":true,"mealName":"chicken","amount":0,"unit":"g","calories":100},
		"weightLog":{"shouldLog":true,"weight":-3},
		"mealRemoval":{"shouldRemove":true,"mealToRemove":"  "}}`
	result := intent.ParseCompletion(raw)

	assert.False(t, result.Unparseable)
	assert.Nil(t, result.MealLog, "zero amount must be dropped")
	assert.Nil(t, result.WeightLog, "negative weight must be dropped")
	assert.Nil(t, result.MealRemoval, "blank removal target must be dropped")
}

func TestParseCompletionNormalizesEnums(t *testing.T) {
	t.Parallel()

	raw := `{"response":"ok","mealLog":{"shouldLog":true,"mealName":"bowl of soup","mealType":"supper","amount":300,"unit":"bowl","calories":200,"protein":8,"carbs":20,"fat":9}}`
	result := intent.ParseCompletion(raw)

	require.NotNil(t, result.MealLog)
	assert.Equal(t, "other", result.MealLog.MealType)
	assert.Equal(t, "g", result.MealLog.Unit)
}

func TestApplyGuardsSuggestionNeverLogs(t *testing.T) {
	t.Parallel()

	req := intent.ExtractionRequest{Message: "What should I eat for dinner? Maybe 200g chicken?"}
	result := &intent.ExtractionResult{
		Response: "How about chicken?",
		MealLog:  &intent.MealLog{ShouldLog: true, MealName: "chicken", Amount: 200, Unit: "g"},
	}

	guarded := intent.ApplyGuards(req, result)
	assert.Nil(t, guarded.MealLog)
	assert.Equal(t, "How about chicken?", guarded.Response)
}

func TestApplyGuardsPortionlessMealAsksOnce(t *testing.T) {
	t.Parallel()

	req := intent.ExtractionRequest{Message: "I ate chicken"}
	result := &intent.ExtractionResult{
		Response: "Logged chicken.",
		MealLog:  &intent.MealLog{ShouldLog: true, MealName: "chicken", Amount: 100, Unit: "g"},
	}

	guarded := intent.ApplyGuards(req, result)
	assert.Nil(t, guarded.MealLog)
	assert.Contains(t, guarded.Response, "How much chicken")
	assert.Equal(t, "chicken", guarded.ClarificationFor)
}

func TestApplyGuardsDoesNotAskTwiceForSameMeal(t *testing.T) {
	t.Parallel()

	req := intent.ExtractionRequest{
		Message: "I ate chicken",
		User:    intent.UserContext{LastClarifiedMeal: "chicken"},
	}
	result := &intent.ExtractionResult{
		Response: "Logged chicken.",
		MealLog:  &intent.MealLog{ShouldLog: true, MealName: "chicken", Amount: 100, Unit: "g"},
	}

	guarded := intent.ApplyGuards(req, result)
	assert.Nil(t, guarded.MealLog)
	assert.Empty(t, guarded.ClarificationFor)
	assert.NotContains(t, guarded.Response, "How much")
}
