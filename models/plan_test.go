package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanContentStructured(t *testing.T) {
	fitness := FitnessPlan{Goal: "lose weight", Weeks: 8, Workouts: []string{"run", "swim"}}
	raw, err := json.Marshal(fitness)
	require.NoError(t, err)

	parsed := ParsePlanContent(PlanTypeFitness, raw)
	require.NotNil(t, parsed.Fitness)
	assert.Nil(t, parsed.Raw)
	assert.Equal(t, fitness, *parsed.Fitness)

	nutrition := NutritionPlan{DailyCalories: 2000, Meals: []string{"oats", "fish"}}
	raw, err = json.Marshal(nutrition)
	require.NoError(t, err)

	parsed = ParsePlanContent(PlanTypeNutrition, raw)
	require.NotNil(t, parsed.Nutrition)
	assert.Equal(t, nutrition, *parsed.Nutrition)
}

func TestParsePlanContentRawFallback(t *testing.T) {
	parsed := ParsePlanContent(PlanTypeFitness, []byte("here is your plan: run daily"))
	require.NotNil(t, parsed.Raw)
	assert.Nil(t, parsed.Fitness)
	assert.Equal(t, "here is your plan: run daily", parsed.Raw.Content)
}

func TestParsePlanContentWrappedRaw(t *testing.T) {
	// A stored fallback column must decode back to the raw variant,
	// not be mistaken for a structured plan.
	wrapped := WrapRawPlan("free-form advice")
	parsed := ParsePlanContent(PlanTypePreventive, []byte(wrapped))
	require.NotNil(t, parsed.Raw)
	assert.Equal(t, "free-form advice", parsed.Raw.Content)
}

func TestWrapRawPlanRoundTrip(t *testing.T) {
	wrapped := WrapRawPlan(`text with "quotes" and {braces}`)

	var decoded RawTextPlan
	require.NoError(t, json.Unmarshal(wrapped, &decoded))
	assert.Equal(t, `text with "quotes" and {braces}`, decoded.Content)
}
