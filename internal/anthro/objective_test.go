package anthro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nutrition-app-server/internal/models"
)

func TestResolveObjective_GoalTypeWins(t *testing.T) {
	in := ObjectiveInput{
		GoalType:      models.GoalWeightGain,
		AnamnesisText: "I want to lose weight", // Contradicts the goal; goal wins
		BMI:           fptr(30),
	}

	assert.Equal(t, models.GoalWeightGain, ResolveObjective(in))
}

func TestResolveObjective_AnamnesisKeywords(t *testing.T) {
	cases := []struct {
		text string
		want models.GoalType
	}{
		{"I want to lose weight before summer", models.GoalWeightLoss},
		{"Preciso emagrecer 5kg", models.GoalWeightLoss},
		{"Build muscle and strength", models.GoalWeightGain},
		{"Ganho de massa magra", models.GoalWeightGain},
		{"Just maintain my current shape", models.GoalMaintenance},
		{"Manter o peso atual", models.GoalMaintenance},
	}

	for _, tc := range cases {
		got := ResolveObjective(ObjectiveInput{AnamnesisText: tc.text})
		assert.Equal(t, tc.want, got, "text %q", tc.text)
	}
}

func TestResolveObjective_BMIFallback(t *testing.T) {
	assert.Equal(t, models.GoalWeightLoss, ResolveObjective(ObjectiveInput{BMI: fptr(27.5)}))
	assert.Equal(t, models.GoalWeightGain, ResolveObjective(ObjectiveInput{BMI: fptr(17.0)}))
	assert.Equal(t, models.GoalMaintenance, ResolveObjective(ObjectiveInput{BMI: fptr(22.0)}))
}

func TestResolveObjective_DefaultsToMaintenance(t *testing.T) {
	assert.Equal(t, models.GoalMaintenance, ResolveObjective(ObjectiveInput{}))
	assert.Equal(t, models.GoalMaintenance, ResolveObjective(ObjectiveInput{AnamnesisText: "no matching wording"}))
}

func TestResolveObjective_AnamnesisBeatsBMI(t *testing.T) {
	in := ObjectiveInput{
		AnamnesisText: "goal: gain weight",
		BMI:           fptr(30), // BMI alone would say weight_loss
	}

	assert.Equal(t, models.GoalWeightGain, ResolveObjective(in))
}
