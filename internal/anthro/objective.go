package anthro

import (
	"strings"

	"nutrition-app-server/internal/models"
)

// ObjectiveInput carries the heterogeneous signals the objective can be
// resolved from: the patient's active goal, the active anamnesis free-text
// objective, and the BMI of the record under evaluation.
type ObjectiveInput struct {
	GoalType      models.GoalType // empty when no active goal
	AnamnesisText string
	BMI           *float64
}

// objectiveRule is one resolution strategy. It either resolves an objective
// or passes to let the next rule try.
type objectiveRule func(ObjectiveInput) (models.GoalType, bool)

// objectiveRules is evaluated in order; the first rule to resolve wins.
// Order matters: an explicit goal beats anamnesis wording, which beats the
// BMI heuristic.
var objectiveRules = []objectiveRule{
	fromGoalType,
	fromAnamnesisText,
	fromBMI,
}

// ResolveObjective derives the clinical objective used to interpret
// anthropometric changes. Falls back to maintenance when nothing matches.
func ResolveObjective(in ObjectiveInput) models.GoalType {
	for _, rule := range objectiveRules {
		if objective, ok := rule(in); ok {
			return objective
		}
	}
	return models.GoalMaintenance
}

func fromGoalType(in ObjectiveInput) (models.GoalType, bool) {
	switch in.GoalType {
	case models.GoalWeightLoss, models.GoalWeightGain, models.GoalMaintenance:
		return in.GoalType, true
	}
	return "", false
}

// Free-text keyword stems, matched case-insensitively. Patients write their
// objective in their own words, in English or Portuguese.
var (
	lossKeywords = []string{"lose weight", "weight loss", "fat loss", "slim", "emagrec", "perda de peso", "reduzir"}
	gainKeywords = []string{"gain weight", "weight gain", "muscle", "bulk", "mass", "ganho", "hipertrofia", "massa"}
	keepKeywords = []string{"maintain", "maintenance", "manter", "manuten"}
)

func fromAnamnesisText(in ObjectiveInput) (models.GoalType, bool) {
	text := strings.ToLower(in.AnamnesisText)
	if text == "" {
		return "", false
	}
	for _, kw := range lossKeywords {
		if strings.Contains(text, kw) {
			return models.GoalWeightLoss, true
		}
	}
	for _, kw := range gainKeywords {
		if strings.Contains(text, kw) {
			return models.GoalWeightGain, true
		}
	}
	for _, kw := range keepKeywords {
		if strings.Contains(text, kw) {
			return models.GoalMaintenance, true
		}
	}
	return "", false
}

// WHO BMI cutoffs as a last-resort heuristic: overweight suggests loss,
// underweight suggests gain.
func fromBMI(in ObjectiveInput) (models.GoalType, bool) {
	if in.BMI == nil {
		return "", false
	}
	switch {
	case *in.BMI >= 25:
		return models.GoalWeightLoss, true
	case *in.BMI < 18.5:
		return models.GoalWeightGain, true
	default:
		return models.GoalMaintenance, true
	}
}
