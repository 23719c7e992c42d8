package anthro

import (
	"math"

	"nutrition-app-server/internal/models"
)

// IndicatorStatus is the directional signal of a clinical comparison.
type IndicatorStatus string

const (
	StatusImproved IndicatorStatus = "improved"
	StatusWorsened IndicatorStatus = "worsened"
	StatusStable   IndicatorStatus = "stable"
)

// Fixed clinical significance thresholds. Changes inside these bands are
// considered measurement noise and do not move the score.
const (
	weightThreshold = 0.2 // kg
	bmiThreshold    = 0.1 // BMI points
	fatThreshold    = 0.2 // body fat percentage points
	stableBand      = 0.5 // kg, maintenance stability band
)

// ClinicalIndicator is the improvement/decline signal derived from comparing
// two records under a given objective. Deltas are current minus previous,
// nil when either side is missing, rounded to 2 decimals.
type ClinicalIndicator struct {
	Status      IndicatorStatus `json:"status"`
	Score       int             `json:"score"`
	Reasons     []string        `json:"reasons"`
	WeightDelta *float64        `json:"weightDelta"`
	BMIDelta    *float64        `json:"bmiDelta"`
	FatDelta    *float64        `json:"fatDelta"`
}

// BMI computes body mass index (kg/m²) for a record, nil when weight or
// height is missing or height is zero.
func BMI(r *models.AnthropometricRecord) *float64 {
	if r == nil || r.Weight == nil || r.Height == nil || *r.Height <= 0 {
		return nil
	}
	hm := *r.Height / 100
	bmi := *r.Weight / (hm * hm)
	return &bmi
}

// BodyFat extracts the body fat percentage of a record: the computed
// results value when present, otherwise the bioimpedance reading. The
// "percentGordura" key is what bioimpedance scales used by Brazilian
// practices report.
func BodyFat(r *models.AnthropometricRecord) *float64 {
	if r == nil {
		return nil
	}
	if v, ok := numericValue(r.Results["bodyFatPercent"]); ok {
		return &v
	}
	if v, ok := numericValue(r.Bioimpedance["percentGordura"]); ok {
		return &v
	}
	return nil
}

// Score compares two records under the patient's objective and produces a
// directional indicator. Returns nil when either record is absent. Missing
// measurements leave the corresponding delta nil and skip its rules; with no
// triggered rules the result is stable.
func Score(current, previous *models.AnthropometricRecord, objective models.GoalType) *ClinicalIndicator {
	if current == nil || previous == nil {
		return nil
	}

	weightDelta := ptrDelta(current.Weight, previous.Weight)
	bmiDelta := ptrDelta(BMI(current), BMI(previous))
	fatDelta := ptrDelta(BodyFat(current), BodyFat(previous))

	score := 0
	var reasons []string

	switch objective {
	case models.GoalWeightLoss:
		if weightDelta != nil {
			if *weightDelta < -weightThreshold {
				score += 2
				reasons = append(reasons, "Weight reduction aligned with goal")
			} else if *weightDelta > weightThreshold {
				score -= 2
			}
		}
		if bmiDelta != nil {
			if *bmiDelta < -bmiThreshold {
				score++
			} else if *bmiDelta > bmiThreshold {
				score--
			}
		}
		if fatDelta != nil {
			if *fatDelta < -fatThreshold {
				score += 2
				reasons = append(reasons, "Body fat decreasing")
			} else if *fatDelta > fatThreshold {
				score -= 2
			}
		}

	case models.GoalWeightGain:
		if weightDelta != nil {
			if *weightDelta > weightThreshold {
				score += 2
			} else if *weightDelta < -weightThreshold {
				score -= 2
			}
		}
		if fatDelta != nil {
			if *fatDelta <= fatThreshold {
				score++
			} else {
				score--
			}
		}
		if bmiDelta != nil {
			if *bmiDelta > bmiThreshold {
				score++
			} else if *bmiDelta < -bmiThreshold {
				score--
			}
		}

	case models.GoalMaintenance:
		if weightDelta != nil {
			if math.Abs(*weightDelta) <= stableBand {
				score++
				reasons = append(reasons, "Stable weight")
			} else {
				score--
			}
		}
		if fatDelta != nil {
			if *fatDelta < -fatThreshold {
				score += 2
			} else if *fatDelta > fatThreshold {
				score--
			}
		}
	}

	status := StatusStable
	if score >= 2 {
		status = StatusImproved
	} else if score <= -2 {
		status = StatusWorsened
	}

	return &ClinicalIndicator{
		Status:      status,
		Score:       score,
		Reasons:     reasons,
		WeightDelta: roundPtr(weightDelta),
		BMIDelta:    roundPtr(bmiDelta),
		FatDelta:    roundPtr(fatDelta),
	}
}

// ptrDelta returns current minus previous, nil when either side is nil.
func ptrDelta(current, previous *float64) *float64 {
	if current == nil || previous == nil {
		return nil
	}
	d := *current - *previous
	return &d
}

func roundPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return round2Ptr(*f)
}
