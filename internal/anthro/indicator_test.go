package anthro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-app-server/internal/models"
)

func weighted(weight, height float64) *models.AnthropometricRecord {
	return &models.AnthropometricRecord{Weight: &weight, Height: &height}
}

func TestScore_WeightLossImproved(t *testing.T) {
	current := weighted(80, 180)
	previous := weighted(82, 180)

	ind := Score(current, previous, models.GoalWeightLoss)

	require.NotNil(t, ind)
	require.NotNil(t, ind.WeightDelta)
	assert.InDelta(t, -2, *ind.WeightDelta, 1e-9)
	require.NotNil(t, ind.BMIDelta)
	assert.InDelta(t, -0.62, *ind.BMIDelta, 1e-9) // rounded to 2 decimals
	assert.Equal(t, StatusImproved, ind.Status)
	assert.Contains(t, ind.Reasons, "Weight reduction aligned with goal")
	assert.Nil(t, ind.FatDelta)
}

func TestScore_WeightLossWorsened(t *testing.T) {
	current := weighted(84, 180)
	previous := weighted(82, 180)

	ind := Score(current, previous, models.GoalWeightLoss)

	require.NotNil(t, ind)
	assert.Equal(t, StatusWorsened, ind.Status)
}

func TestScore_WeightGainImproved(t *testing.T) {
	current := weighted(72, 180)
	previous := weighted(70, 180)

	ind := Score(current, previous, models.GoalWeightGain)

	require.NotNil(t, ind)
	// +2 for weight gain, +1 for BMI increase.
	assert.Equal(t, 3, ind.Score)
	assert.Equal(t, StatusImproved, ind.Status)
}

func TestScore_WeightGainFatRuleSkippedWhenAbsent(t *testing.T) {
	current := weighted(70.1, 180)
	previous := weighted(70, 180)

	ind := Score(current, previous, models.GoalWeightGain)

	require.NotNil(t, ind)
	// Within all thresholds and no body fat data: nothing fires.
	assert.Equal(t, 0, ind.Score)
	assert.Equal(t, StatusStable, ind.Status)
}

func TestScore_MaintenanceStableBand(t *testing.T) {
	current := weighted(80.3, 180)
	previous := weighted(80, 180)

	ind := Score(current, previous, models.GoalMaintenance)

	require.NotNil(t, ind)
	// 0.3 kg sits inside the ±0.5 band: weight contributes +1 and on its
	// own can never push the status to worsened.
	assert.Equal(t, 1, ind.Score)
	assert.Equal(t, StatusStable, ind.Status)
	assert.Contains(t, ind.Reasons, "Stable weight")
	assert.Nil(t, ind.FatDelta)
}

func TestScore_MaintenanceOutsideBand(t *testing.T) {
	current := weighted(83, 180)
	previous := weighted(80, 180)

	ind := Score(current, previous, models.GoalMaintenance)

	require.NotNil(t, ind)
	assert.Equal(t, -1, ind.Score)
	assert.Equal(t, StatusStable, ind.Status)
}

func TestScore_BodyFatFromResults(t *testing.T) {
	current := weighted(80, 180)
	current.Results = models.ResultsBag{"bodyFatPercent": 20.0}
	previous := weighted(80.1, 180)
	previous.Results = models.ResultsBag{"bodyFatPercent": 22.0}

	ind := Score(current, previous, models.GoalWeightLoss)

	require.NotNil(t, ind)
	require.NotNil(t, ind.FatDelta)
	assert.InDelta(t, -2, *ind.FatDelta, 1e-9)
	assert.Contains(t, ind.Reasons, "Body fat decreasing")
}

func TestScore_BodyFatFallsBackToBioimpedance(t *testing.T) {
	r := weighted(80, 180)
	r.Bioimpedance = models.MeasurementGroup{"percentGordura": 21.5}

	fat := BodyFat(r)
	require.NotNil(t, fat)
	assert.InDelta(t, 21.5, *fat, 1e-9)
}

func TestScore_NilRecordReturnsNil(t *testing.T) {
	assert.Nil(t, Score(nil, weighted(80, 180), models.GoalWeightLoss))
	assert.Nil(t, Score(weighted(80, 180), nil, models.GoalWeightLoss))
}

func TestScore_IdenticalRecordsAreStable(t *testing.T) {
	objectives := []models.GoalType{models.GoalWeightLoss, models.GoalWeightGain, models.GoalMaintenance}
	for _, objective := range objectives {
		ind := Score(weighted(80, 180), weighted(80, 180), objective)
		require.NotNil(t, ind, "objective %s", objective)
		assert.Equal(t, StatusStable, ind.Status, "objective %s", objective)
	}
}

func TestScore_StatusAlwaysBounded(t *testing.T) {
	pairs := []struct {
		current, previous *models.AnthropometricRecord
	}{
		{weighted(60, 170), weighted(95, 170)},
		{weighted(95, 170), weighted(60, 170)},
		{&models.AnthropometricRecord{}, &models.AnthropometricRecord{}},
		{weighted(80, 0), weighted(80, 0)}, // degenerate height
	}
	objectives := []models.GoalType{models.GoalWeightLoss, models.GoalWeightGain, models.GoalMaintenance}

	for _, pair := range pairs {
		for _, objective := range objectives {
			ind := Score(pair.current, pair.previous, objective)
			require.NotNil(t, ind)
			assert.Contains(t,
				[]IndicatorStatus{StatusImproved, StatusWorsened, StatusStable},
				ind.Status)
		}
	}
}

func TestBMI(t *testing.T) {
	bmi := BMI(weighted(80, 180))
	require.NotNil(t, bmi)
	assert.InDelta(t, 24.69, *bmi, 0.01)

	assert.Nil(t, BMI(&models.AnthropometricRecord{Weight: fptr(80)}))
	assert.Nil(t, BMI(weighted(80, 0)))
	assert.Nil(t, BMI(nil))
}
