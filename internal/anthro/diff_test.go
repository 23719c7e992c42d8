package anthro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-app-server/internal/models"
)

func TestDiffGroup_PresenceChangeWithoutDelta(t *testing.T) {
	current := models.MeasurementGroup{"waist": 90.0}
	previous := models.MeasurementGroup{"waist": 90.0, "hip": 100.0}

	deltas := DiffGroup(current, previous)

	// waist is unchanged and excluded; hip disappeared so it is reported
	// with no numeric delta.
	require.Len(t, deltas, 1)
	assert.Equal(t, "hip", deltas[0].Key)
	assert.True(t, deltas[0].Changed)
	assert.Nil(t, deltas[0].Delta)
}

func TestDiffGroup_NumericDelta(t *testing.T) {
	current := models.MeasurementGroup{"waist": 88.5}
	previous := models.MeasurementGroup{"waist": 90.0}

	deltas := DiffGroup(current, previous)

	require.Len(t, deltas, 1)
	require.NotNil(t, deltas[0].Delta)
	assert.InDelta(t, -1.5, *deltas[0].Delta, 1e-9)
}

func TestDiffGroup_StringValuesParseAsNumbers(t *testing.T) {
	current := models.MeasurementGroup{"waist": "88.5"}
	previous := models.MeasurementGroup{"waist": 90.0}

	deltas := DiffGroup(current, previous)

	require.Len(t, deltas, 1)
	require.NotNil(t, deltas[0].Delta)
	assert.InDelta(t, -1.5, *deltas[0].Delta, 1e-9)
}

func TestDiffGroup_NonNumericStringYieldsNilDelta(t *testing.T) {
	current := models.MeasurementGroup{"waist": "n/a"}
	previous := models.MeasurementGroup{"waist": 90.0}

	deltas := DiffGroup(current, previous)

	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Changed)
	assert.Nil(t, deltas[0].Delta)
}

func TestDiffGroup_DeltaRoundedToTwoDecimals(t *testing.T) {
	current := models.MeasurementGroup{"triceps": 12.345}
	previous := models.MeasurementGroup{"triceps": 12.0}

	deltas := DiffGroup(current, previous)

	require.Len(t, deltas, 1)
	require.NotNil(t, deltas[0].Delta)
	assert.Equal(t, 0.35, *deltas[0].Delta) // half rounds away from zero
}

func TestDiffGroup_UnchangedEntriesExcluded(t *testing.T) {
	g := models.MeasurementGroup{"waist": 90.0, "hip": 100.0}

	assert.Empty(t, DiffGroup(g, g))
}

func TestDiffGroup_EmptyStringTreatedAsAbsent(t *testing.T) {
	current := models.MeasurementGroup{"waist": ""}
	previous := models.MeasurementGroup{"waist": ""}

	// Both absent: presence matches and strings match, nothing to report.
	assert.Empty(t, DiffGroup(current, previous))
}

func TestDiffGroup_SymmetricChangeDetection(t *testing.T) {
	g1 := models.MeasurementGroup{"waist": 88.0, "hip": 100.0, "neck": 38.0}
	g2 := models.MeasurementGroup{"waist": 90.0, "thigh": 55.0, "neck": 38.0}

	forward := DiffGroup(g1, g2)
	backward := DiffGroup(g2, g1)

	forwardKeys := changedKeys(forward)
	backwardKeys := changedKeys(backward)
	assert.ElementsMatch(t, forwardKeys, backwardKeys)

	// Numeric deltas flip sign.
	fw := deltaByKey(forward, "waist")
	bw := deltaByKey(backward, "waist")
	require.NotNil(t, fw)
	require.NotNil(t, bw)
	assert.InDelta(t, -*bw, *fw, 1e-9)
}

func TestDiffGroup_Idempotent(t *testing.T) {
	g1 := models.MeasurementGroup{"waist": 88.0, "hip": 100.0}
	g2 := models.MeasurementGroup{"waist": 90.0}

	assert.Equal(t, DiffGroup(g1, g2), DiffGroup(g1, g2))
}

func changedKeys(deltas []FieldDelta) []string {
	keys := make([]string, 0, len(deltas))
	for _, d := range deltas {
		keys = append(keys, d.Key)
	}
	return keys
}

func deltaByKey(deltas []FieldDelta, key string) *float64 {
	for _, d := range deltas {
		if d.Key == key {
			return d.Delta
		}
	}
	return nil
}
