package anthro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-app-server/internal/models"
)

func comparableRecords() (*models.AnthropometricRecord, *models.AnthropometricRecord) {
	current := weighted(80, 180)
	current.ID = "cur"
	current.RecordDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	current.Circumferences = models.MeasurementGroup{"waist": 88.0}
	current.Photos = models.PhotoList{"front.jpg", "side.jpg"}

	previous := weighted(82, 180)
	previous.ID = "prev"
	previous.RecordDate = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	previous.Circumferences = models.MeasurementGroup{"waist": 90.0, "hip": 100.0}
	previous.Photos = models.PhotoList{"front.jpg"}

	return current, previous
}

func TestBuildComparison_NilRecordReturnsNil(t *testing.T) {
	_, previous := comparableRecords()

	assert.Nil(t, BuildComparison(nil, previous))
	assert.Nil(t, BuildComparison(previous, nil))
	assert.Nil(t, BuildComparisonWithIndicator(nil, previous, models.GoalWeightLoss))
}

func TestBuildComparison_ScalarDeltas(t *testing.T) {
	current, previous := comparableRecords()

	report := BuildComparison(current, previous)

	require.NotNil(t, report)
	require.NotNil(t, report.WeightDelta)
	assert.InDelta(t, -2, *report.WeightDelta, 1e-9)
	require.NotNil(t, report.HeightDelta)
	assert.InDelta(t, 0, *report.HeightDelta, 1e-9)
	require.NotNil(t, report.BMIDelta)
	assert.InDelta(t, -0.62, *report.BMIDelta, 1e-9)
	assert.Equal(t, 1, report.PhotoCountDelta)
	assert.Nil(t, report.Indicator)
}

func TestBuildComparison_GroupSummaries(t *testing.T) {
	current, previous := comparableRecords()

	report := BuildComparison(current, previous)

	require.NotNil(t, report)
	require.Len(t, report.Groups, 4)

	circ := report.Groups[0]
	assert.Equal(t, "circumferences", circ.Group)
	assert.Equal(t, 1, circ.CurrentFilled)
	assert.Equal(t, 2, circ.PreviousFilled)
	// waist changed and hip disappeared.
	assert.Len(t, circ.Deltas, 2)
}

func TestBuildComparisonWithIndicator(t *testing.T) {
	current, previous := comparableRecords()

	report := BuildComparisonWithIndicator(current, previous, models.GoalWeightLoss)

	require.NotNil(t, report)
	require.NotNil(t, report.Indicator)
	assert.Equal(t, StatusImproved, report.Indicator.Status)
}

func TestExportLines_FixedLayoutAndOrdering(t *testing.T) {
	current, previous := comparableRecords()
	report := BuildComparisonWithIndicator(current, previous, models.GoalWeightLoss)

	lines := report.ExportLines()

	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "Previous record", lines[0].Label)
	assert.Equal(t, "2026-01-10", lines[0].Value)
	assert.Equal(t, "Current record", lines[1].Label)
	assert.Equal(t, "Weight change (kg)", lines[2].Label)
	assert.Equal(t, "-2.00", lines[2].Value)

	last := lines[len(lines)-1]
	assert.Equal(t, "Notes", last.Label)
	assert.Contains(t, last.Value, "Weight reduction aligned with goal")
}

func TestExportLines_MissingDeltaRendersDash(t *testing.T) {
	current := &models.AnthropometricRecord{}
	previous := &models.AnthropometricRecord{}
	report := BuildComparison(current, previous)

	lines := report.ExportLines()

	assert.Equal(t, "-", lines[2].Value) // Weight change unavailable
}

func TestSuggestedFilename(t *testing.T) {
	current, previous := comparableRecords()
	report := BuildComparison(current, previous)

	assert.Equal(t, "anthropometry-comparison-2026-01-10-vs-2026-03-15.pdf", report.SuggestedFilename())
}
