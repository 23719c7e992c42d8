package anthro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nutrition-app-server/internal/models"
)

func fptr(f float64) *float64 { return &f }

func fullRecord() *models.AnthropometricRecord {
	return &models.AnthropometricRecord{
		Weight:         fptr(80),
		Height:         fptr(180),
		Circumferences: models.MeasurementGroup{"waist": 90.0},
		Skinfolds:      models.MeasurementGroup{"triceps": 12.5},
		BoneDiameters:  models.MeasurementGroup{"wrist": 6.1},
		Photos:         models.PhotoList{"front.jpg"},
	}
}

func TestClassify_AllSectionsFilled(t *testing.T) {
	p := Classify(fullRecord())

	assert.True(t, p.Basic)
	assert.True(t, p.Circumferences)
	assert.True(t, p.Skinfolds)
	assert.True(t, p.Diameters)
	assert.True(t, p.Photos)
	assert.Equal(t, 5, p.Count())
	assert.Equal(t, RecordComplete, Complete(fullRecord()))
}

func TestClassify_EmptyRecord(t *testing.T) {
	r := &models.AnthropometricRecord{}

	assert.Equal(t, 0, SectionCount(r))
	assert.Equal(t, RecordEmpty, Complete(r))
}

func TestClassify_NilRecord(t *testing.T) {
	assert.Equal(t, SectionPresence{}, Classify(nil))
	assert.Equal(t, RecordEmpty, Complete(nil))
}

func TestClassify_PartialRecord(t *testing.T) {
	r := &models.AnthropometricRecord{Weight: fptr(72.4)}

	p := Classify(r)
	assert.True(t, p.Basic)
	assert.Equal(t, 1, p.Count())
	assert.Equal(t, RecordPartial, Complete(r))
}

func TestClassify_BioimpedanceCountsAsSkinfoldSection(t *testing.T) {
	r := &models.AnthropometricRecord{
		Bioimpedance: models.MeasurementGroup{"percentGordura": 22.1},
	}

	p := Classify(r)
	assert.True(t, p.Skinfolds)
	assert.Equal(t, 1, p.Count())
}

func TestClassify_EmptyStringAndNilValuesNotPresent(t *testing.T) {
	r := &models.AnthropometricRecord{
		Circumferences: models.MeasurementGroup{"waist": "", "hip": nil},
	}

	assert.False(t, Classify(r).Circumferences)
	assert.Equal(t, 0, FilledCount(r.Circumferences))
}

func TestClassify_Idempotent(t *testing.T) {
	r := fullRecord()

	first := Classify(r)
	second := Classify(r)
	assert.Equal(t, first, second)
}
