package anthro

import (
	"nutrition-app-server/internal/models"
)

// SectionPresence tells which logical sections of a record are filled in.
// Skinfolds and bioimpedance form a single section: they are alternative
// acquisition methods for body composition.
type SectionPresence struct {
	Basic          bool `json:"basic"`
	Circumferences bool `json:"circumferences"`
	Skinfolds      bool `json:"skinfolds"`
	Diameters      bool `json:"diameters"`
	Photos         bool `json:"photos"`
}

// Count returns how many sections are present.
func (p SectionPresence) Count() int {
	n := 0
	for _, b := range []bool{p.Basic, p.Circumferences, p.Skinfolds, p.Diameters, p.Photos} {
		if b {
			n++
		}
	}
	return n
}

// Completeness classifies a record by how many sections it fills.
type Completeness string

const (
	RecordEmpty    Completeness = "empty"
	RecordPartial  Completeness = "partial"
	RecordComplete Completeness = "complete"
)

// totalSections is the number of logical sections a record can fill.
// TODO: make configurable if a new measurement section is ever added.
const totalSections = 5

// Classify determines which sections of a record have at least one filled
// value. Absent or malformed groups count as empty; this never fails.
func Classify(r *models.AnthropometricRecord) SectionPresence {
	if r == nil {
		return SectionPresence{}
	}
	return SectionPresence{
		Basic:          r.Weight != nil || r.Height != nil,
		Circumferences: FilledCount(r.Circumferences) > 0,
		Skinfolds:      FilledCount(r.Skinfolds) > 0 || FilledCount(r.Bioimpedance) > 0,
		Diameters:      FilledCount(r.BoneDiameters) > 0,
		Photos:         len(r.Photos) > 0,
	}
}

// SectionCount returns the number of filled sections of a record.
func SectionCount(r *models.AnthropometricRecord) int {
	return Classify(r).Count()
}

// Complete classifies a record as empty, partial or complete.
func Complete(r *models.AnthropometricRecord) Completeness {
	switch SectionCount(r) {
	case 0:
		return RecordEmpty
	case totalSections:
		return RecordComplete
	default:
		return RecordPartial
	}
}

// FilledCount returns how many values in a measurement group are filled in.
func FilledCount(g models.MeasurementGroup) int {
	n := 0
	for _, v := range g {
		if valuePresent(v) {
			n++
		}
	}
	return n
}
