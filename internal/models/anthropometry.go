package models

import (
	"time"
)

// MeasurementGroup is an open mapping of measurement-site name to value.
// The key set is protocol-specific and intentionally not enumerated in the
// schema, so new measurement sites never require a migration. Values arrive
// from clients as JSON numbers or strings; absence of a key means
// "not measured", not zero.
type MeasurementGroup map[string]any

// PhotoList is an ordered sequence of photo references.
type PhotoList []string

// ResultsBag is a free-form bag of computed results attached to a record.
// Known keys include "bodyFatPercent", "somatotype" and an "audit" sub-object
// carrying legacy revision metadata.
type ResultsBag map[string]any

// AnthropometricRecord is one clinical measurement snapshot for a patient.
//
// Records are append-only: an edit never mutates an existing row. Instead a
// new row is inserted with SupersedesRecordID pointing at the row it revises,
// and the referenced row is kept untouched as the audit trail.
type AnthropometricRecord struct {
	BaseModel
	PatientID      string    `gorm:"size:36;index;not null" json:"patientId"`
	NutritionistID string    `gorm:"size:36;index" json:"nutritionistId"`
	RecordDate     time.Time `json:"recordDate"`
	RevisionNumber int       `gorm:"default:1" json:"revisionNumber"`

	Weight *float64 `json:"weight,omitempty"` // kg
	Height *float64 `json:"height,omitempty"` // cm

	Circumferences MeasurementGroup `gorm:"serializer:json" json:"circumferences,omitempty"`
	Skinfolds      MeasurementGroup `gorm:"serializer:json" json:"skinfolds,omitempty"`
	BoneDiameters  MeasurementGroup `gorm:"serializer:json" json:"boneDiameters,omitempty"`
	Bioimpedance   MeasurementGroup `gorm:"serializer:json" json:"bioimpedance,omitempty"`

	Photos  PhotoList  `gorm:"serializer:json" json:"photos,omitempty"`
	Results ResultsBag `gorm:"serializer:json" json:"results,omitempty"`

	// Back-reference to the record this one revises. Set once at creation,
	// immutable thereafter.
	SupersedesRecordID *string `gorm:"size:36;index" json:"supersedesRecordId,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}

// IsRevision reports whether this record was created as an edit of another.
func (r *AnthropometricRecord) IsRevision() bool {
	return r.SupersedesRecordID != nil && *r.SupersedesRecordID != ""
}
