package models

import (
	"time"
)

// LabResult represents a laboratory exam panel for a patient. Like the
// anthropometric measurement groups, the marker set is an open mapping so any
// panel (lipidogram, glycemia, thyroid...) fits without schema changes.
type LabResult struct {
	BaseModel
	PatientID      string           `gorm:"size:36;index;not null" json:"patientId"`
	NutritionistID string           `gorm:"size:36;index" json:"nutritionistId"`
	PanelName      string           `gorm:"size:100;not null" json:"panelName"`
	CollectedAt    time.Time        `json:"collectedAt"`
	Markers        MeasurementGroup `gorm:"serializer:json" json:"markers"` // Marker name -> value
	Laboratory     string           `gorm:"size:255" json:"laboratory,omitempty"`
	Notes          string           `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
