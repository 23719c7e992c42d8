package models

import (
	"time"
)

// GoalType represents the clinical objective behind a goal
type GoalType string

const (
	GoalWeightLoss  GoalType = "weight_loss"
	GoalWeightGain  GoalType = "weight_gain"
	GoalMaintenance GoalType = "maintenance"
)

// GoalStatus represents the lifecycle of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusAchieved  GoalStatus = "achieved"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

// Goal represents a patient's clinical target agreed with the nutritionist.
// The active goal's type drives how anthropometric changes are interpreted
// (a weight drop is progress under weight_loss, a setback under weight_gain).
type Goal struct {
	BaseModel
	PatientID      string     `gorm:"size:36;index;not null" json:"patientId"`
	NutritionistID string     `gorm:"size:36;index" json:"nutritionistId"`
	Type           GoalType   `gorm:"size:20;not null" json:"type"`
	Description    string     `gorm:"size:255" json:"description,omitempty"`
	TargetWeight   *float64   `json:"targetWeight,omitempty"` // kg
	TargetDate     *time.Time `json:"targetDate,omitempty"`
	Status         GoalStatus `gorm:"size:20;default:'active'" json:"status"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
