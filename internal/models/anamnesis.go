package models

import (
	"time"
)

// Anamnesis represents a patient's clinical history interview as filled in by
// the nutritionist. The free-text objective field also feeds objective
// resolution when the patient has no active goal.
type Anamnesis struct {
	BaseModel
	PatientID      string    `gorm:"size:36;index;not null" json:"patientId"`
	NutritionistID string    `gorm:"size:36;index" json:"nutritionistId"`
	InterviewDate  time.Time `json:"interviewDate"`

	Objective           string `gorm:"type:text" json:"objective,omitempty"` // Patient's stated goal, free text
	ClinicalHistory     string `gorm:"type:text" json:"clinicalHistory,omitempty"`
	FamilyHistory       string `gorm:"type:text" json:"familyHistory,omitempty"`
	FoodPreferences     string `gorm:"type:text" json:"foodPreferences,omitempty"`
	FoodRestrictions    string `gorm:"type:text" json:"foodRestrictions,omitempty"`
	Allergies           string `gorm:"type:text" json:"allergies,omitempty"`
	Medications         string `gorm:"type:text" json:"medications,omitempty"`
	PhysicalActivity    string `gorm:"type:text" json:"physicalActivity,omitempty"`
	SleepQuality        string `gorm:"size:50" json:"sleepQuality,omitempty"`
	WaterIntakeLiters   *float64 `json:"waterIntakeLiters,omitempty"`
	AlcoholConsumption  string `gorm:"size:50" json:"alcoholConsumption,omitempty"`
	SmokingStatus       string `gorm:"size:50" json:"smokingStatus,omitempty"`
	GastrointestinalFn  string `gorm:"size:100" json:"gastrointestinalFunction,omitempty"`
	AdditionalNotes     string `gorm:"type:text" json:"additionalNotes,omitempty"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
