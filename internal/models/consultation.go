package models

import (
	"time"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	ConsultationPending     ConsultationStatus = "pending"
	ConsultationConfirmed   ConsultationStatus = "confirmed"
	ConsultationCancelled   ConsultationStatus = "cancelled"
	ConsultationCompleted   ConsultationStatus = "completed"
	ConsultationRescheduled ConsultationStatus = "rescheduled"
)

// ConsultationMode represents how the consultation happens
type ConsultationMode string

const (
	ConsultationInPerson ConsultationMode = "in_person"
	ConsultationRemote   ConsultationMode = "remote"
)

// Consultation represents a scheduled session between a patient and their
// nutritionist (first visit, follow-up or diet review).
type Consultation struct {
	BaseModel
	PatientID      string             `gorm:"size:36;index" json:"patientId"`
	NutritionistID string             `gorm:"size:36;index" json:"nutritionistId"`
	StartTime      time.Time          `json:"startTime"`
	EndTime        time.Time          `json:"endTime"`
	Status         ConsultationStatus `gorm:"size:20;default:'pending'" json:"status"`
	Mode           ConsultationMode   `gorm:"size:20;default:'in_person'" json:"mode"`
	Reason         string             `gorm:"size:255" json:"reason"`
	Notes          string             `gorm:"type:text" json:"notes"`
	IsFollowUp     bool               `gorm:"default:false" json:"isFollowUp"`

	// Relations
	Patient      User `gorm:"foreignKey:PatientID" json:"-"`
	Nutritionist User `gorm:"foreignKey:NutritionistID" json:"-"`
}
