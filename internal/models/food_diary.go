package models

import (
	"time"
)

// MealType represents which meal of the day an entry belongs to
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealLog represents one logged meal in a patient's food diary
type MealLog struct {
	BaseModel
	PatientID string    `gorm:"size:36;index;not null" json:"patientId"`
	MealType  MealType  `gorm:"size:20;not null" json:"mealType"`
	EatenAt   time.Time `gorm:"index" json:"eatenAt"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Foods   []MealFood `gorm:"foreignKey:MealLogID" json:"foods,omitempty"`
	Patient User       `gorm:"foreignKey:PatientID" json:"-"`
}

// MealFood is one food item inside a logged meal. Nutrient values are a
// snapshot taken at logging time so diary history survives upstream food
// database changes.
type MealFood struct {
	BaseModel
	MealLogID string  `gorm:"size:36;index;not null" json:"mealLogId"`
	FoodCode  string  `gorm:"size:50" json:"foodCode,omitempty"` // Upstream food database code, if looked up
	Name      string  `gorm:"size:255;not null" json:"name"`
	Quantity  float64 `json:"quantity"`                     // In the given unit
	Unit      string  `gorm:"size:20" json:"unit"`          // g, ml, unit...
	Calories  float64 `json:"calories"`                     // kcal for the logged quantity
	Protein   float64 `json:"protein"`                      // g
	Carbs     float64 `json:"carbs"`                        // g
	Fat       float64 `json:"fat"`                          // g
}
