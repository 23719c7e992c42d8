package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrition-app-server/internal/middleware"
	"nutrition-app-server/internal/models"
	"nutrition-app-server/internal/utils"
)

// AnamnesisHandler handles anamnesis form requests.
type AnamnesisHandler struct {
	DB *gorm.DB
}

// NewAnamnesisHandler creates a new AnamnesisHandler.
func NewAnamnesisHandler(db *gorm.DB) *AnamnesisHandler {
	return &AnamnesisHandler{DB: db}
}

// CreateAnamnesisRequest represents the request body for creating an anamnesis.
type CreateAnamnesisRequest struct {
	PatientID          string   `json:"patientId" binding:"required,uuid"`
	InterviewDate      string   `json:"interviewDate"`
	Objective          string   `json:"objective"`
	ClinicalHistory    string   `json:"clinicalHistory"`
	FamilyHistory      string   `json:"familyHistory"`
	FoodPreferences    string   `json:"foodPreferences"`
	FoodRestrictions   string   `json:"foodRestrictions"`
	Allergies          string   `json:"allergies"`
	Medications        string   `json:"medications"`
	PhysicalActivity   string   `json:"physicalActivity"`
	SleepQuality       string   `json:"sleepQuality"`
	WaterIntakeLiters  *float64 `json:"waterIntakeLiters"`
	AlcoholConsumption string   `json:"alcoholConsumption"`
	SmokingStatus      string   `json:"smokingStatus"`
	AdditionalNotes    string   `json:"additionalNotes"`
}

// CreateAnamnesis creates a new anamnesis form for a patient. The new form
// becomes the active one; previous forms are kept but deactivated.
func (h *AnamnesisHandler) CreateAnamnesis(c *gin.Context) {
	var req CreateAnamnesisRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	nutritionistID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", req.PatientID, models.RolePatient).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	interviewDate := time.Now()
	if req.InterviewDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.InterviewDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
		interviewDate = parsed
	}

	// Deactivate earlier forms; only one anamnesis feeds objective resolution.
	if err := h.DB.Model(&models.Anamnesis{}).
		Where("patient_id = ? AND is_active = ?", req.PatientID, true).
		Update("is_active", false).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate previous anamnesis: "+err.Error())
		return
	}

	anamnesis := models.Anamnesis{
		PatientID:          req.PatientID,
		NutritionistID:     nutritionistID,
		InterviewDate:      interviewDate,
		Objective:          req.Objective,
		ClinicalHistory:    req.ClinicalHistory,
		FamilyHistory:      req.FamilyHistory,
		FoodPreferences:    req.FoodPreferences,
		FoodRestrictions:   req.FoodRestrictions,
		Allergies:          req.Allergies,
		Medications:        req.Medications,
		PhysicalActivity:   req.PhysicalActivity,
		SleepQuality:       req.SleepQuality,
		WaterIntakeLiters:  req.WaterIntakeLiters,
		AlcoholConsumption: req.AlcoholConsumption,
		SmokingStatus:      req.SmokingStatus,
		AdditionalNotes:    req.AdditionalNotes,
		IsActive:           true,
	}

	if err := h.DB.Create(&anamnesis).Error; err != nil {
		utils.InternalServerError(c, "Failed to create anamnesis: "+err.Error())
		return
	}

	utils.Created(c, "Anamnesis created successfully", anamnesis)
}

// GetAnamnesesForPatient returns a patient's anamnesis forms, newest first.
func (h *AnamnesisHandler) GetAnamnesesForPatient(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid patient ID format")
		return
	}

	var anamneses []models.Anamnesis
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("interview_date desc").Find(&anamneses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch anamneses: "+err.Error())
		return
	}

	utils.Success(c, "Anamneses fetched successfully", anamneses)
}

// GetAnamnesisByID returns a single anamnesis form.
func (h *AnamnesisHandler) GetAnamnesisByID(c *gin.Context) {
	anamnesisID := c.Param("id")
	if _, err := uuid.Parse(anamnesisID); err != nil {
		utils.BadRequest(c, "Invalid anamnesis ID format")
		return
	}

	var anamnesis models.Anamnesis
	if err := h.DB.First(&anamnesis, "id = ?", anamnesisID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Anamnesis not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Anamnesis fetched successfully", anamnesis)
}

// UpdateAnamnesisRequest represents the request body for updating an anamnesis.
type UpdateAnamnesisRequest struct {
	Objective        string `json:"objective"`
	ClinicalHistory  string `json:"clinicalHistory"`
	FoodPreferences  string `json:"foodPreferences"`
	FoodRestrictions string `json:"foodRestrictions"`
	Medications      string `json:"medications"`
	PhysicalActivity string `json:"physicalActivity"`
	AdditionalNotes  string `json:"additionalNotes"`
}

// UpdateAnamnesis updates an existing anamnesis form.
func (h *AnamnesisHandler) UpdateAnamnesis(c *gin.Context) {
	anamnesisID := c.Param("id")
	if _, err := uuid.Parse(anamnesisID); err != nil {
		utils.BadRequest(c, "Invalid anamnesis ID format")
		return
	}

	var req UpdateAnamnesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var anamnesis models.Anamnesis
	if err := h.DB.First(&anamnesis, "id = ?", anamnesisID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Anamnesis not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Objective != "" {
		anamnesis.Objective = req.Objective
	}
	if req.ClinicalHistory != "" {
		anamnesis.ClinicalHistory = req.ClinicalHistory
	}
	if req.FoodPreferences != "" {
		anamnesis.FoodPreferences = req.FoodPreferences
	}
	if req.FoodRestrictions != "" {
		anamnesis.FoodRestrictions = req.FoodRestrictions
	}
	if req.Medications != "" {
		anamnesis.Medications = req.Medications
	}
	if req.PhysicalActivity != "" {
		anamnesis.PhysicalActivity = req.PhysicalActivity
	}
	if req.AdditionalNotes != "" {
		anamnesis.AdditionalNotes = req.AdditionalNotes
	}

	if err := h.DB.Save(&anamnesis).Error; err != nil {
		utils.InternalServerError(c, "Failed to update anamnesis: "+err.Error())
		return
	}

	utils.Success(c, "Anamnesis updated successfully", anamnesis)
}
