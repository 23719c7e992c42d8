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

// LabResultHandler handles laboratory exam requests.
type LabResultHandler struct {
	DB *gorm.DB
}

// NewLabResultHandler creates a new LabResultHandler.
func NewLabResultHandler(db *gorm.DB) *LabResultHandler {
	return &LabResultHandler{DB: db}
}

// CreateLabResultRequest represents the request body for creating a lab result.
type CreateLabResultRequest struct {
	PatientID   string                  `json:"patientId" binding:"required,uuid"`
	PanelName   string                  `json:"panelName" binding:"required"`
	CollectedAt string                  `json:"collectedAt"`
	Markers     models.MeasurementGroup `json:"markers" binding:"required"`
	Laboratory  string                  `json:"laboratory"`
	Notes       string                  `json:"notes"`
}

// CreateLabResult records a new lab panel for a patient.
func (h *LabResultHandler) CreateLabResult(c *gin.Context) {
	var req CreateLabResultRequest
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

	collectedAt := time.Now()
	if req.CollectedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.CollectedAt)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
		collectedAt = parsed
	}

	result := models.LabResult{
		PatientID:      req.PatientID,
		NutritionistID: nutritionistID,
		PanelName:      req.PanelName,
		CollectedAt:    collectedAt,
		Markers:        req.Markers,
		Laboratory:     req.Laboratory,
		Notes:          req.Notes,
	}

	if err := h.DB.Create(&result).Error; err != nil {
		utils.InternalServerError(c, "Failed to create lab result: "+err.Error())
		return
	}

	utils.Created(c, "Lab result created successfully", result)
}

// GetLabResultsForPatient returns a patient's lab results, newest first.
func (h *LabResultHandler) GetLabResultsForPatient(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid patient ID format")
		return
	}

	var results []models.LabResult
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("collected_at desc").Find(&results).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch lab results: "+err.Error())
		return
	}

	utils.Success(c, "Lab results fetched successfully", results)
}

// DeleteLabResult removes a lab result.
func (h *LabResultHandler) DeleteLabResult(c *gin.Context) {
	resultID := c.Param("id")
	if _, err := uuid.Parse(resultID); err != nil {
		utils.BadRequest(c, "Invalid lab result ID format")
		return
	}

	result := h.DB.Delete(&models.LabResult{}, "id = ?", resultID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete lab result: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Lab result not found")
		return
	}

	utils.Success(c, "Lab result deleted successfully", nil)
}
