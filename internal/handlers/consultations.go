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

// ConsultationHandler handles consultation scheduling requests.
type ConsultationHandler struct {
	DB *gorm.DB
}

// NewConsultationHandler creates a new ConsultationHandler.
func NewConsultationHandler(db *gorm.DB) *ConsultationHandler {
	return &ConsultationHandler{DB: db}
}

// CreateConsultationRequest represents the request body for scheduling.
type CreateConsultationRequest struct {
	PatientID      string `json:"patientId" binding:"required,uuid"`
	NutritionistID string `json:"nutritionistId" binding:"required,uuid"`
	StartTime      string `json:"startTime" binding:"required"`
	EndTime        string `json:"endTime" binding:"required"`
	Mode           string `json:"mode" binding:"omitempty,oneof=in_person remote"`
	Reason         string `json:"reason"`
	IsFollowUp     bool   `json:"isFollowUp"`
}

// CreateConsultation schedules a consultation between a patient and a
// nutritionist.
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req CreateConsultationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		utils.BadRequest(c, "Invalid startTime format. Please use ISO 8601 format")
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		utils.BadRequest(c, "Invalid endTime format. Please use ISO 8601 format")
		return
	}
	if !endTime.After(startTime) {
		utils.BadRequest(c, "endTime must be after startTime")
		return
	}

	var nutritionist models.User
	if err := h.DB.Where("id = ? AND role = ?", req.NutritionistID, models.RoleNutritionist).
		First(&nutritionist).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Nutritionist not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Reject overlapping consultations for the same nutritionist.
	var overlapping int64
	if err := h.DB.Model(&models.Consultation{}).
		Where("nutritionist_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			req.NutritionistID,
			[]models.ConsultationStatus{models.ConsultationPending, models.ConsultationConfirmed},
			endTime, startTime).
		Count(&overlapping).Error; err != nil {
		utils.InternalServerError(c, "Database error checking availability: "+err.Error())
		return
	}
	if overlapping > 0 {
		utils.BadRequest(c, "The nutritionist is not available in that time slot")
		return
	}

	mode := models.ConsultationInPerson
	if req.Mode != "" {
		mode = models.ConsultationMode(req.Mode)
	}

	consultation := models.Consultation{
		PatientID:      req.PatientID,
		NutritionistID: req.NutritionistID,
		StartTime:      startTime,
		EndTime:        endTime,
		Status:         models.ConsultationPending,
		Mode:           mode,
		Reason:         req.Reason,
		IsFollowUp:     req.IsFollowUp,
	}

	if err := h.DB.Create(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to create consultation: "+err.Error())
		return
	}

	utils.Created(c, "Consultation scheduled successfully", consultation)
}

// GetConsultationsForUser returns consultations the authenticated user takes
// part in, either as patient or nutritionist.
func (h *ConsultationHandler) GetConsultationsForUser(c *gin.Context) {
	userID, idOK := middleware.GetUserIDFromContext(c)
	role, roleOK := middleware.GetUserRoleFromContext(c)
	if !idOK || !roleOK {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Order("start_time desc")
	if role == models.RoleNutritionist {
		query = query.Where("nutritionist_id = ?", userID)
	} else {
		query = query.Where("patient_id = ?", userID)
	}

	var consultations []models.Consultation
	if err := query.Find(&consultations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch consultations: "+err.Error())
		return
	}

	utils.Success(c, "Consultations fetched successfully", consultations)
}

// UpdateConsultationStatusRequest represents a status change request.
type UpdateConsultationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// UpdateConsultationStatus transitions a consultation's status. Patients may
// only cancel; nutritionists and admins may set any status.
func (h *ConsultationHandler) UpdateConsultationStatus(c *gin.Context) {
	consultationID := c.Param("id")
	if _, err := uuid.Parse(consultationID); err != nil {
		utils.BadRequest(c, "Invalid consultation ID format")
		return
	}

	var req UpdateConsultationStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	var consultation models.Consultation
	if err := h.DB.First(&consultation, "id = ?", consultationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	newStatus := models.ConsultationStatus(req.Status)
	if role == models.RolePatient {
		if consultation.PatientID != userID {
			utils.Forbidden(c, "You are not part of this consultation")
			return
		}
		if newStatus != models.ConsultationCancelled {
			utils.Forbidden(c, "Patients may only cancel consultations")
			return
		}
	}

	consultation.Status = newStatus
	if err := h.DB.Save(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to update consultation: "+err.Error())
		return
	}

	utils.Success(c, "Consultation updated successfully", consultation)
}

// RescheduleConsultationRequest represents a reschedule request.
type RescheduleConsultationRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// RescheduleConsultation moves a consultation to a new time slot.
func (h *ConsultationHandler) RescheduleConsultation(c *gin.Context) {
	consultationID := c.Param("id")
	if _, err := uuid.Parse(consultationID); err != nil {
		utils.BadRequest(c, "Invalid consultation ID format")
		return
	}

	var req RescheduleConsultationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		utils.BadRequest(c, "Invalid startTime format. Please use ISO 8601 format")
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		utils.BadRequest(c, "Invalid endTime format. Please use ISO 8601 format")
		return
	}
	if !endTime.After(startTime) {
		utils.BadRequest(c, "endTime must be after startTime")
		return
	}

	var consultation models.Consultation
	if err := h.DB.First(&consultation, "id = ?", consultationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	consultation.StartTime = startTime
	consultation.EndTime = endTime
	consultation.Status = models.ConsultationRescheduled
	if err := h.DB.Save(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to reschedule consultation: "+err.Error())
		return
	}

	utils.Success(c, "Consultation rescheduled successfully", consultation)
}
