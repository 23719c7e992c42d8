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

// GoalHandler handles patient goal requests.
type GoalHandler struct {
	DB *gorm.DB
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

// CreateGoalRequest represents the request body for creating a goal.
type CreateGoalRequest struct {
	PatientID    string   `json:"patientId" binding:"required,uuid"`
	Type         string   `json:"type" binding:"required,oneof=weight_loss weight_gain maintenance"`
	Description  string   `json:"description"`
	TargetWeight *float64 `json:"targetWeight"`
	TargetDate   string   `json:"targetDate"`
}

// CreateGoal creates a new active goal for a patient. Any previously active
// goal is marked abandoned: the scorer reads a single active goal.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
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

	var targetDate *time.Time
	if req.TargetDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.TargetDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
		targetDate = &parsed
	}

	if err := h.DB.Model(&models.Goal{}).
		Where("patient_id = ? AND status = ?", req.PatientID, models.GoalStatusActive).
		Update("status", models.GoalStatusAbandoned).Error; err != nil {
		utils.InternalServerError(c, "Failed to close previous goal: "+err.Error())
		return
	}

	goal := models.Goal{
		PatientID:      req.PatientID,
		NutritionistID: nutritionistID,
		Type:           models.GoalType(req.Type),
		Description:    req.Description,
		TargetWeight:   req.TargetWeight,
		TargetDate:     targetDate,
		Status:         models.GoalStatusActive,
	}

	if err := h.DB.Create(&goal).Error; err != nil {
		utils.InternalServerError(c, "Failed to create goal: "+err.Error())
		return
	}

	utils.Created(c, "Goal created successfully", goal)
}

// GetGoalsForPatient returns a patient's goals, newest first.
func (h *GoalHandler) GetGoalsForPatient(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid patient ID format")
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("created_at desc").Find(&goals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch goals: "+err.Error())
		return
	}

	utils.Success(c, "Goals fetched successfully", goals)
}

// UpdateGoalStatusRequest represents the request body for a status change.
type UpdateGoalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active achieved abandoned"`
}

// UpdateGoalStatus transitions a goal's status.
func (h *GoalHandler) UpdateGoalStatus(c *gin.Context) {
	goalID := c.Param("id")
	if _, err := uuid.Parse(goalID); err != nil {
		utils.BadRequest(c, "Invalid goal ID format")
		return
	}

	var req UpdateGoalStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var goal models.Goal
	if err := h.DB.First(&goal, "id = ?", goalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Goal not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	goal.Status = models.GoalStatus(req.Status)
	if err := h.DB.Save(&goal).Error; err != nil {
		utils.InternalServerError(c, "Failed to update goal: "+err.Error())
		return
	}

	utils.Success(c, "Goal updated successfully", goal)
}
