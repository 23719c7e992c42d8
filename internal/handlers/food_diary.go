package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrition-app-server/internal/metrics"
	"nutrition-app-server/internal/middleware"
	"nutrition-app-server/internal/models"
	"nutrition-app-server/internal/utils"
)

// FoodDiaryHandler handles meal logging and progress requests.
type FoodDiaryHandler struct {
	DB      *gorm.DB
	Metrics *metrics.Collector
}

// NewFoodDiaryHandler creates a new FoodDiaryHandler.
func NewFoodDiaryHandler(db *gorm.DB, collector *metrics.Collector) *FoodDiaryHandler {
	return &FoodDiaryHandler{DB: db, Metrics: collector}
}

// MealFoodRequest is one food item in a meal log request.
type MealFoodRequest struct {
	FoodCode string  `json:"foodCode"`
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// LogMealRequest represents the request body for logging a meal.
type LogMealRequest struct {
	MealType string            `json:"mealType" binding:"required,oneof=breakfast lunch dinner snack"`
	EatenAt  string            `json:"eatenAt"`
	Notes    string            `json:"notes"`
	Foods    []MealFoodRequest `json:"foods" binding:"required,min=1,dive"`
}

// LogMeal records a meal in the authenticated patient's food diary.
func (h *FoodDiaryHandler) LogMeal(c *gin.Context) {
	var req LogMealRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	eatenAt := time.Now()
	if req.EatenAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.EatenAt)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
		eatenAt = parsed
	}

	meal := models.MealLog{
		PatientID: patientID,
		MealType:  models.MealType(req.MealType),
		EatenAt:   eatenAt,
		Notes:     req.Notes,
	}
	for _, f := range req.Foods {
		meal.Foods = append(meal.Foods, models.MealFood{
			FoodCode: f.FoodCode,
			Name:     f.Name,
			Quantity: f.Quantity,
			Unit:     f.Unit,
			Calories: f.Calories,
			Protein:  f.Protein,
			Carbs:    f.Carbs,
			Fat:      f.Fat,
		})
	}

	if err := h.DB.Create(&meal).Error; err != nil {
		utils.InternalServerError(c, "Failed to log meal: "+err.Error())
		return
	}

	h.Metrics.MealsLoggedTotal.Inc()
	utils.Created(c, "Meal logged successfully", meal)
}

// GetMealsForDay returns the authenticated patient's meals for one day
// (query param "date" as YYYY-MM-DD, defaulting to today).
func (h *FoodDiaryHandler) GetMealsForDay(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use YYYY-MM-DD")
			return
		}
		day = parsed
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var meals []models.MealLog
	if err := h.DB.Preload("Foods").
		Where("patient_id = ? AND eaten_at >= ? AND eaten_at < ?", patientID, dayStart, dayEnd).
		Order("eaten_at asc").Find(&meals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch meals: "+err.Error())
		return
	}

	utils.Success(c, "Meals fetched successfully", meals)
}

// DeleteMeal removes one of the authenticated patient's meal logs.
func (h *FoodDiaryHandler) DeleteMeal(c *gin.Context) {
	mealID := c.Param("id")
	if _, err := uuid.Parse(mealID); err != nil {
		utils.BadRequest(c, "Invalid meal ID format")
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	result := h.DB.Delete(&models.MealLog{}, "id = ? AND patient_id = ?", mealID, patientID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete meal: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Meal not found")
		return
	}

	utils.Success(c, "Meal deleted successfully", nil)
}

// ProgressSummary aggregates a patient's recent diary activity.
type ProgressSummary struct {
	Days          int           `json:"days"`
	MealsLogged   int           `json:"mealsLogged"`
	TotalCalories float64       `json:"totalCalories"`
	AvgCalories   float64       `json:"avgCaloriesPerDay"`
	StreakDays    int           `json:"streakDays"`
	Achievements  []Achievement `json:"achievements"`
}

// Achievement is a derived milestone, computed from diary activity rather
// than stored.
type Achievement struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// GetProgress summarizes the authenticated patient's last 30 days of logging
// and derives achievements.
func (h *FoodDiaryHandler) GetProgress(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	since := time.Now().AddDate(0, 0, -30)
	var meals []models.MealLog
	if err := h.DB.Preload("Foods").
		Where("patient_id = ? AND eaten_at >= ?", patientID, since).
		Order("eaten_at desc").Find(&meals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch meals: "+err.Error())
		return
	}

	utils.Success(c, "Progress fetched successfully", BuildProgressSummary(meals, time.Now()))
}

// BuildProgressSummary derives the progress summary and achievements from a
// set of meal logs. Pure computation, factored out for testing.
func BuildProgressSummary(meals []models.MealLog, now time.Time) ProgressSummary {
	summary := ProgressSummary{Days: 30, MealsLogged: len(meals)}

	loggedDays := map[string]bool{}
	for _, m := range meals {
		loggedDays[m.EatenAt.Format("2006-01-02")] = true
		for _, f := range m.Foods {
			summary.TotalCalories += f.Calories
		}
	}
	if len(loggedDays) > 0 {
		summary.AvgCalories = summary.TotalCalories / float64(len(loggedDays))
	}

	// Streak: consecutive days ending today (or yesterday, so an
	// unfinished day does not break it).
	day := now
	if !loggedDays[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for loggedDays[day.Format("2006-01-02")] {
		summary.StreakDays++
		day = day.AddDate(0, 0, -1)
	}

	if summary.MealsLogged >= 1 {
		summary.Achievements = append(summary.Achievements, Achievement{Code: "first_meal", Title: "First meal logged"})
	}
	if summary.StreakDays >= 7 {
		summary.Achievements = append(summary.Achievements, Achievement{Code: "week_streak", Title: "7-day logging streak"})
	}
	if summary.MealsLogged >= 50 {
		summary.Achievements = append(summary.Achievements, Achievement{Code: "fifty_meals", Title: "50 meals logged"})
	}
	return summary
}
