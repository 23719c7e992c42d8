package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nutrition-app-server/internal/anthro"
	"nutrition-app-server/internal/metrics"
	"nutrition-app-server/internal/middleware"
	"nutrition-app-server/internal/models"
	"nutrition-app-server/internal/utils"
)

// AnthropometryHandler handles anthropometric record requests: the append-only
// record store plus the comparison and timeline endpoints built on the engine.
type AnthropometryHandler struct {
	DB      *gorm.DB
	Log     *zap.Logger
	Metrics *metrics.Collector
}

// NewAnthropometryHandler creates a new AnthropometryHandler.
func NewAnthropometryHandler(db *gorm.DB, log *zap.Logger, collector *metrics.Collector) *AnthropometryHandler {
	return &AnthropometryHandler{DB: db, Log: log, Metrics: collector}
}

// CreateRecordRequest represents the request body for creating a record.
type CreateRecordRequest struct {
	PatientID          string                  `json:"patientId" binding:"required,uuid"`
	RecordDate         string                  `json:"recordDate"`
	RevisionNumber     int                     `json:"revisionNumber"`
	Weight             *float64                `json:"weight"`
	Height             *float64                `json:"height"`
	Circumferences     models.MeasurementGroup `json:"circumferences"`
	Skinfolds          models.MeasurementGroup `json:"skinfolds"`
	BoneDiameters      models.MeasurementGroup `json:"boneDiameters"`
	Bioimpedance       models.MeasurementGroup `json:"bioimpedance"`
	Photos             models.PhotoList        `json:"photos"`
	Results            models.ResultsBag       `json:"results"`
	SupersedesRecordID string                  `json:"supersedesRecordId"`
	Notes              string                  `json:"notes"`
}

// CreateRecord creates a new anthropometric record. When supersedesRecordId
// is set the referenced record is left untouched: edits are append-only and
// always insert a new row.
func (h *AnthropometryHandler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	nutritionistID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	// Verify patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", req.PatientID, models.RolePatient).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	recordDate := time.Now()
	if req.RecordDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.RecordDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
		recordDate = parsed
	}

	revision := req.RevisionNumber
	if revision < 1 {
		revision = 1
	}

	record := models.AnthropometricRecord{
		PatientID:      req.PatientID,
		NutritionistID: nutritionistID,
		RecordDate:     recordDate,
		RevisionNumber: revision,
		Weight:         req.Weight,
		Height:         req.Height,
		Circumferences: req.Circumferences,
		Skinfolds:      req.Skinfolds,
		BoneDiameters:  req.BoneDiameters,
		Bioimpedance:   req.Bioimpedance,
		Photos:         req.Photos,
		Results:        req.Results,
		Notes:          req.Notes,
	}

	if req.SupersedesRecordID != "" {
		// The superseded record must exist, belong to the same patient, and
		// is never mutated or deleted here.
		var parent models.AnthropometricRecord
		if err := h.DB.First(&parent, "id = ?", req.SupersedesRecordID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.BadRequest(c, "Superseded record not found")
			} else {
				utils.InternalServerError(c, "Database error verifying superseded record: "+err.Error())
			}
			return
		}
		if parent.PatientID != req.PatientID {
			utils.BadRequest(c, "Superseded record belongs to a different patient")
			return
		}
		record.SupersedesRecordID = &req.SupersedesRecordID
	}

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create anthropometric record: "+err.Error())
		return
	}

	h.Metrics.RecordsCreatedTotal.Inc()
	if record.IsRevision() {
		h.Metrics.RecordRevisionsTotal.Inc()
		h.Log.Info("record revision created",
			zap.String("recordId", record.ID),
			zap.Stringp("supersedes", record.SupersedesRecordID))
	}

	utils.Created(c, "Anthropometric record created successfully", record)
}

// RecordWithSections wraps a record with its derived section presence.
type RecordWithSections struct {
	models.AnthropometricRecord
	Sections     anthro.SectionPresence `json:"sections"`
	SectionCount int                    `json:"sectionCount"`
	Completeness anthro.Completeness    `json:"completeness"`
}

// GetRecordsForPatient returns a patient's records in display order
// (record date desc, revision number desc), each annotated with its section
// classification.
func (h *AnthropometryHandler) GetRecordsForPatient(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid patient ID format")
		return
	}

	if !h.authorizePatientAccess(c, patientID) {
		return
	}

	records, ok := h.fetchPatientRecords(c, patientID)
	if !ok {
		return
	}

	annotated := make([]RecordWithSections, 0, len(records))
	for _, r := range records {
		presence := anthro.Classify(r)
		annotated = append(annotated, RecordWithSections{
			AnthropometricRecord: *r,
			Sections:             presence,
			SectionCount:         presence.Count(),
			Completeness:         anthro.Complete(r),
		})
	}

	utils.Success(c, "Anthropometric records fetched successfully", annotated)
}

// GetRecordByID returns a single record.
func (h *AnthropometryHandler) GetRecordByID(c *gin.Context) {
	record, ok := h.fetchRecord(c, c.Param("id"))
	if !ok {
		return
	}
	if !h.authorizePatientAccess(c, record.PatientID) {
		return
	}

	utils.Success(c, "Anthropometric record fetched successfully", record)
}

// DeleteRecord hard-deletes a record. Only nutritionists and admins may do
// this; revisions referencing the deleted record simply lose that part of
// their timeline.
func (h *AnthropometryHandler) DeleteRecord(c *gin.Context) {
	recordID := c.Param("id")
	if _, err := uuid.Parse(recordID); err != nil {
		utils.BadRequest(c, "Invalid record ID format")
		return
	}

	result := h.DB.Delete(&models.AnthropometricRecord{}, "id = ?", recordID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete record: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Anthropometric record not found")
		return
	}

	h.Log.Info("record deleted", zap.String("recordId", recordID))
	utils.Success(c, "Anthropometric record deleted successfully", nil)
}

// GetRecordTimeline returns the revision lineage of a record, oldest first.
func (h *AnthropometryHandler) GetRecordTimeline(c *gin.Context) {
	record, ok := h.fetchRecord(c, c.Param("id"))
	if !ok {
		return
	}
	if !h.authorizePatientAccess(c, record.PatientID) {
		return
	}

	allRecords, ok := h.fetchPatientRecords(c, record.PatientID)
	if !ok {
		return
	}

	timeline := anthro.ResolveTimeline(record, allRecords)
	utils.Success(c, "Record timeline resolved successfully", timeline)
}

// CompareRecords builds a comparison report for two of a patient's records,
// scored under the patient's resolved objective.
func (h *AnthropometryHandler) CompareRecords(c *gin.Context) {
	current, previous, ok := h.fetchComparisonPair(c)
	if !ok {
		return
	}

	objective := h.resolveObjective(current)
	report := anthro.BuildComparisonWithIndicator(current, previous, objective)
	if report == nil {
		utils.BadRequest(c, "Comparison requires two records")
		return
	}

	h.Metrics.ComparisonsBuiltTotal.Inc()
	utils.Success(c, "Comparison built successfully", gin.H{
		"objective": objective,
		"report":    report,
	})
}

// ExportComparison returns the comparison flattened to the label/value line
// list consumed by the document export sink, plus a suggested filename.
func (h *AnthropometryHandler) ExportComparison(c *gin.Context) {
	current, previous, ok := h.fetchComparisonPair(c)
	if !ok {
		return
	}

	objective := h.resolveObjective(current)
	report := anthro.BuildComparisonWithIndicator(current, previous, objective)
	if report == nil {
		utils.BadRequest(c, "Comparison requires two records")
		return
	}

	h.Metrics.ComparisonsBuiltTotal.Inc()
	utils.Success(c, "Comparison export built successfully", gin.H{
		"filename": report.SuggestedFilename(),
		"lines":    report.ExportLines(),
	})
}

// fetchComparisonPair loads and authorizes the current/previous records named
// in the query string. Both must belong to the same patient.
func (h *AnthropometryHandler) fetchComparisonPair(c *gin.Context) (current, previous *models.AnthropometricRecord, ok bool) {
	currentID := c.Query("current")
	previousID := c.Query("previous")
	if currentID == "" || previousID == "" {
		utils.BadRequest(c, "Both 'current' and 'previous' record IDs are required")
		return nil, nil, false
	}

	current, ok = h.fetchRecord(c, currentID)
	if !ok {
		return nil, nil, false
	}
	previous, ok = h.fetchRecord(c, previousID)
	if !ok {
		return nil, nil, false
	}

	if current.PatientID != previous.PatientID {
		utils.BadRequest(c, "Records belong to different patients")
		return nil, nil, false
	}
	if !h.authorizePatientAccess(c, current.PatientID) {
		return nil, nil, false
	}
	return current, previous, true
}

// resolveObjective derives the patient's objective from the active goal,
// falling back to the active anamnesis wording and then the record's BMI.
func (h *AnthropometryHandler) resolveObjective(record *models.AnthropometricRecord) models.GoalType {
	input := anthro.ObjectiveInput{BMI: anthro.BMI(record)}

	var goal models.Goal
	if err := h.DB.Where("patient_id = ? AND status = ?", record.PatientID, models.GoalStatusActive).
		Order("created_at desc").First(&goal).Error; err == nil {
		input.GoalType = goal.Type
	}

	var anamnesis models.Anamnesis
	if err := h.DB.Where("patient_id = ? AND is_active = ?", record.PatientID, true).
		Order("interview_date desc").First(&anamnesis).Error; err == nil {
		input.AnamnesisText = anamnesis.Objective
	}

	return anthro.ResolveObjective(input)
}

func (h *AnthropometryHandler) fetchRecord(c *gin.Context, recordID string) (*models.AnthropometricRecord, bool) {
	if _, err := uuid.Parse(recordID); err != nil {
		utils.BadRequest(c, "Invalid record ID format: "+recordID)
		return nil, false
	}

	var record models.AnthropometricRecord
	if err := h.DB.First(&record, "id = ?", recordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Anthropometric record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &record, true
}

// fetchPatientRecords loads the full record set of a patient as one snapshot
// for timeline resolution and display.
func (h *AnthropometryHandler) fetchPatientRecords(c *gin.Context, patientID string) ([]*models.AnthropometricRecord, bool) {
	var records []*models.AnthropometricRecord
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("record_date desc").Order("revision_number desc").
		Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch anthropometric records: "+err.Error())
		return nil, false
	}
	return records, true
}

// authorizePatientAccess allows the patient themselves, nutritionists and
// admins.
func (h *AnthropometryHandler) authorizePatientAccess(c *gin.Context, patientID string) bool {
	userID, idOK := middleware.GetUserIDFromContext(c)
	role, roleOK := middleware.GetUserRoleFromContext(c)
	if !idOK || !roleOK {
		utils.Unauthorized(c, "User information not found in token")
		return false
	}

	isProfessional := role == models.RoleNutritionist || role == models.RoleAdmin
	isSelf := userID == patientID
	if !isProfessional && !isSelf {
		utils.Forbidden(c, "You are not authorized to view these records")
		return false
	}
	return true
}
