package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

// maxResumeBytes bounds an uploaded resume
const maxResumeBytes = 5 << 20

type CareerHandler struct {
	BaseHandler
	service services.CareerService
}

func NewCareerHandler(service services.CareerService, logger utils.Logger, strictStatus bool) *CareerHandler {
	return &CareerHandler{
		BaseHandler: NewBaseHandler(logger, strictStatus),
		service:     service,
	}
}

// AnalyzeResume scores an uploaded resume
// @Summary Analyze resume
// @Tags career
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume"
// @Param student_id formData string false "Stores the review for this student"
// @Param token formData string false "Token of student_id, required to store the review"
// @Success 200 {object} models.ResumeAnalysis
// @Failure 200 {object} ErrorResponse
// @Router /analyze-resume [post]
func (h *CareerHandler) AnalyzeResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondBadRequest(c, "Resume file is required")
		return
	}
	if fileHeader.Size > maxResumeBytes {
		h.respondBadRequest(c, fmt.Sprintf("Resume must be at most %d MB", maxResumeBytes>>20))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded resume")
		h.respondBadRequest(c, "Could not read resume file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		h.LogError(c, err, "Failed to read uploaded resume")
		h.respondBadRequest(c, "Could not read resume file")
		return
	}

	studentID := c.PostForm("student_id")
	h.LogRequest(c, "Analyzing resume", "file_name", fileHeader.Filename, "bytes", len(data))

	analysis, err := h.service.AnalyzeResume(c.Request.Context(), studentID, tokenFrom(c, c.PostForm("token")), fileHeader.Filename, data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// PlacementDrives lists upcoming and past campus drives
// @Summary Placement drives
// @Tags career
// @Produce json
// @Success 200 {object} map[string]interface{} "drives"
// @Router /placement-drives [get]
func (h *CareerHandler) PlacementDrives(c *gin.Context) {
	h.respondSuccess(c, gin.H{"drives": h.service.PlacementDrives()})
}

// SaveProgress merge-upserts the student's placement preparation tracker
// @Summary Save placement progress
// @Tags career
// @Accept json
// @Produce json
// @Param request body models.PlacementProgressRequest true "Progress"
// @Success 200 {object} map[string]interface{} "status"
// @Failure 200 {object} ErrorResponse
// @Router /placement-progress [post]
func (h *CareerHandler) SaveProgress(c *gin.Context) {
	var req models.PlacementProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}
	req.Token = tokenFrom(c, req.Token)

	if err := h.service.SaveProgress(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, nil)
}

// GetProgress returns the student's placement preparation tracker
// @Summary Get placement progress
// @Tags career
// @Produce json
// @Param student_id query string true "Student id"
// @Param token query string false "Identity token"
// @Success 200 {object} models.PlacementProgress
// @Failure 200 {object} ErrorResponse
// @Router /placement-progress [get]
func (h *CareerHandler) GetProgress(c *gin.Context) {
	progress, err := h.service.GetProgress(c.Request.Context(), c.Query("student_id"), tokenFrom(c, ""))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
