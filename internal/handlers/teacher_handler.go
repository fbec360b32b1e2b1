package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TeacherHandler struct {
	BaseHandler
	roster services.RosterService
	export services.ExportService
}

func NewTeacherHandler(roster services.RosterService, export services.ExportService, logger utils.Logger, strictStatus bool) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger, strictStatus),
		roster:      roster,
		export:      export,
	}
}

func (h *TeacherHandler) bindTeacherRequest(c *gin.Context) (*models.TeacherRequest, bool) {
	var req models.TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return nil, false
	}
	req.Token = tokenFrom(c, req.Token)
	return &req, true
}

// GetStudents returns every student enrolled in any of the teacher's courses
// @Summary Teacher roster
// @Tags teacher
// @Accept json
// @Produce json
// @Param request body models.TeacherRequest true "Teacher id and token"
// @Success 200 {object} models.RosterResponse
// @Failure 200 {object} ErrorResponse
// @Router /teacher/students [post]
func (h *TeacherHandler) GetStudents(c *gin.Context) {
	req, ok := h.bindTeacherRequest(c)
	if !ok {
		return
	}

	roster, err := h.roster.ResolveRoster(c.Request.Context(), req.TeacherID, req.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// GetStats returns the teacher dashboard counters
// @Summary Teacher dashboard stats
// @Tags teacher
// @Accept json
// @Produce json
// @Param request body models.TeacherRequest true "Teacher id and token"
// @Success 200 {object} models.TeacherStats
// @Failure 200 {object} ErrorResponse
// @Router /admin/stats [post]
func (h *TeacherHandler) GetStats(c *gin.Context) {
	req, ok := h.bindTeacherRequest(c)
	if !ok {
		return
	}

	stats, err := h.roster.ResolveStats(c.Request.Context(), req.TeacherID, req.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportStudents downloads the roster as an XLSX workbook
// @Summary Export teacher roster
// @Tags teacher
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body models.TeacherRequest true "Teacher id and token"
// @Success 200 {file} file
// @Failure 200 {object} ErrorResponse
// @Router /teacher/students/export [post]
func (h *TeacherHandler) ExportStudents(c *gin.Context) {
	req, ok := h.bindTeacherRequest(c)
	if !ok {
		return
	}

	data, err := h.export.ExportRoster(c.Request.Context(), req.TeacherID, req.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fileName := fmt.Sprintf("roster-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, xlsxContentType, data)
}
