package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger, strictStatus bool) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger, strictStatus),
		service:     service,
	}
}

// ===== COURSE ENDPOINTS =====

// CreateCourse creates a course owned by the calling teacher
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.CourseCreateRequest true "Course data"
// @Success 200 {object} map[string]interface{} "status and id"
// @Failure 200 {object} ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req models.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}
	req.Token = tokenFrom(c, req.Token)

	id, err := h.service.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, gin.H{"id": id})
}

// ListCourses lists every course. Order is not guaranteed.
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} models.CourseListResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	list := make([]models.Course, len(courses))
	for i, course := range courses {
		list[i] = *course
	}
	c.JSON(http.StatusOK, models.CourseListResponse{Courses: list})
}

// DeleteCourse deletes a course owned by the caller
// @Summary Delete course
// @Tags courses
// @Produce json
// @Param id path string true "Course id"
// @Param token query string false "Identity token"
// @Success 200 {object} map[string]interface{} "status"
// @Failure 200 {object} ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID := c.Param("id")
	if err := h.service.DeleteCourse(c.Request.Context(), courseID, tokenFrom(c, "")); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, nil)
}

// UploadSyllabus records the syllabus file for a course
// @Summary Upload syllabus
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course id"
// @Param request body models.SyllabusRequest true "Syllabus file URL"
// @Success 200 {object} map[string]interface{} "status"
// @Failure 200 {object} ErrorResponse
// @Router /courses/{id}/syllabus [post]
func (h *CourseHandler) UploadSyllabus(c *gin.Context) {
	var req models.SyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}
	req.Token = tokenFrom(c, req.Token)

	if err := h.service.UploadSyllabus(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, nil)
}

// ===== ENROLLMENT AND DOUBT ENDPOINTS =====

// Enroll enrolls the calling student in a course. Repeating it is a no-op.
// @Summary Enroll in course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.EnrollRequest true "Student and course"
// @Success 200 {object} map[string]interface{} "status"
// @Failure 200 {object} ErrorResponse
// @Router /courses/enroll [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	var req models.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}
	req.Token = tokenFrom(c, req.Token)

	if err := h.service.Enroll(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, nil)
}

// AskDoubt posts an open doubt on a course
// @Summary Ask doubt
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.DoubtCreateRequest true "Doubt"
// @Success 200 {object} map[string]interface{} "status and doubt_id"
// @Failure 200 {object} ErrorResponse
// @Router /courses/doubts [post]
func (h *CourseHandler) AskDoubt(c *gin.Context) {
	var req models.DoubtCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}
	req.Token = tokenFrom(c, req.Token)

	id, err := h.service.AskDoubt(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, gin.H{"doubt_id": id})
}
