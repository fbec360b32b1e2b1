package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

type TutorHandler struct {
	BaseHandler
	service services.TutorService
}

func NewTutorHandler(service services.TutorService, logger utils.Logger, strictStatus bool) *TutorHandler {
	return &TutorHandler{
		BaseHandler: NewBaseHandler(logger, strictStatus),
		service:     service,
	}
}

// SolveDoubt answers a free-form academic question
// @Summary Solve doubt
// @Description Answers from the AI tutor. A failing AI service is answered with fixed fallback text.
// @Tags tutor
// @Accept json
// @Produce json
// @Param request body models.SolveDoubtRequest true "Question"
// @Success 200 {object} models.DoubtAnswer
// @Failure 200 {object} ErrorResponse
// @Router /solve-doubt [post]
func (h *TutorHandler) SolveDoubt(c *gin.Context) {
	var req models.SolveDoubtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}

	answer, err := h.service.SolveDoubt(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// GenerateQuiz returns a five question quiz for a subject and topic
// @Summary Generate quiz
// @Tags tutor
// @Accept json
// @Produce json
// @Param request body models.QuizRequest true "Subject and topic"
// @Success 200 {object} models.QuizResponse
// @Failure 200 {object} ErrorResponse
// @Router /generate-quiz [post]
func (h *TutorHandler) GenerateQuiz(c *gin.Context) {
	var req models.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}

	quiz, err := h.service.GenerateQuiz(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Predict estimates academic risk from attendance and marks
// @Summary Predict risk
// @Tags tutor
// @Accept json
// @Produce json
// @Param request body models.PredictRequest true "Attendance and marks"
// @Success 200 {object} models.PredictionResult
// @Router /predict [post]
func (h *TutorHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}
	c.JSON(http.StatusOK, services.PredictRisk(req.Attendance, req.Marks))
}
