package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger, strictStatus bool) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger, strictStatus),
		service:     service,
	}
}

// SyncUser creates the user document on first login
// @Summary Sync user
// @Description Verifies the identity token and creates the user on first sight. A stored role always wins.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SyncRequest true "Token and requested role"
// @Success 200 {object} models.SyncResponse
// @Failure 200 {object} ErrorResponse
// @Router /auth/sync [post]
func (h *UserHandler) SyncUser(c *gin.Context) {
	var req models.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}

	resp, err := h.service.SyncUser(c.Request.Context(), tokenFrom(c, req.Token), req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.LogRequest(c, "User synced", "uid", resp.UID, "role", resp.Role)
	c.JSON(http.StatusOK, resp)
}

// GetProfile returns the flattened student profile
// @Summary Get student profile
// @Tags profile
// @Produce json
// @Param uid query string true "User id"
// @Success 200 {object} models.ProfileResponse
// @Failure 200 {object} ErrorResponse
// @Router /student/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Query("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile merge-upserts the profile and returns the derived risk status
// @Summary Update student profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body models.ProfileUpdateRequest true "Profile form"
// @Success 200 {object} map[string]interface{} "status and risk_status"
// @Failure 200 {object} ErrorResponse
// @Router /student/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "Invalid request payload")
		return
	}
	if req.Token == "" {
		req.Token = tokenFrom(c, "")
	}

	risk, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, gin.H{"risk_status": risk})
}
