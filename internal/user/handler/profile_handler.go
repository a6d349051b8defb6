package handler

import (
	"net/http"
	"strconv"

	"talent-portal/internal/user/model"
	"talent-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterUserRoutes exposes the open read endpoints.
func (h *UserHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
	}
}

// RegisterProfileRoutes exposes endpoints requiring an authenticated
// identity.
func (h *UserHandler) RegisterProfileRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.GetProfile)
	router.PATCH("/profile", h.UpdateOwnProfile)
	router.POST("/profile/change-password", h.ChangePassword)
	router.PATCH("/users/:id", h.UpdateUser)
}

// RegisterAdminRoutes exposes destructive endpoints gated by role.
func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.DELETE("/users/:id", h.DeleteUser)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.service.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved", users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved", user)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved", user)
}

func (h *UserHandler) UpdateOwnProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	h.updateProfile(c, userID, userID)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	h.updateProfile(c, actorID, targetID)
}

func (h *UserHandler) updateProfile(c *gin.Context, actorID, targetID uuid.UUID) {
	var request model.UpdateProfileRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if request.Firstname != nil {
		sanitized := utils.SanitizeString(*request.Firstname)
		request.Firstname = &sanitized
	}
	if request.Lastname != nil {
		sanitized := utils.SanitizeString(*request.Lastname)
		request.Lastname = &sanitized
	}
	if request.Phone != nil {
		sanitized := utils.SanitizePhone(*request.Phone)
		request.Phone = &sanitized
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), actorID, currentRoles(c), targetID, &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated", user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request model.ChangePasswordRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, &request); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deleted successfully", nil)
}
