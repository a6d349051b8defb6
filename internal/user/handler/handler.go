package handler

import (
	"errors"
	"net/http"
	"strings"

	"talent-portal/internal/logger"
	"talent-portal/internal/middleware"
	"talent-portal/internal/user/model"
	"talent-portal/internal/user/service"
	appErrors "talent-portal/pkg/errors"
	"talent-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserHandler struct {
	service *service.UserService
}

func NewHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/register/verify", h.VerifyAccount)
		auth.POST("/register/verify/resend", h.ResendVerification)
		auth.POST("/login", h.Login)
		auth.POST("/token/refresh", h.RefreshToken)
		auth.POST("/reset-password", h.RequestPasswordReset)
		auth.POST("/reset-password/validate", h.ValidateResetToken)
		auth.POST("/reset-password/change", h.ChangePasswordWithReset)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var request model.RegisterRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)
	request.Firstname = utils.SanitizeString(request.Firstname)
	request.Lastname = utils.SanitizeString(request.Lastname)
	if request.Phone != nil {
		sanitized := utils.SanitizePhone(*request.Phone)
		request.Phone = &sanitized
	}

	user, err := h.service.Register(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", user)
}

func (h *UserHandler) VerifyAccount(c *gin.Context) {
	var request model.VerifyAccountRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.VerifyAccount(c.Request.Context(), &request); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account verified successfully", nil)
}

func (h *UserHandler) ResendVerification(c *gin.Context) {
	var request model.ResendVerificationRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	if err := h.service.ResendVerification(c.Request.Context(), &request); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification email sent", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var request model.LoginRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	authResponse, err := h.service.Login(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	var request model.RefreshTokenRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokenPair, err := h.service.RefreshToken(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", tokenPair)
}

func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var request model.PasswordResetRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	if err := h.service.RequestPasswordReset(c.Request.Context(), &request); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset email sent", nil)
}

func (h *UserHandler) ValidateResetToken(c *gin.Context) {
	var request model.ValidateResetTokenRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ValidateResetToken(c.Request.Context(), &request); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token is valid", nil)
}

func (h *UserHandler) ChangePasswordWithReset(c *gin.Context) {
	var request model.PasswordResetChangeRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ChangePasswordWithReset(c.Request.Context(), &request); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *UserHandler) RevokeToken(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	refreshToken := c.GetHeader("Authorization")
	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token required")
		return
	}
	refreshToken = strings.TrimPrefix(refreshToken, "Bearer ")

	if err := h.service.RevokeToken(c.Request.Context(), userID, refreshToken); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token revoked successfully", nil)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func currentRoles(c *gin.Context) model.RoleSet {
	value, exists := c.Get(middleware.ContextRolesKey)
	if !exists {
		return nil
	}

	roles, ok := value.([]string)
	if !ok {
		return nil
	}

	roleSet := make(model.RoleSet, len(roles))
	for i, r := range roles {
		roleSet[i] = model.Role(r)
	}
	return roleSet
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, appErrors.ErrInvalidEmail),
		errors.Is(err, appErrors.ErrInvalidUserRole),
		errors.Is(err, appErrors.ErrTokenInvalid),
		errors.Is(err, appErrors.ErrTokenExpired):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrAccountNotVerified),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrUserInactive),
		errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
