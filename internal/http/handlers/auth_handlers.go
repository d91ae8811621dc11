package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DrNytkenstien/secureauth/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	userRepo domain.UserRepository
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, userRepo domain.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		userRepo: userRepo,
	}
}

// EmailRequest carries the address for OTP request and resend
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyRequest carries the address and submitted code
type VerifyRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// LogoutRequest carries the session to terminate
type LogoutRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func successResponse(c *gin.Context, data gin.H, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// RequestOTP handles POST /api/auth/email
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_EMAIL", "Email is required")
		return
	}

	record, err := h.authSvc.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		var rateLimited *domain.RateLimitedError
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			errorResponse(c, http.StatusBadRequest, "INVALID_EMAIL_FORMAT", "Please provide a valid email address")
		case errors.As(err, &rateLimited):
			errorResponse(c, http.StatusTooManyRequests, "OTP_RECENTLY_SENT", rateLimited.Error())
		case errors.Is(err, domain.ErrDeliveryFailed):
			errorResponse(c, http.StatusInternalServerError, "EMAIL_SEND_FAILED", "Failed to send OTP email")
		default:
			errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		}
		return
	}

	successResponse(c, gin.H{
		"email":     record.Email,
		"expiresIn": int(time.Until(record.ExpiresAt).Seconds()),
	}, "OTP sent to your email")
}

// VerifyOTP handles POST /api/auth/verify
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "MISSING_FIELDS", "Email and OTP are required")
		return
	}

	session, err := h.authSvc.VerifyCode(
		c.Request.Context(),
		req.Email,
		req.OTP,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		var invalidCode *domain.InvalidCodeError
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			errorResponse(c, http.StatusBadRequest, "INVALID_EMAIL_FORMAT", "Please provide a valid email address")
		case errors.Is(err, domain.ErrOTPExpired):
			errorResponse(c, http.StatusUnauthorized, "OTP_EXPIRED", "OTP has expired. Please request a new one.")
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			errorResponse(c, http.StatusUnauthorized, "OTP_ATTEMPTS_EXCEEDED", "Maximum OTP verification attempts exceeded. Please request a new OTP.")
		case errors.As(err, &invalidCode):
			errorResponse(c, http.StatusUnauthorized, "INVALID_OTP", invalidCode.Error())
		default:
			errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		}
		return
	}

	successResponse(c, gin.H{
		"sessionId": session.ID,
		"userId":    session.UserID,
		"email":     session.Email,
		"expiresIn": int(time.Until(session.ExpiresAt).Seconds()),
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
	}, "Session created successfully")
}

// ResendOTP handles POST /api/auth/resend-otp
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_EMAIL", "Email is required")
		return
	}

	record, err := h.authSvc.ResendCode(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			errorResponse(c, http.StatusBadRequest, "INVALID_EMAIL_FORMAT", "Please provide a valid email address")
		case errors.Is(err, domain.ErrDeliveryFailed):
			errorResponse(c, http.StatusInternalServerError, "EMAIL_SEND_FAILED", "Failed to send OTP email")
		default:
			errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		}
		return
	}

	successResponse(c, gin.H{
		"email":     record.Email,
		"expiresIn": int(time.Until(record.ExpiresAt).Seconds()),
	}, "New OTP sent to your email")
}

// GetSession handles GET /api/auth/session/:sessionId
func (h *AuthHandlers) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		errorResponse(c, http.StatusBadRequest, "MISSING_SESSION_ID", "Session ID is required")
		return
	}

	session, err := h.authSvc.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
			errorResponse(c, http.StatusUnauthorized, "INVALID_SESSION", "Session is invalid or expired")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		return
	}

	successResponse(c, gin.H{
		"sessionId": session.ID,
		"email":     session.Email,
		"userId":    session.UserID,
		"createdAt": session.CreatedAt.UTC().Format(time.RFC3339),
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
		"isValid":   true,
	}, "Session is valid")
}

// Logout handles POST /api/auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "MISSING_SESSION_ID", "Session ID is required")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.SessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			errorResponse(c, http.StatusBadRequest, "SESSION_NOT_FOUND", "Session not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		return
	}

	successResponse(c, gin.H{}, "Session terminated")
}

// LogoutAll handles POST /api/auth/logout-all (requires authentication)
func (h *AuthHandlers) LogoutAll(c *gin.Context) {
	email, exists := c.Get("email")
	if !exists {
		errorResponse(c, http.StatusUnauthorized, "INVALID_SESSION", "Session is invalid or expired")
		return
	}

	if err := h.authSvc.LogoutAll(c.Request.Context(), email.(string)); err != nil {
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		return
	}

	successResponse(c, gin.H{}, "All sessions terminated")
}

// Me handles GET /api/auth/me (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	email, exists := c.Get("email")
	if !exists {
		errorResponse(c, http.StatusUnauthorized, "INVALID_SESSION", "Session is invalid or expired")
		return
	}

	user, err := h.userRepo.FindByEmail(c.Request.Context(), email.(string))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		return
	}

	successResponse(c, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"createdAt":   user.CreatedAt.UTC().Format(time.RFC3339),
		"lastLoginAt": user.LastLoginAt.UTC().Format(time.RFC3339),
	}, "Profile retrieved")
}

// Stats handles GET /api/auth/stats
func (h *AuthHandlers) Stats(c *gin.Context) {
	stats, err := h.authSvc.Stats(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		return
	}

	successResponse(c, gin.H{
		"totalUsers":     stats.TotalUsers,
		"activeOTPs":     stats.ActiveOTPs,
		"activeSessions": stats.ActiveSessions,
	}, "Stats retrieved")
}
