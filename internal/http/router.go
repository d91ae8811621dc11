package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/DrNytkenstien/secureauth/internal/http/handlers"
	"github.com/DrNytkenstien/secureauth/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, sessmw *middleware.SessionMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.POST("/email", ah.RequestOTP)
	auth.POST("/verify", ah.VerifyOTP)
	auth.POST("/resend-otp", ah.ResendOTP)
	auth.GET("/session/:sessionId", ah.GetSession)
	auth.POST("/logout", ah.Logout)
	auth.GET("/stats", ah.Stats)

	v := r.Group("/api/auth").Use(sessmw.WithSession())
	v.GET("/me", ah.Me)
	v.POST("/logout-all", ah.LogoutAll)

	return r
}
