package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"goblog/internal/container"
	handlers "goblog/internal/interface/http"
	"goblog/internal/interface/middleware"
	"goblog/pkg/helpers"
)

// AccountModule wires the credential lifecycle routes.
// Public: POST /api/signup, POST /api/login, POST /api/password/reset
// Protected: POST /api/logout, GET /api/profile, POST /api/password/change
type AccountModule struct {
	Handler    *handlers.AccountHandler
	Tokens     *helpers.TokenManager
	CookieName string
}

func NewAccountModule(h *handlers.AccountHandler, tokens *helpers.TokenManager, cookieName string) *AccountModule {
	return &AccountModule{Handler: h, Tokens: tokens, CookieName: cookieName}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting. Reset is the tightest since each hit
	// rewrites the account credential and sends mail.
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 3, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/password/reset", resetLimiter, m.Handler.ResetPassword)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.Tokens, m.CookieName))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
		auth.POST("/password/change", m.Handler.ChangePassword)
	}
}
