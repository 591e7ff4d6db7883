package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goblog/internal/application"
	"goblog/internal/domain/entity"
	"goblog/pkg/helpers"
	"goblog/pkg/response"
	"goblog/pkg/validation"
)

// AccountHandler exposes the credential lifecycle over HTTP. The password
// fields on every request carry first-stage client digests, never plaintext.
type AccountHandler struct {
	Svc     *application.AccountService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger, cookies *helpers.CookieManager) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

// The account service owns field validation and its exact messages, so these
// requests bind shape only.
type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

func userPayload(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"image":      u.Image,
		"admin":      u.Admin,
		"created_at": u.CreatedAt,
	}
}

func (h *AccountHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeAppError(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusCreated, userPayload(u), "signup successful", gin.H{"expires_at": sess.ExpiresAt})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		writeAppError(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, userPayload(u), "login successful", gin.H{"expires_at": sess.ExpiresAt})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AccountHandler) Profile(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "profile", nil)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	if err := h.Svc.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeAppError(c, err)
		return
	}
	// The current session stays valid; only the credential changed.
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	addr, err := h.Svc.ResetPassword(c.Request.Context(), req.Email)
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"email": addr}, "reset mail sent", nil)
}

// ListUsers serves the management user table. Admin-only.
func (h *AccountHandler) ListUsers(c *gin.Context) {
	users, page, err := h.Svc.ListUsers(c.Request.Context(), helpers.ParsePageIndex(c.Query("page")))
	if err != nil {
		writeAppError(c, err)
		return
	}
	payload := make([]gin.H, 0, len(users))
	for _, u := range users {
		payload = append(payload, userPayload(u))
	}
	response.Success(c, http.StatusOK, payload, "users", gin.H{"page": page})
}

// DeleteUser removes an account. Admin-only.
func (h *AccountHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		writeAppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}
