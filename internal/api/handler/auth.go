package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/pkg/response"
	"github.com/qs3c/quizgen_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// GoogleAuth 获取 Google 授权地址
// GET /api/v1/auth/google
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	resp, err := h.authService.GetAuthURL()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}

// GoogleCallback 处理 Google 登录回调
// GET /api/v1/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.ParamError(c, "缺少 code 或 state 参数")
		return
	}

	resp, err := h.authService.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidState):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrNoEmail):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "登录失败")
		}
		return
	}

	response.SuccessWithMessage(c, "登录成功", resp)
}

// Logout 退出登录
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.authService.Logout(req.SessionToken); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "已退出登录", nil)
}
