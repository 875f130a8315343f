package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/quizgen_go_server/internal/api/middleware"
	"github.com/qs3c/quizgen_go_server/internal/pkg/response"
	"github.com/qs3c/quizgen_go_server/internal/service"
)

type UsageHandler struct {
	usageService *service.UsageService
}

func NewUsageHandler(usageService *service.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// GetUsage 获取当前用户本月用量
// GET /api/v1/user/usage
func (h *UsageHandler) GetUsage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.usageService.GetCurrentUsage(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}
