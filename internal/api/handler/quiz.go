package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quizgen_go_server/internal/api/middleware"
	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/pkg/response"
	"github.com/qs3c/quizgen_go_server/internal/service"
)

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// Create 保存测验
// POST /api/v1/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateQuizSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	quizSet, err := h.quizService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "保存成功", quizSet)
}

// List 当前用户的测验列表
// GET /api/v1/quizzes
func (h *QuizHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.quizService.List(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// Get 测验详情
// GET /api/v1/quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	detail, err := h.quizService.Get(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Delete 删除测验，仅创建者可操作
// DELETE /api/v1/quizzes/:id
func (h *QuizHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.quizService.Delete(userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrQuizPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// SubmitAttempt 提交答题记录
// POST /api/v1/quizzes/:id/attempts
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	attempt, err := h.quizService.SubmitAttempt(userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "提交成功", attempt)
}

// ListAttempts 当前用户的答题历史
// GET /api/v1/attempts
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.quizService.ListAttempts(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}
