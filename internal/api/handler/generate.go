package handler

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quizgen_go_server/config"
	"github.com/qs3c/quizgen_go_server/internal/api/middleware"
	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/pkg/pdf"
	"github.com/qs3c/quizgen_go_server/internal/pkg/response"
	"github.com/qs3c/quizgen_go_server/internal/service"
)

type GenerateHandler struct {
	generateService *service.GenerateService
	cfg             *config.Config
}

func NewGenerateHandler(generateService *service.GenerateService, cfg *config.Config) *GenerateHandler {
	return &GenerateHandler{
		generateService: generateService,
		cfg:             cfg,
	}
}

// Generate 根据文字提示生成测验
// POST /api/v1/ai/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	quiz, err := h.generateService.FromPrompt(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMonthlyLimitReached):
			response.QuotaError(c, err.Error())
		default:
			response.ServerError(c, "生成失败，请稍后重试")
		}
		return
	}

	response.Success(c, quiz)
}

// Upload 上传 PDF 并生成测验，可附带 prompt 字段指定出题方向
// POST /api/v1/ai/upload
func (h *GenerateHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ParamError(c, "请上传文件")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxSize {
		response.ParamError(c, "文件过大，最大支持 10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedExt := range h.cfg.Upload.AllowedExtensions {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		response.ParamError(c, "仅支持 PDF 格式")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}

	text, err := pdf.ExtractText(data)
	if err != nil {
		response.ParamError(c, "PDF 文件损坏或无法解析")
		return
	}
	if strings.TrimSpace(text) == "" {
		response.ParamError(c, service.ErrEmptyPDFText.Error())
		return
	}

	customPrompt := c.PostForm("prompt")

	quiz, err := h.generateService.FromPDF(c.Request.Context(), userID, header.Filename, text, customPrompt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMonthlyLimitReached):
			response.QuotaError(c, err.Error())
		default:
			response.ServerError(c, "生成失败，请稍后重试")
		}
		return
	}

	response.Success(c, quiz)
}
