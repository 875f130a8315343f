package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/qs3c/quizgen_go_server/internal/pkg/gemini"
	"github.com/qs3c/quizgen_go_server/internal/telemetry"
)

var (
	ErrMonthlyLimitReached = errors.New("本月生成次数已达上限")
	ErrEmptyPDFText        = errors.New("无法从 PDF 中提取文本")
)

const (
	actionGenerateQuiz = "GENERATE_QUIZ"
	actionUploadPDF    = "UPLOAD_PDF"

	costPromptGenerate = 0.01
	costPDFGenerate    = 0.02

	// PDF 文本截断长度，控制提示词体积
	maxPDFChars = 3000
)

// Generator AI 生成端的抽象，测试里用假实现替换
type Generator interface {
	GenerateQuiz(ctx context.Context, prompt string) (*gemini.QuizData, error)
}

type GenerateService struct {
	generator    Generator
	usageService *UsageService
}

func NewGenerateService(generator Generator, usageService *UsageService) *GenerateService {
	return &GenerateService{
		generator:    generator,
		usageService: usageService,
	}
}

// FromPrompt 从文本提示生成测验。
// 流程：查配额 → 调用生成 → 成功后记账。生成失败不记账（没有产出不扣次数）。
func (s *GenerateService) FromPrompt(ctx context.Context, userID, prompt string) (*gemini.QuizData, error) {
	ok, err := s.usageService.CheckMonthlyLimit(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMonthlyLimitReached
	}

	quiz, err := s.generator.GenerateQuiz(ctx, prompt)
	if err != nil {
		return nil, err
	}

	telemetry.L().Info().Str("user_id", userID).Str("action", actionGenerateQuiz).
		Int("questions", len(quiz.Questions)).Msg("quiz_generated")

	if err := s.usageService.RecordUsage(userID, actionGenerateQuiz, prompt, costPromptGenerate); err != nil {
		return nil, err
	}
	return quiz, nil
}

// FromPDF 从已提取的 PDF 文本生成测验，customPrompt 可选
func (s *GenerateService) FromPDF(ctx context.Context, userID, filename, pdfText, customPrompt string) (*gemini.QuizData, error) {
	ok, err := s.usageService.CheckMonthlyLimit(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMonthlyLimitReached
	}

	text := pdfText
	if len(text) > maxPDFChars {
		text = text[:maxPDFChars]
	}

	var prompt string
	if customPrompt != "" {
		prompt = fmt.Sprintf("Based on the following PDF content, create a quiz focusing on: %s\n\nPDF Content:\n%s", customPrompt, text)
	} else {
		prompt = fmt.Sprintf("Create a comprehensive quiz based on this PDF content:\n\n%s", text)
	}

	quiz, err := s.generator.GenerateQuiz(ctx, prompt)
	if err != nil {
		return nil, err
	}

	telemetry.L().Info().Str("user_id", userID).Str("action", actionUploadPDF).
		Str("file", filename).Int("questions", len(quiz.Questions)).Msg("quiz_generated")

	logText := "PDF: " + filename
	if customPrompt != "" {
		logText += " | Prompt: " + customPrompt
	}
	if err := s.usageService.RecordUsage(userID, actionUploadPDF, logText, costPDFGenerate); err != nil {
		return nil, err
	}
	return quiz, nil
}
