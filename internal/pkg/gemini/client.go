package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

var (
	ErrEmptyCandidates = errors.New("gemini 未返回内容")
	ErrInvalidQuiz     = errors.New("生成的测验结构无效")
)

// QuizQuestion 生成的题目。correct_answer 对选择题是选项下标，
// 对简答题是参考答案文本，保持原样透传。
type QuizQuestion struct {
	ID            int             `json:"id"`
	Type          string          `json:"type"` // multiple_choice, text
	Question      string          `json:"question"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
}

type QuizData struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []QuizQuestion `json:"questions"`
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(apiKey, model string, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// WithBaseURL 覆盖 API 地址（测试用）
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

const promptTemplate = `Generate a quiz based on this prompt: %q.

Please respond with ONLY a valid JSON object in this exact format:
{
  "title": "Quiz title",
  "description": "Brief description",
  "questions": [
    {
      "id": 1,
      "type": "multiple_choice",
      "question": "Question text?",
      "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
      "correct_answer": 0,
      "explanation": "Explanation text"
    },
    {
      "id": 2,
      "type": "text",
      "question": "Text question?",
      "correct_answer": "Expected answer",
      "explanation": "Explanation text"
    }
  ]
}

Create 5-10 questions. Make sure the JSON is valid and includes proper explanations.`

// GenerateQuiz 调用 generateContent 生成测验并解析候选文本里的 JSON
func (c *Client) GenerateQuiz(ctx context.Context, prompt string) (*QuizData, error) {
	body := map[string]any{
		"contents": []any{
			map[string]any{
				"parts": []any{
					map[string]string{"text": fmt.Sprintf(promptTemplate, prompt)},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.7,
			"topK":            40,
			"topP":            0.8,
			"maxOutputTokens": 2048,
		},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", c.apiKey)

	t0 := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("gemini_request_failed")
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	c.logger.Debug().Int("status_code", resp.StatusCode).Int("body_len", len(raw)).
		Dur("latency", time.Since(t0)).Msg("gemini_response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().Str("status", resp.Status).Msg("gemini_http_error")
		return nil, errors.New("gemini http " + resp.Status)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		PromptFeedback *struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return nil, errors.New("gemini blocked: " + out.PromptFeedback.BlockReason)
	}

	var text string
	if len(out.Candidates) > 0 && len(out.Candidates[0].Content.Parts) > 0 {
		text = out.Candidates[0].Content.Parts[0].Text
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyCandidates
	}

	return ParseQuizJSON(text)
}

// ParseQuizJSON 从模型输出中截取 JSON 对象并校验结构。
// 模型偶尔会在 JSON 前后夹带说明文字或代码栅栏。
func ParseQuizJSON(text string) (*QuizData, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, ErrInvalidQuiz
	}

	var quiz QuizData
	if err := json.Unmarshal([]byte(text[start:end+1]), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuiz, err)
	}

	if quiz.Title == "" || len(quiz.Questions) == 0 {
		return nil, ErrInvalidQuiz
	}
	return &quiz, nil
}
