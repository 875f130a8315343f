package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(text string) string {
	body := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]string{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

const validQuizJSON = `{
  "title": "Photosynthesis Quiz",
  "description": "Basics",
  "questions": [
    {"id": 1, "type": "multiple_choice", "question": "Q?", "options": ["A", "B"], "correct_answer": 0, "explanation": "A."}
  ]
}`

func TestGenerateQuiz_Success(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiResponse(validQuizJSON)))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-pro", zerolog.Nop()).WithBaseURL(server.URL)

	quiz, err := client.GenerateQuiz(context.Background(), "Photosynthesis")
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Photosynthesis Quiz", quiz.Title)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "multiple_choice", quiz.Questions[0].Type)
}

// 模型输出夹带代码栅栏时依然能解析
func TestGenerateQuiz_FencedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiResponse("Here is your quiz:\n```json\n" + validQuizJSON + "\n```\nEnjoy!")))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-pro", zerolog.Nop()).WithBaseURL(server.URL)

	quiz, err := client.GenerateQuiz(context.Background(), "Photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis Quiz", quiz.Title)
}

func TestGenerateQuiz_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-pro", zerolog.Nop()).WithBaseURL(server.URL)

	_, err := client.GenerateQuiz(context.Background(), "Photosynthesis")
	assert.ErrorIs(t, err, ErrEmptyCandidates)
}

func TestGenerateQuiz_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-pro", zerolog.Nop()).WithBaseURL(server.URL)

	_, err := client.GenerateQuiz(context.Background(), "Photosynthesis")
	assert.Error(t, err)
}

func TestParseQuizJSON(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		quiz, err := ParseQuizJSON(validQuizJSON)
		require.NoError(t, err)
		assert.Equal(t, "Photosynthesis Quiz", quiz.Title)
	})

	t.Run("no json object", func(t *testing.T) {
		_, err := ParseQuizJSON("sorry, I cannot do that")
		assert.ErrorIs(t, err, ErrInvalidQuiz)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := ParseQuizJSON(`{"questions": [{"id": 1}]}`)
		assert.ErrorIs(t, err, ErrInvalidQuiz)
	})

	t.Run("no questions", func(t *testing.T) {
		_, err := ParseQuizJSON(`{"title": "T", "questions": []}`)
		assert.ErrorIs(t, err, ErrInvalidQuiz)
	})

	t.Run("text answer kept verbatim", func(t *testing.T) {
		quiz, err := ParseQuizJSON(`{"title": "T", "questions": [{"id": 1, "type": "text", "question": "Q?", "correct_answer": "An answer"}]}`)
		require.NoError(t, err)
		assert.JSONEq(t, `"An answer"`, string(quiz.Questions[0].CorrectAnswer))
	})
}
