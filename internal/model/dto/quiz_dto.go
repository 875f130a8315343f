package dto

import (
	"encoding/json"
	"time"
)

type CreateQuizSetRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Questions   json.RawMessage `json:"questions" binding:"required"`
}

type QuizSetListItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AttemptCount int       `json:"attempt_count"`
}

// CreatorInfo 测验详情里附带的创建者信息；创建者已注销时为 null
type CreatorInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type QuizSetDetail struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Questions   json.RawMessage `json:"questions"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Creator     *CreatorInfo    `json:"creator"`
}

type SubmitAttemptRequest struct {
	Answers        json.RawMessage `json:"answers" binding:"required"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"total_questions" binding:"required"`
}

// AttemptQuizInfo 历史记录里附带的测验摘要；测验已删除时为 null
type AttemptQuizInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type AttemptHistoryItem struct {
	ID             string           `json:"id"`
	QuizSetID      string           `json:"quiz_set_id"`
	Answers        json.RawMessage  `json:"answers"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CompletedAt    time.Time        `json:"completed_at"`
	QuizSet        *AttemptQuizInfo `json:"quiz_set"`
}
