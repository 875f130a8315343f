package model

import (
	"time"
)

// QuizSet 的 Questions 是序列化后的题目列表，存储层不关心其结构，
// 解析发生在 API 边界。
type QuizSet struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Questions   string    `json:"questions"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
