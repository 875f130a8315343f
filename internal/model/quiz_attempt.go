package model

import (
	"time"
)

type QuizAttempt struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	QuizSetID      string    `json:"quizSetId"`
	Answers        string    `json:"answers"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}
