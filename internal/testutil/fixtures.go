package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

// TestUser 创建测试用户（直接写集合，不经过仓库层的唯一性检查）
func TestUser(t *testing.T, s *store.Store, opts ...func(*model.User)) *model.User {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{
		ID:        store.NewID(),
		Email:     fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		Name:      "Test User",
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, opt := range opts {
		opt(user)
	}

	appendRecord(t, s, store.Users, *user)
	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithName 设置用户名
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// TestQuizSet 创建测试测验集
func TestQuizSet(t *testing.T, s *store.Store, createdBy string, opts ...func(*model.QuizSet)) *model.QuizSet {
	t.Helper()

	now := time.Now().UTC()
	quizSet := &model.QuizSet{
		ID:        store.NewID(),
		Title:     fmt.Sprintf("Test Quiz %d", time.Now().UnixNano()%10000),
		Questions: `[{"id":1,"type":"multiple_choice","question":"Q?","options":["A","B"],"correct_answer":0,"explanation":"A."}]`,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, opt := range opts {
		opt(quizSet)
	}

	appendRecord(t, s, store.QuizSets, *quizSet)
	return quizSet
}

// WithTitle 设置测验标题
func WithTitle(title string) func(*model.QuizSet) {
	return func(q *model.QuizSet) {
		q.Title = title
	}
}

// WithQuestions 设置题目 payload
func WithQuestions(questions string) func(*model.QuizSet) {
	return func(q *model.QuizSet) {
		q.Questions = questions
	}
}

// TestAttempt 创建测试答题记录
func TestAttempt(t *testing.T, s *store.Store, userID, quizSetID string, score, total int) *model.QuizAttempt {
	t.Helper()

	attempt := &model.QuizAttempt{
		ID:             store.NewID(),
		UserID:         userID,
		QuizSetID:      quizSetID,
		Answers:        `{"0":0}`,
		Score:          score,
		TotalQuestions: total,
		CompletedAt:    time.Now().UTC(),
	}

	appendRecord(t, s, store.QuizAttempts, *attempt)
	return attempt
}

// TestMonthlyUsage 创建月度用量行
func TestMonthlyUsage(t *testing.T, s *store.Store, userID, monthYear string, prompts int, cost float64) *model.MonthlyUsage {
	t.Helper()

	usage := &model.MonthlyUsage{
		ID:           store.NewID(),
		UserID:       userID,
		MonthYear:    monthYear,
		TotalPrompts: prompts,
		TotalCost:    cost,
		LastUpdated:  time.Now().UTC(),
	}

	appendRecord(t, s, store.MonthlyUsage, *usage)
	return usage
}

func appendRecord[T any](t *testing.T, s *store.Store, collection string, record T) {
	t.Helper()

	err := store.Update(s, collection, func(records []T) ([]T, error) {
		return append(records, record), nil
	})
	if err != nil {
		t.Fatalf("Failed to append %s fixture: %v", collection, err)
	}
}
