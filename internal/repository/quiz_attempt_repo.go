package repository

import (
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

type QuizAttemptRepository struct {
	store *store.Store
}

func NewQuizAttemptRepository(s *store.Store) *QuizAttemptRepository {
	return &QuizAttemptRepository{store: s}
}

// Create 追加答题记录，completedAt 在创建时落定，之后不再变更
func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	attempt.ID = store.NewID()
	attempt.CompletedAt = time.Now().UTC()
	return store.Update(r.store, store.QuizAttempts, func(attempts []model.QuizAttempt) ([]model.QuizAttempt, error) {
		return append(attempts, *attempt), nil
	})
}

func (r *QuizAttemptRepository) ListByUser(userID string) ([]model.QuizAttempt, error) {
	attempts, err := store.Load[model.QuizAttempt](r.store, store.QuizAttempts)
	if err != nil {
		return nil, err
	}
	var result []model.QuizAttempt
	for i := range attempts {
		if attempts[i].UserID == userID {
			result = append(result, attempts[i])
		}
	}
	return result, nil
}

func (r *QuizAttemptRepository) ListByQuizSet(quizSetID string) ([]model.QuizAttempt, error) {
	attempts, err := store.Load[model.QuizAttempt](r.store, store.QuizAttempts)
	if err != nil {
		return nil, err
	}
	var result []model.QuizAttempt
	for i := range attempts {
		if attempts[i].QuizSetID == quizSetID {
			result = append(result, attempts[i])
		}
	}
	return result, nil
}

func (r *QuizAttemptRepository) CountByQuizSet(quizSetID string) (int, error) {
	attempts, err := r.ListByQuizSet(quizSetID)
	if err != nil {
		return 0, err
	}
	return len(attempts), nil
}
