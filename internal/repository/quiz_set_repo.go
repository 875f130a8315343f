package repository

import (
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

type QuizSetRepository struct {
	store *store.Store
}

func NewQuizSetRepository(s *store.Store) *QuizSetRepository {
	return &QuizSetRepository{store: s}
}

func (r *QuizSetRepository) Create(quizSet *model.QuizSet) error {
	now := time.Now().UTC()
	quizSet.ID = store.NewID()
	quizSet.CreatedAt = now
	quizSet.UpdatedAt = now
	return store.Update(r.store, store.QuizSets, func(quizSets []model.QuizSet) ([]model.QuizSet, error) {
		return append(quizSets, *quizSet), nil
	})
}

func (r *QuizSetRepository) GetByID(id string) (*model.QuizSet, error) {
	quizSets, err := store.Load[model.QuizSet](r.store, store.QuizSets)
	if err != nil {
		return nil, err
	}
	for i := range quizSets {
		if quizSets[i].ID == id {
			return &quizSets[i], nil
		}
	}
	return nil, nil
}

// ListByCreator 按创建者过滤，保持插入顺序
func (r *QuizSetRepository) ListByCreator(userID string) ([]model.QuizSet, error) {
	quizSets, err := store.Load[model.QuizSet](r.store, store.QuizSets)
	if err != nil {
		return nil, err
	}
	var result []model.QuizSet
	for i := range quizSets {
		if quizSets[i].CreatedBy == userID {
			result = append(result, quizSets[i])
		}
	}
	return result, nil
}

func (r *QuizSetRepository) ListAll() ([]model.QuizSet, error) {
	return store.Load[model.QuizSet](r.store, store.QuizSets)
}

// Delete 删除测验集；关联的答题记录保留，由读取方容忍空洞
func (r *QuizSetRepository) Delete(id string) error {
	return store.Update(r.store, store.QuizSets, func(quizSets []model.QuizSet) ([]model.QuizSet, error) {
		kept := quizSets[:0]
		for i := range quizSets {
			if quizSets[i].ID != id {
				kept = append(kept, quizSets[i])
			}
		}
		return kept, nil
	})
}

func (r *QuizSetRepository) Count() (int, error) {
	quizSets, err := store.Load[model.QuizSet](r.store, store.QuizSets)
	if err != nil {
		return 0, err
	}
	return len(quizSets), nil
}
