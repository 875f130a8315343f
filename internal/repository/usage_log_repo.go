package repository

import (
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

// UsageLogRepository 只追加，日志行不更新不删除
type UsageLogRepository struct {
	store *store.Store
}

func NewUsageLogRepository(s *store.Store) *UsageLogRepository {
	return &UsageLogRepository{store: s}
}

func (r *UsageLogRepository) Create(log *model.UsageLog) error {
	log.ID = store.NewID()
	log.CreatedAt = time.Now().UTC()
	return store.Update(r.store, store.UsageLogs, func(logs []model.UsageLog) ([]model.UsageLog, error) {
		return append(logs, *log), nil
	})
}

func (r *UsageLogRepository) ListByUserMonth(userID, monthYear string) ([]model.UsageLog, error) {
	logs, err := store.Load[model.UsageLog](r.store, store.UsageLogs)
	if err != nil {
		return nil, err
	}
	var result []model.UsageLog
	for i := range logs {
		if logs[i].UserID == userID && logs[i].MonthYear == monthYear {
			result = append(result, logs[i])
		}
	}
	return result, nil
}

func (r *UsageLogRepository) Count() (int, error) {
	logs, err := store.Load[model.UsageLog](r.store, store.UsageLogs)
	if err != nil {
		return 0, err
	}
	return len(logs), nil
}
