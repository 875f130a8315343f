package repository

import (
	"errors"
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

var ErrMonthlyUsageExists = errors.New("当月用量记录已存在")

type MonthlyUsageRepository struct {
	store *store.Store
}

func NewMonthlyUsageRepository(s *store.Store) *MonthlyUsageRepository {
	return &MonthlyUsageRepository{store: s}
}

func (r *MonthlyUsageRepository) GetByUserMonth(userID, monthYear string) (*model.MonthlyUsage, error) {
	rows, err := store.Load[model.MonthlyUsage](r.store, store.MonthlyUsage)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].UserID == userID && rows[i].MonthYear == monthYear {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// Create 创建月度用量行，(userId, monthYear) 已存在时返回 ErrMonthlyUsageExists
func (r *MonthlyUsageRepository) Create(usage *model.MonthlyUsage) error {
	usage.ID = store.NewID()
	usage.LastUpdated = time.Now().UTC()
	return store.Update(r.store, store.MonthlyUsage, func(rows []model.MonthlyUsage) ([]model.MonthlyUsage, error) {
		for i := range rows {
			if rows[i].UserID == usage.UserID && rows[i].MonthYear == usage.MonthYear {
				return nil, ErrMonthlyUsageExists
			}
		}
		return append(rows, *usage), nil
	})
}

// UpsertIncrement 对 (userId, monthYear) 的行执行 totalPrompts+1、totalCost+costDelta，
// 不存在则新建 totalPrompts=1 的行。整段读-改-写持有集合锁，
// 并发计费不会互相覆盖计数。
func (r *MonthlyUsageRepository) UpsertIncrement(userID, monthYear string, costDelta float64) (*model.MonthlyUsage, error) {
	var result *model.MonthlyUsage
	err := store.Update(r.store, store.MonthlyUsage, func(rows []model.MonthlyUsage) ([]model.MonthlyUsage, error) {
		now := time.Now().UTC()
		for i := range rows {
			if rows[i].UserID == userID && rows[i].MonthYear == monthYear {
				rows[i].TotalPrompts++
				rows[i].TotalCost += costDelta
				rows[i].LastUpdated = now
				row := rows[i]
				result = &row
				return rows, nil
			}
		}
		row := model.MonthlyUsage{
			ID:           store.NewID(),
			UserID:       userID,
			MonthYear:    monthYear,
			TotalPrompts: 1,
			TotalCost:    costDelta,
			LastUpdated:  now,
		}
		result = &row
		return append(rows, row), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteOlderThan 归档清理：删除 monthYear 早于 cutoff（"YYYY-MM"，字典序即时间序）的行
func (r *MonthlyUsageRepository) DeleteOlderThan(cutoffMonth string) (int, error) {
	removed := 0
	err := store.Update(r.store, store.MonthlyUsage, func(rows []model.MonthlyUsage) ([]model.MonthlyUsage, error) {
		kept := rows[:0]
		for i := range rows {
			if rows[i].MonthYear >= cutoffMonth {
				kept = append(kept, rows[i])
			} else {
				removed++
			}
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
