package service

import (
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/repository"
)

// MonthlyLimit 每用户每自然月的生成次数上限，全局固定策略
const MonthlyLimit = 10

type UsageService struct {
	usageLogRepo *repository.UsageLogRepository
	monthlyRepo  *repository.MonthlyUsageRepository
	now          func() time.Time
}

func NewUsageService(usageLogRepo *repository.UsageLogRepository, monthlyRepo *repository.MonthlyUsageRepository) *UsageService {
	return &UsageService{
		usageLogRepo: usageLogRepo,
		monthlyRepo:  monthlyRepo,
		now:          time.Now,
	}
}

// currentMonth 月度键只从当前墙钟时间推导（UTC），跨月自动翻页，不需要重置任务
func (s *UsageService) currentMonth() string {
	return s.now().UTC().Format("2006-01")
}

// CheckMonthlyLimit 检查当月配额，无记录视为零用量
func (s *UsageService) CheckMonthlyLimit(userID string) (bool, error) {
	usage, err := s.monthlyRepo.GetByUserMonth(userID, s.currentMonth())
	if err != nil {
		return false, err
	}
	if usage == nil {
		return true, nil
	}
	return usage.TotalPrompts < MonthlyLimit, nil
}

// GetCurrentUsage 当月用量快照，没有记录时 used = 0
func (s *UsageService) GetCurrentUsage(userID string) (*dto.UsageInfo, error) {
	usage, err := s.monthlyRepo.GetByUserMonth(userID, s.currentMonth())
	if err != nil {
		return nil, err
	}

	info := &dto.UsageInfo{Used: 0, Limit: MonthlyLimit}
	if usage != nil {
		info.Used = usage.TotalPrompts
	}
	return info, nil
}

// RecordUsage 记一笔计费动作：追加日志行，再对月度聚合做加一 upsert。
// 本方法不做限额判断，超限后直接调用依然会继续累加。
func (s *UsageService) RecordUsage(userID, action, promptText string, costEstimate float64) error {
	monthYear := s.currentMonth()

	log := &model.UsageLog{
		UserID:       userID,
		Action:       action,
		PromptText:   promptText,
		CostEstimate: costEstimate,
		MonthYear:    monthYear,
	}
	if err := s.usageLogRepo.Create(log); err != nil {
		return err
	}

	_, err := s.monthlyRepo.UpsertIncrement(userID, monthYear, costEstimate)
	return err
}
