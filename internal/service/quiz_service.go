package service

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/repository"
)

var (
	ErrQuizNotFound   = errors.New("测验不存在")
	ErrQuizPermission = errors.New("无权操作此测验")
)

type QuizService struct {
	quizSetRepo *repository.QuizSetRepository
	attemptRepo *repository.QuizAttemptRepository
	userRepo    *repository.UserRepository
}

func NewQuizService(
	quizSetRepo *repository.QuizSetRepository,
	attemptRepo *repository.QuizAttemptRepository,
	userRepo *repository.UserRepository,
) *QuizService {
	return &QuizService{
		quizSetRepo: quizSetRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
	}
}

// Create 保存一套生成好的测验，题目 payload 原样序列化存储
func (s *QuizService) Create(userID string, req *dto.CreateQuizSetRequest) (*model.QuizSet, error) {
	quizSet := &model.QuizSet{
		Title:       req.Title,
		Description: req.Description,
		Questions:   string(req.Questions),
		CreatedBy:   userID,
	}
	if err := s.quizSetRepo.Create(quizSet); err != nil {
		return nil, err
	}
	return quizSet, nil
}

// List 列出用户创建的测验，附带每套的答题次数
func (s *QuizService) List(userID string) ([]*dto.QuizSetListItem, error) {
	quizSets, err := s.quizSetRepo.ListByCreator(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.QuizSetListItem, 0, len(quizSets))
	for i := range quizSets {
		count, err := s.attemptRepo.CountByQuizSet(quizSets[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &dto.QuizSetListItem{
			ID:           quizSets[i].ID,
			Title:        quizSets[i].Title,
			Description:  quizSets[i].Description,
			CreatedAt:    quizSets[i].CreatedAt,
			UpdatedAt:    quizSets[i].UpdatedAt,
			AttemptCount: count,
		})
	}
	return items, nil
}

// Get 获取测验详情并解析题目。创建者查不到时 Creator 为 nil，
// 测验本身照常返回。
func (s *QuizService) Get(quizSetID string) (*dto.QuizSetDetail, error) {
	quizSet, err := s.quizSetRepo.GetByID(quizSetID)
	if err != nil {
		return nil, err
	}
	if quizSet == nil {
		return nil, ErrQuizNotFound
	}

	detail := &dto.QuizSetDetail{
		ID:          quizSet.ID,
		Title:       quizSet.Title,
		Description: quizSet.Description,
		Questions:   json.RawMessage(quizSet.Questions),
		CreatedBy:   quizSet.CreatedBy,
		CreatedAt:   quizSet.CreatedAt,
		UpdatedAt:   quizSet.UpdatedAt,
	}

	creator, err := s.userRepo.GetByID(quizSet.CreatedBy)
	if err != nil {
		return nil, err
	}
	if creator != nil {
		detail.Creator = &dto.CreatorInfo{Name: creator.Name, Email: creator.Email}
	}
	return detail, nil
}

// Delete 只允许创建者删除；已有的答题记录保留
func (s *QuizService) Delete(userID, quizSetID string) error {
	quizSet, err := s.quizSetRepo.GetByID(quizSetID)
	if err != nil {
		return err
	}
	if quizSet == nil {
		return ErrQuizNotFound
	}
	if quizSet.CreatedBy != userID {
		return ErrQuizPermission
	}
	return s.quizSetRepo.Delete(quizSetID)
}

// SubmitAttempt 原样保存答题结果。分数来自客户端，服务端不重算，
// 也不检查 quizSetID 是否仍然存在。
func (s *QuizService) SubmitAttempt(userID, quizSetID string, req *dto.SubmitAttemptRequest) (*model.QuizAttempt, error) {
	attempt := &model.QuizAttempt{
		UserID:         userID,
		QuizSetID:      quizSetID,
		Answers:        string(req.Answers),
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// ListAttempts 答题历史，按完成时间倒序，并补上测验摘要。
// 测验已被删除时 QuizSet 为 nil，前端显示为"已删除的测验"。
func (s *QuizService) ListAttempts(userID string) ([]*dto.AttemptHistoryItem, error) {
	attempts, err := s.attemptRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AttemptHistoryItem, 0, len(attempts))
	for i := range attempts {
		item := &dto.AttemptHistoryItem{
			ID:             attempts[i].ID,
			QuizSetID:      attempts[i].QuizSetID,
			Answers:        json.RawMessage(attempts[i].Answers),
			Score:          attempts[i].Score,
			TotalQuestions: attempts[i].TotalQuestions,
			CompletedAt:    attempts[i].CompletedAt,
		}

		quizSet, err := s.quizSetRepo.GetByID(attempts[i].QuizSetID)
		if err != nil {
			return nil, err
		}
		if quizSet != nil {
			item.QuizSet = &dto.AttemptQuizInfo{
				Title:       quizSet.Title,
				Description: quizSet.Description,
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CompletedAt.After(items[b].CompletedAt)
	})
	return items, nil
}
