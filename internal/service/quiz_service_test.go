package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/repository"
	"github.com/qs3c/quizgen_go_server/internal/store"
	"github.com/qs3c/quizgen_go_server/internal/testutil"
)

func setupQuizService(t *testing.T) (*QuizService, *store.Store) {
	t.Helper()

	s := testutil.SetupTestStore(t)
	service := NewQuizService(
		repository.NewQuizSetRepository(s),
		repository.NewQuizAttemptRepository(s),
		repository.NewUserRepository(s),
	)
	return service, s
}

func TestQuizService_CreateAndGet(t *testing.T) {
	service, s := setupQuizService(t)

	user := testutil.TestUser(t, s, testutil.WithName("Alice"))

	questions := `[{"id":1,"type":"true_false","question":"The sun is a star.","correct_answer":true,"explanation":"It is."}]`
	quizSet, err := service.Create(user.ID, &dto.CreateQuizSetRequest{
		Title:     "Astronomy",
		Questions: json.RawMessage(questions),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, quizSet.ID)

	detail, err := service.Get(quizSet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Astronomy", detail.Title)
	assert.JSONEq(t, questions, string(detail.Questions))
	require.NotNil(t, detail.Creator)
	assert.Equal(t, "Alice", detail.Creator.Name)
}

func TestQuizService_Get_NotFound(t *testing.T) {
	service, _ := setupQuizService(t)

	_, err := service.Get("no-such-id")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

// 创建者被删后详情依然可读，Creator 为 nil
func TestQuizService_Get_CreatorGone(t *testing.T) {
	service, s := setupQuizService(t)

	quizSet := testutil.TestQuizSet(t, s, "vanished-user")

	detail, err := service.Get(quizSet.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Creator)
	assert.Equal(t, quizSet.Title, detail.Title)
}

func TestQuizService_List_WithAttemptCounts(t *testing.T) {
	service, s := setupQuizService(t)

	user := testutil.TestUser(t, s)
	quizSet := testutil.TestQuizSet(t, s, user.ID)

	items, err := service.List(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].AttemptCount)

	testutil.TestAttempt(t, s, user.ID, quizSet.ID, 4, 5)

	items, err = service.List(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].AttemptCount)
}

func TestQuizService_Delete_OwnerOnly(t *testing.T) {
	service, s := setupQuizService(t)

	owner := testutil.TestUser(t, s)
	other := testutil.TestUser(t, s)
	quizSet := testutil.TestQuizSet(t, s, owner.ID)

	err := service.Delete(other.ID, quizSet.ID)
	assert.ErrorIs(t, err, ErrQuizPermission)

	require.NoError(t, service.Delete(owner.ID, quizSet.ID))

	_, err = service.Get(quizSet.ID)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizService_Delete_NotFound(t *testing.T) {
	service, s := setupQuizService(t)

	user := testutil.TestUser(t, s)

	err := service.Delete(user.ID, "no-such-id")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

// 分数由客户端上报，服务端原样保存，不做重算或范围校验
func TestQuizService_SubmitAttempt_ScoreNotValidated(t *testing.T) {
	service, s := setupQuizService(t)

	user := testutil.TestUser(t, s)
	quizSet := testutil.TestQuizSet(t, s, user.ID)

	attempt, err := service.SubmitAttempt(user.ID, quizSet.ID, &dto.SubmitAttemptRequest{
		Answers:        json.RawMessage(`{"0":1}`),
		Score:          7,
		TotalQuestions: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, attempt.Score)
	assert.Equal(t, 5, attempt.TotalQuestions)
}

func TestQuizService_ListAttempts_SortedDesc(t *testing.T) {
	service, s := setupQuizService(t)

	user := testutil.TestUser(t, s)
	quizSet := testutil.TestQuizSet(t, s, user.ID)

	first := testutil.TestAttempt(t, s, user.ID, quizSet.ID, 2, 5)
	time.Sleep(5 * time.Millisecond)
	second := testutil.TestAttempt(t, s, user.ID, quizSet.ID, 4, 5)

	items, err := service.ListAttempts(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	require.NotNil(t, items[0].QuizSet)
	assert.Equal(t, quizSet.Title, items[0].QuizSet.Title)
}

// 测验删除后历史记录保留，摘要字段为 nil
func TestQuizService_ListAttempts_DeletedQuiz(t *testing.T) {
	service, s := setupQuizService(t)

	user := testutil.TestUser(t, s)
	quizSet := testutil.TestQuizSet(t, s, user.ID)
	testutil.TestAttempt(t, s, user.ID, quizSet.ID, 3, 5)

	require.NoError(t, service.Delete(user.ID, quizSet.ID))

	items, err := service.ListAttempts(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].QuizSet)
	assert.Equal(t, 3, items[0].Score)
}
