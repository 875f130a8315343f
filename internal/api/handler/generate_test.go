package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/quizgen_go_server/config"
	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/pkg/gemini"
	"github.com/qs3c/quizgen_go_server/internal/pkg/response"
	"github.com/qs3c/quizgen_go_server/internal/repository"
	"github.com/qs3c/quizgen_go_server/internal/service"
	"github.com/qs3c/quizgen_go_server/internal/store"
	"github.com/qs3c/quizgen_go_server/internal/testutil"
)

type stubGenerator struct {
	quiz *gemini.QuizData
	err  error
}

func (g *stubGenerator) GenerateQuiz(_ context.Context, _ string) (*gemini.QuizData, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.quiz, nil
}

func uploadConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxSize:           10 * 1024 * 1024,
			AllowedExtensions: []string{".pdf"},
		},
	}
}

func setupGenerateHandler(t *testing.T, gen *stubGenerator) (*GenerateHandler, *store.Store) {
	t.Helper()

	s := testutil.SetupTestStore(t)
	usageService := service.NewUsageService(
		repository.NewUsageLogRepository(s),
		repository.NewMonthlyUsageRepository(s),
	)
	generateService := service.NewGenerateService(gen, usageService)
	return NewGenerateHandler(generateService, uploadConfig()), s
}

func TestGenerateHandler_Generate_Success(t *testing.T) {
	gen := &stubGenerator{quiz: &gemini.QuizData{
		Title:     "Photosynthesis Quiz",
		Questions: []gemini.QuizQuestion{{ID: 1, Question: "Q?"}},
	}}
	handler, s := setupGenerateHandler(t, gen)
	user := testutil.TestUser(t, s)

	router := gin.New()
	router.POST("/ai/generate", stubAuth(user.ID), handler.Generate)

	w := performRequest(router, "POST", "/ai/generate", dto.GenerateRequest{Prompt: "Photosynthesis"})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestGenerateHandler_Generate_EmptyPrompt(t *testing.T) {
	gen := &stubGenerator{quiz: &gemini.QuizData{Title: "T"}}
	handler, s := setupGenerateHandler(t, gen)
	user := testutil.TestUser(t, s)

	router := gin.New()
	router.POST("/ai/generate", stubAuth(user.ID), handler.Generate)

	w := performRequest(router, "POST", "/ai/generate", map[string]string{})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestGenerateHandler_Generate_LimitReached(t *testing.T) {
	gen := &stubGenerator{quiz: &gemini.QuizData{Title: "T"}}
	handler, s := setupGenerateHandler(t, gen)
	user := testutil.TestUser(t, s)

	month := time.Now().UTC().Format("2006-01")
	testutil.TestMonthlyUsage(t, s, user.ID, month, service.MonthlyLimit, 0.10)

	router := gin.New()
	router.POST("/ai/generate", stubAuth(user.ID), handler.Generate)

	w := performRequest(router, "POST", "/ai/generate", dto.GenerateRequest{Prompt: "Photosynthesis"})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeQuotaExceeded, resp.Code)
}

func TestGenerateHandler_Generate_UpstreamFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	handler, s := setupGenerateHandler(t, gen)
	user := testutil.TestUser(t, s)

	router := gin.New()
	router.POST("/ai/generate", stubAuth(user.ID), handler.Generate)

	w := performRequest(router, "POST", "/ai/generate", dto.GenerateRequest{Prompt: "Photosynthesis"})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeServerError, resp.Code)
}

func performUpload(t *testing.T, r http.Handler, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateHandler_Upload_NoFile(t *testing.T) {
	gen := &stubGenerator{quiz: &gemini.QuizData{Title: "T"}}
	handler, s := setupGenerateHandler(t, gen)
	user := testutil.TestUser(t, s)

	router := gin.New()
	router.POST("/ai/upload", stubAuth(user.ID), handler.Upload)

	w := performRequest(router, "POST", "/ai/upload", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestGenerateHandler_Upload_WrongExtension(t *testing.T) {
	gen := &stubGenerator{quiz: &gemini.QuizData{Title: "T"}}
	handler, s := setupGenerateHandler(t, gen)
	user := testutil.TestUser(t, s)

	router := gin.New()
	router.POST("/ai/upload", stubAuth(user.ID), handler.Upload)

	w := performUpload(t, router, "/ai/upload", "notes.txt", []byte("plain text"))
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestGenerateHandler_Upload_CorruptPDF(t *testing.T) {
	gen := &stubGenerator{quiz: &gemini.QuizData{Title: "T"}}
	handler, s := setupGenerateHandler(t, gen)
	user := testutil.TestUser(t, s)

	router := gin.New()
	router.POST("/ai/upload", stubAuth(user.ID), handler.Upload)

	w := performUpload(t, router, "/ai/upload", "broken.pdf", []byte("not a real pdf"))
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}
