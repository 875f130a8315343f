package testutil

import (
	"testing"

	"github.com/qs3c/quizgen_go_server/internal/store"
)

// SetupTestStore 在临时目录上创建文件存储，目录随测试结束自动清理
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return s
}
