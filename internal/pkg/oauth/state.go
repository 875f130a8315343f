package oauth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const stateTTL = 10 * time.Minute

// StateStore 管理 OAuth state 参数，防 CSRF。
// 单进程部署，内存表即可；过期条目在下次生成时顺带清理。
type StateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[string]time.Time),
	}
}

// GenerateState 生成随机 state 并登记过期时间
func (s *StateStore) GenerateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random state: %w", err)
	}
	state := hex.EncodeToString(bytes)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, expires := range s.states {
		if now.After(expires) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(stateTTL)

	return state, nil
}

// ValidateState 校验并消费 state，防止重放
func (s *StateStore) ValidateState(state string) error {
	if state == "" {
		return fmt.Errorf("empty state parameter")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.states[state]
	if !ok {
		return fmt.Errorf("invalid or expired state")
	}
	delete(s.states, state)

	if time.Now().After(expires) {
		return fmt.Errorf("invalid or expired state")
	}
	return nil
}
