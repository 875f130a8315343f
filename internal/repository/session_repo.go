package repository

import (
	"errors"
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

var ErrSessionTokenExists = errors.New("会话令牌已存在")

type SessionRepository struct {
	store *store.Store
}

func NewSessionRepository(s *store.Store) *SessionRepository {
	return &SessionRepository{store: s}
}

// Create 创建会话，sessionToken 由调用方生成。
// 令牌唯一性在集合锁内检查。
func (r *SessionRepository) Create(session *model.Session) error {
	session.ID = store.NewID()
	return store.Update(r.store, store.Sessions, func(sessions []model.Session) ([]model.Session, error) {
		for i := range sessions {
			if sessions[i].SessionToken == session.SessionToken {
				return nil, ErrSessionTokenExists
			}
		}
		return append(sessions, *session), nil
	})
}

func (r *SessionRepository) GetByToken(token string) (*model.Session, error) {
	sessions, err := store.Load[model.Session](r.store, store.Sessions)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].SessionToken == token {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// DeleteByToken 登出时删除会话，令牌不存在也不算错误
func (r *SessionRepository) DeleteByToken(token string) error {
	return store.Update(r.store, store.Sessions, func(sessions []model.Session) ([]model.Session, error) {
		kept := sessions[:0]
		for i := range sessions {
			if sessions[i].SessionToken != token {
				kept = append(kept, sessions[i])
			}
		}
		return kept, nil
	})
}

// DeleteExpired 删除过期会话，返回删除条数
func (r *SessionRepository) DeleteExpired(now time.Time) (int, error) {
	removed := 0
	err := store.Update(r.store, store.Sessions, func(sessions []model.Session) ([]model.Session, error) {
		kept := sessions[:0]
		for i := range sessions {
			if sessions[i].Expires.After(now) {
				kept = append(kept, sessions[i])
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
