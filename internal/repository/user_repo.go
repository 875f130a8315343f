package repository

import (
	"errors"
	"time"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

var ErrEmailExists = errors.New("邮箱已被注册")

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// Create 创建用户并分配 ID 和时间戳。
// 邮箱唯一性在集合锁内检查，重复返回 ErrEmailExists。
func (r *UserRepository) Create(user *model.User) error {
	now := time.Now().UTC()
	user.ID = store.NewID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	return store.Update(r.store, store.Users, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].Email == user.Email {
				return nil, ErrEmailExists
			}
		}
		return append(users, *user), nil
	})
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	users, err := store.Load[model.User](r.store, store.Users)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetByEmail 按邮箱查找，命中多条时返回最早插入的一条
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	users, err := store.Load[model.User](r.store, store.Users)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// UserUpdate 部分更新字段，nil 表示不改
type UserUpdate struct {
	Name  *string
	Image *string
	Role  *string
}

// Update 合并部分字段并刷新 updatedAt，记录不存在时返回 (nil, nil)
func (r *UserRepository) Update(id string, upd UserUpdate) (*model.User, error) {
	var updated *model.User
	err := store.Update(r.store, store.Users, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			if upd.Name != nil {
				users[i].Name = *upd.Name
			}
			if upd.Image != nil {
				users[i].Image = *upd.Image
			}
			if upd.Role != nil {
				users[i].Role = *upd.Role
			}
			users[i].UpdatedAt = time.Now().UTC()
			u := users[i]
			updated = &u
			break
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *UserRepository) Count() (int, error) {
	users, err := store.Load[model.User](r.store, store.Users)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
