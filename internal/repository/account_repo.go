package repository

import (
	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

type AccountRepository struct {
	store *store.Store
}

func NewAccountRepository(s *store.Store) *AccountRepository {
	return &AccountRepository{store: s}
}

func (r *AccountRepository) Create(account *model.Account) error {
	account.ID = store.NewID()
	return store.Update(r.store, store.Accounts, func(accounts []model.Account) ([]model.Account, error) {
		return append(accounts, *account), nil
	})
}

// GetByUserAndProvider 查找用户在某个身份提供方下的绑定记录
func (r *AccountRepository) GetByUserAndProvider(userID, provider string) (*model.Account, error) {
	accounts, err := store.Load[model.Account](r.store, store.Accounts)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].UserID == userID && accounts[i].Provider == provider {
			return &accounts[i], nil
		}
	}
	return nil, nil
}
