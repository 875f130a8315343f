package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/qs3c/quizgen_go_server/config"
	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/model/dto"
	"github.com/qs3c/quizgen_go_server/internal/pkg/jwt"
	"github.com/qs3c/quizgen_go_server/internal/pkg/oauth"
	"github.com/qs3c/quizgen_go_server/internal/repository"
	"github.com/qs3c/quizgen_go_server/internal/telemetry"
)

var (
	ErrInvalidState = errors.New("state 校验失败")
	ErrNoEmail      = errors.New("Google 账号缺少邮箱")
)

const providerGoogle = "google"

type AuthService struct {
	userRepo    *repository.UserRepository
	accountRepo *repository.AccountRepository
	sessionRepo *repository.SessionRepository
	monthlyRepo *repository.MonthlyUsageRepository
	cfg         *config.Config
	googleOAuth *oauth.GoogleOAuth
	stateStore  *oauth.StateStore
	now         func() time.Time
}

func NewAuthService(
	userRepo *repository.UserRepository,
	accountRepo *repository.AccountRepository,
	sessionRepo *repository.SessionRepository,
	monthlyRepo *repository.MonthlyUsageRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		monthlyRepo: monthlyRepo,
		cfg:         cfg,
		googleOAuth: oauth.NewGoogleOAuth(
			cfg.OAuth.Google.ClientID,
			cfg.OAuth.Google.ClientSecret,
			cfg.OAuth.Google.RedirectURI,
		),
		stateStore: oauth.NewStateStore(),
		now:        time.Now,
	}
}

// GetAuthURL 生成 Google 授权跳转地址
func (s *AuthService) GetAuthURL() (*dto.AuthURLResponse, error) {
	state, err := s.stateStore.GenerateState()
	if err != nil {
		return nil, err
	}
	return &dto.AuthURLResponse{
		AuthURL: s.googleOAuth.GetAuthURL(state),
		State:   state,
	}, nil
}

// HandleCallback 处理 Google 回调：换 token、取用户信息、
// 按邮箱查找或创建用户、补账号绑定、落会话、签发 JWT。
// 新用户同时初始化当月用量行。
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, error) {
	if err := s.stateStore.ValidateState(state); err != nil {
		return nil, ErrInvalidState
	}

	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	gu, err := s.googleOAuth.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if gu.Email == "" {
		return nil, ErrNoEmail
	}

	user, err := s.userRepo.GetByEmail(gu.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &model.User{
			Email: gu.Email,
			Name:  gu.Name,
			Image: gu.Picture,
			Role:  model.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			// 并发回调撞上唯一性检查时重读即可
			if errors.Is(err, repository.ErrEmailExists) {
				user, err = s.userRepo.GetByEmail(gu.Email)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		} else {
			// 新用户初始化当月用量行
			initial := &model.MonthlyUsage{
				UserID:    user.ID,
				MonthYear: s.now().UTC().Format("2006-01"),
			}
			if err := s.monthlyRepo.Create(initial); err != nil && !errors.Is(err, repository.ErrMonthlyUsageExists) {
				return nil, err
			}
			telemetry.L().Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user_created")
		}
	}

	// 首次用该提供方登录时补一条绑定记录
	account, err := s.accountRepo.GetByUserAndProvider(user.ID, providerGoogle)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = &model.Account{
			UserID:            user.ID,
			Type:              "oauth",
			Provider:          providerGoogle,
			ProviderAccountID: gu.ID,
			AccessToken:       token.AccessToken,
			RefreshToken:      token.RefreshToken,
			TokenType:         token.TokenType,
		}
		if !token.Expiry.IsZero() {
			account.ExpiresAt = token.Expiry.Unix()
		}
		if err := s.accountRepo.Create(account); err != nil {
			return nil, err
		}
	}

	session := &model.Session{
		SessionToken: uuid.NewString(),
		UserID:       user.ID,
		Expires:      s.now().UTC().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	jwtToken, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:        jwtToken,
		SessionToken: session.SessionToken,
		User: dto.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Image: user.Image,
			Role:  user.Role,
		},
	}, nil
}

// Logout 退出登录，删除会话记录
func (s *AuthService) Logout(sessionToken string) error {
	return s.sessionRepo.DeleteByToken(sessionToken)
}
