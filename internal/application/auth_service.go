package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// AuthService 利用者登録・ログイン・トークン検証を提供するサービス
type AuthService interface {
	// Register 利用者を登録する（パスワードは bcrypt でハッシュ化）
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login 資格情報を検証して署名済みトークンを発行する
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// ParseToken トークンを検証して利用者情報を取り出す
	ParseToken(token string) (*model.TokenClaims, error)

	// Me トークンの利用者を取得する
	Me(ctx context.Context, userID string) (*model.User, error)
}

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// authServiceImpl AuthServiceの実装
type authServiceImpl struct {
	usersRepo repository.UsersRepository
	secret    []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService AuthServiceの新しいインスタンスを作成
// usersRepo が nil の場合はトークン検証だけを行う
func NewAuthService(usersRepo repository.UsersRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authServiceImpl{
		usersRepo: usersRepo,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if s.usersRepo == nil {
		return nil, ErrUsersStoreUnavailable
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email & password required", ErrMissingFields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}

	var displayName *string
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		displayName = &name
	}

	user, err := s.usersRepo.Create(ctx, email, string(hash), displayName)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ 利用者登録: %s", user.ID)
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if s.usersRepo == nil {
		return nil, ErrUsersStoreUnavailable
	}
	user, err := s.usersRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("利用者の取得に失敗: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := tokenClaims{
		ID:    user.ID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return &model.LoginResponse{Token: signed}, nil
}

func (s *authServiceImpl) ParseToken(token string) (*model.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return &model.TokenClaims{UserID: claims.ID, Email: claims.Email}, nil
}

func (s *authServiceImpl) Me(ctx context.Context, userID string) (*model.User, error) {
	if s.usersRepo == nil {
		return nil, ErrUsersStoreUnavailable
	}
	user, err := s.usersRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("利用者の取得に失敗: %w", err)
	}
	return user, nil
}
