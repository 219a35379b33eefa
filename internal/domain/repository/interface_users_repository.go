package repository

import (
	"context"
	"errors"

	"ViviCity-App/internal/domain/model"
)

var (
	// ErrNotFound は対象が存在しないことを表す
	ErrNotFound = errors.New("not found")
	// ErrEmailExists はメールアドレスが登録済みであることを表す
	ErrEmailExists = errors.New("email exists")
)

type UsersRepository interface {
	Create(ctx context.Context, email, passwordHash string, displayName *string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
