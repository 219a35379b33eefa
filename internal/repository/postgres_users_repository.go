package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/infrastructure/database"
)

// uniqueViolation は PostgreSQL の一意制約違反コード
const uniqueViolation = "23505"

type PostgresUsersRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresUsersRepository(client *database.PostgreSQLClient) repository.UsersRepository {
	return &PostgresUsersRepository{
		client: client,
	}
}

func (r *PostgresUsersRepository) Create(ctx context.Context, email, passwordHash string, displayName *string) (*model.User, error) {
	query := `INSERT INTO users(id, email, password_hash, display_name)
	          VALUES($1, $2, $3, $4) RETURNING id, email, display_name, created_at`

	var user model.User
	var name sql.NullString
	err := r.client.DB.QueryRowContext(ctx, query, uuid.New().String(), email, passwordHash, displayName).
		Scan(&user.ID, &user.Email, &name, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, repository.ErrEmailExists
		}
		return nil, fmt.Errorf("ユーザーの作成失敗: %w", err)
	}
	if name.Valid {
		user.DisplayName = &name.String
	}
	return &user, nil
}

func (r *PostgresUsersRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, password_hash, display_name, created_at FROM users WHERE email = $1`
	return r.scanUser(r.client.DB.QueryRowContext(ctx, query, email))
}

func (r *PostgresUsersRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, email, password_hash, display_name, created_at FROM users WHERE id = $1`
	return r.scanUser(r.client.DB.QueryRowContext(ctx, query, id))
}

func (r *PostgresUsersRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var name sql.NullString
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得失敗: %w", err)
	}
	if name.Valid {
		user.DisplayName = &name.String
	}
	return &user, nil
}
