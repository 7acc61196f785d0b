package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mapleleafu/lanerunner/models"
)

const uniqueViolation = "23505"

type PostgresUsers struct {
	db *sql.DB
}

func NewPostgresUsers(db *sql.DB) *PostgresUsers {
	return &PostgresUsers{db: db}
}

func (p *PostgresUsers) Create(ctx context.Context, username, passwordHash string) error {
	_, err := p.db.ExecContext(ctx, "INSERT INTO users (username, password) VALUES ($1, $2)", username, passwordHash)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *PostgresUsers) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := p.db.QueryRowContext(ctx, "SELECT id, username, password FROM users WHERE username = $1", username).
		Scan(&user.ID, &user.Username, &user.Password)
	return user, notFound(err, "find user")
}

func (p *PostgresUsers) FindByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := p.db.QueryRowContext(ctx, "SELECT id, username, password FROM users WHERE id = $1", id).
		Scan(&user.ID, &user.Username, &user.Password)
	return user, notFound(err, "find user")
}

func (p *PostgresUsers) SaveRefreshToken(ctx context.Context, token models.RefreshToken) error {
	_, err := p.db.ExecContext(ctx, "INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)",
		token.UserID, token.Token, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (p *PostgresUsers) FindRefreshToken(ctx context.Context, token string) (models.RefreshToken, error) {
	rt := models.RefreshToken{Token: token}
	err := p.db.QueryRowContext(ctx, "SELECT user_id, expires_at FROM refresh_tokens WHERE token = $1", token).
		Scan(&rt.UserID, &rt.ExpiresAt)
	return rt, notFound(err, "find refresh token")
}

func (p *PostgresUsers) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE token = $1", token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
