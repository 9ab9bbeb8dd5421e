package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-api/internal/model"
	apperrors "github.com/synapsehq/synapse-api/pkg/errors"
)

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.Stamp(time.Now())
	query := `
		INSERT INTO users (name, email, password_hash, user_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.UserType,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, user_type, created_at, updated_at FROM users WHERE id = $1`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, notFound(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, user_type, created_at, updated_at FROM users WHERE email = $1`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("User", "user with email %s not found", email)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.Stamp(time.Now())
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, user_type = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.UserType,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return ensureAffected(res, "User", user.ID)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return ensureAffected(res, "User", id)
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT id, name, email, password_hash, user_type, created_at, updated_at FROM users ORDER BY id ASC`
	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
