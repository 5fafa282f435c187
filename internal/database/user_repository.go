package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

// userColumns must match the Scan order in scanUser.
const userColumns = `id, discord_id, username, discriminator, avatar, is_admin, created_at, updated_at`

// UserRepo implements domain.UserRepository backed by PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.DiscordID, &user.Username, &user.Discriminator,
		&user.Avatar, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Upsert(ctx context.Context, discordID, username, discriminator, avatar string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (discord_id, username, discriminator, avatar)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (discord_id) DO UPDATE SET
			username = EXCLUDED.username,
			discriminator = EXCLUDED.discriminator,
			avatar = EXCLUDED.avatar,
			updated_at = NOW()
		RETURNING `+userColumns,
		discordID, username, discriminator, avatar))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE discord_id = $1`, discordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) List(ctx context.Context, page, limit int) ([]domain.User, int, error) {
	offset := (page - 1) * limit

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.DiscordID, &user.Username, &user.Discriminator,
			&user.Avatar, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepo) Update(ctx context.Context, discordID, username, discriminator, avatar string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET
			username = COALESCE(NULLIF($2, ''), username),
			discriminator = COALESCE(NULLIF($3, ''), discriminator),
			avatar = COALESCE(NULLIF($4, ''), avatar),
			updated_at = NOW()
		WHERE discord_id = $1
		RETURNING `+userColumns,
		discordID, username, discriminator, avatar))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) Delete(ctx context.Context, discordID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE discord_id = $1`, discordID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
