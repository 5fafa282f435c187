package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

const serverColumns = `s.id, s.discord_id, s.name, s.member_count, s.owner_id, s.is_active, s.created_at, s.updated_at`

// ServerRepo implements domain.ServerRepository backed by PostgreSQL.
// Servers are soft-deleted: leaving a guild flips is_active.
type ServerRepo struct {
	pool *pgxpool.Pool
}

func NewServerRepo(pool *pgxpool.Pool) *ServerRepo {
	return &ServerRepo{pool: pool}
}

func scanServer(row pgx.Row) (*domain.Server, error) {
	var server domain.Server
	err := row.Scan(
		&server.ID, &server.DiscordID, &server.Name, &server.MemberCount,
		&server.OwnerID, &server.IsActive, &server.CreatedAt, &server.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &server, nil
}

func (r *ServerRepo) Upsert(ctx context.Context, discordID, name string, memberCount int, ownerID string) (*domain.Server, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	server, err := scanServer(tx.QueryRow(ctx, `
		INSERT INTO servers (discord_id, name, member_count, owner_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (discord_id) DO UPDATE SET
			name = EXCLUDED.name,
			member_count = EXCLUDED.member_count,
			is_active = TRUE,
			updated_at = NOW()
		RETURNING id, discord_id, name, member_count, owner_id, is_active, created_at, updated_at`,
		discordID, name, memberCount, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert server: %w", err)
	}

	// Every server carries a settings row with defaults.
	if _, err := tx.Exec(ctx, `
		INSERT INTO server_settings (server_id) VALUES ($1)
		ON CONFLICT (server_id) DO NOTHING`, server.ID); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return server, nil
}

func (r *ServerRepo) GetByDiscordID(ctx context.Context, discordID string) (*domain.Server, error) {
	server, err := scanServer(r.pool.QueryRow(ctx,
		`SELECT `+serverColumns+` FROM servers s WHERE s.discord_id = $1`, discordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServerNotFound
		}
		return nil, fmt.Errorf("failed to get server: %w", err)
	}

	settings, err := r.getSettings(ctx, server.ID.String())
	if err != nil {
		// A server without a settings row predates the default-settings
		// insert; treat it as unconfigured rather than broken.
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			return nil, err
		}
		settings = nil
	}
	server.Settings = settings
	return server, nil
}

func (r *ServerRepo) getSettings(ctx context.Context, serverID string) (*domain.ServerSettings, error) {
	var settings domain.ServerSettings
	err := r.pool.QueryRow(ctx, `
		SELECT server_id, prefix, log_channel_id, updated_at
		FROM server_settings WHERE server_id = $1`, serverID).Scan(
		&settings.ServerID, &settings.Prefix, &settings.LogChannelID, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}
	return &settings, nil
}

func (r *ServerRepo) List(ctx context.Context, page, limit int, active *bool) ([]domain.Server, int, error) {
	offset := (page - 1) * limit

	rows, err := r.pool.Query(ctx, `
		SELECT `+serverColumns+` FROM servers s
		WHERE ($1::BOOLEAN IS NULL OR s.is_active = $1)
		ORDER BY s.created_at DESC OFFSET $2 LIMIT $3`,
		active, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	var servers []domain.Server
	for rows.Next() {
		var server domain.Server
		if err := rows.Scan(
			&server.ID, &server.DiscordID, &server.Name, &server.MemberCount,
			&server.OwnerID, &server.IsActive, &server.CreatedAt, &server.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan server: %w", err)
		}
		servers = append(servers, server)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate servers: %w", err)
	}

	total, err := r.Count(ctx, active)
	if err != nil {
		return nil, 0, err
	}

	return servers, total, nil
}

func (r *ServerRepo) SetActive(ctx context.Context, discordID string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE servers SET is_active = $2, updated_at = NOW() WHERE discord_id = $1`,
		discordID, active)
	if err != nil {
		return fmt.Errorf("failed to update server activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServerNotFound
	}
	return nil
}

func (r *ServerRepo) UpdateSettings(ctx context.Context, discordID string, update domain.SettingsUpdate) (*domain.ServerSettings, error) {
	server, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var settings domain.ServerSettings
	err = r.pool.QueryRow(ctx, `
		INSERT INTO server_settings (server_id, prefix, log_channel_id)
		VALUES ($1, COALESCE($2, '!'), COALESCE($3, ''))
		ON CONFLICT (server_id) DO UPDATE SET
			prefix = COALESCE($2, server_settings.prefix),
			log_channel_id = COALESCE($3, server_settings.log_channel_id),
			updated_at = NOW()
		RETURNING server_id, prefix, log_channel_id, updated_at`,
		server.ID, update.Prefix, update.LogChannelID).Scan(
		&settings.ServerID, &settings.Prefix, &settings.LogChannelID, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update server settings: %w", err)
	}
	return &settings, nil
}

func (r *ServerRepo) Count(ctx context.Context, active *bool) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM servers WHERE ($1::BOOLEAN IS NULL OR is_active = $1)`,
		active).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count servers: %w", err)
	}
	return count, nil
}
