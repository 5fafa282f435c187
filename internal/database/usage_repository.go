package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

// UsageRepo implements domain.UsageRepository backed by PostgreSQL.
type UsageRepo struct {
	pool *pgxpool.Pool
}

func NewUsageRepo(pool *pgxpool.Pool) *UsageRepo {
	return &UsageRepo{pool: pool}
}

func (r *UsageRepo) Record(ctx context.Context, commandName, userDiscordID, guildDiscordID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO command_usage (command_name, user_discord_id, guild_discord_id)
		VALUES ($1, $2, $3)`,
		commandName, userDiscordID, guildDiscordID)
	if err != nil {
		return fmt.Errorf("failed to record command usage: %w", err)
	}
	return nil
}

func (r *UsageRepo) TopCommands(ctx context.Context, since time.Time, limit int) ([]domain.CommandStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT command_name, COUNT(*) AS uses
		FROM command_usage
		WHERE used_at >= $1
		GROUP BY command_name
		ORDER BY uses DESC
		LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query command stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.CommandStat
	for rows.Next() {
		var stat domain.CommandStat
		if err := rows.Scan(&stat.Command, &stat.Uses); err != nil {
			return nil, fmt.Errorf("failed to scan command stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate command stats: %w", err)
	}
	return stats, nil
}
