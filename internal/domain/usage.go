package domain

import (
	"context"
	"time"
)

// CommandStat is an aggregated usage count for one command.
type CommandStat struct {
	Command string `json:"command"`
	Uses    int    `json:"uses"`
}

type UsageRepository interface {
	Record(ctx context.Context, commandName, userDiscordID, guildDiscordID string) error
	TopCommands(ctx context.Context, since time.Time, limit int) ([]CommandStat, error)
}

// StatsOverview is the cached aggregate served by the stats endpoint.
type StatsOverview struct {
	Users   int `json:"users"`
	Servers struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		Inactive int `json:"inactive"`
	} `json:"servers"`
	Timestamp time.Time `json:"timestamp"`
}
