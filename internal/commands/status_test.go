package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suraj89011/discord-bot-template/internal/bot"
	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

type stubStats struct {
	overview *domain.StatsOverview
	err      error
}

func (s *stubStats) GetStats(context.Context) (*domain.StatsOverview, error) {
	return s.overview, s.err
}

func statusFixture(t *testing.T, deps Deps, clock clockwork.Clock) *bot.Command {
	t.Helper()
	registry := bot.NewRegistry()
	require.NoError(t, registry.Register(Ping()))
	cmd := Status(registry, deps, clock)
	require.NoError(t, registry.Register(cmd))
	return cmd
}

func TestStatus_DefersThenEdits(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cmd := statusFixture(t, Deps{DB: &stubPinger{}, Redis: &stubPinger{}}, clock)
	assert.Equal(t, 10*time.Second, cmd.Cooldown)

	r := &fakeResponder{}
	err := cmd.Handler(context.Background(), nil, commandInteraction("status", "guild-1"), r)
	require.NoError(t, err)

	assert.True(t, r.deferred, "status must acknowledge before gathering health")
	require.Len(t, r.edits, 1)
	require.Len(t, r.edits[0].embeds, 1)
	assert.Equal(t, "📊 Bot Status", r.edits[0].embeds[0].Title)
}

func TestStatus_ReportsUptimeFromClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cmd := statusFixture(t, Deps{DB: &stubPinger{}, Redis: &stubPinger{}}, clock)

	clock.Advance(90 * time.Second)

	r := &fakeResponder{}
	require.NoError(t, cmd.Handler(context.Background(), nil, commandInteraction("status", "guild-1"), r))

	embed := r.edits[0].embeds[0]
	assert.Contains(t, embed.Fields[0].Value, "**Uptime:** 1m 30s")
	assert.Contains(t, embed.Fields[0].Value, "**Commands:** 2")
}

func TestStatus_ServiceHealthMarks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	deps := Deps{
		DB:    &stubPinger{},
		Redis: &stubPinger{err: errors.New("connection refused")},
	}
	cmd := statusFixture(t, deps, clock)

	r := &fakeResponder{}
	require.NoError(t, cmd.Handler(context.Background(), nil, commandInteraction("status", "guild-1"), r))

	embed := r.edits[0].embeds[0]
	services := embed.Fields[2].Value
	assert.Contains(t, services, "**Database:** ✅ Connected")
	assert.Contains(t, services, "**Redis:** ❌ Disconnected")
	assert.Contains(t, services, "**Discord:** ❌ Disconnected")
}

func TestStatus_CountsViaStatsSource(t *testing.T) {
	overview := &domain.StatsOverview{Users: 7}
	overview.Servers.Total = 3
	clock := clockwork.NewFakeClock()
	cmd := statusFixture(t, Deps{Stats: &stubStats{overview: overview}}, clock)

	r := &fakeResponder{}
	require.NoError(t, cmd.Handler(context.Background(), nil, commandInteraction("status", "guild-1"), r))

	info := r.edits[0].embeds[0].Fields[0].Value
	assert.Contains(t, info, "**Known Users:** 7")
	assert.Contains(t, info, "**Known Servers:** 3")
}

func TestStatus_CountsFallBackToRepositories(t *testing.T) {
	repo := newMockServerRepo()
	seedServer(repo, "guild-1", "Test Guild")
	deps := Deps{
		Stats:   &stubStats{err: errors.New("api unreachable")},
		Users:   &mockUserRepo{count: 11},
		Servers: repo,
	}
	cmd := statusFixture(t, deps, clockwork.NewFakeClock())

	r := &fakeResponder{}
	require.NoError(t, cmd.Handler(context.Background(), nil, commandInteraction("status", "guild-1"), r))

	info := r.edits[0].embeds[0].Fields[0].Value
	assert.Contains(t, info, "**Known Users:** 11")
	assert.Contains(t, info, "**Known Servers:** 1")
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0s", formatUptime(0))
	assert.Equal(t, "45s", formatUptime(45*time.Second))
	assert.Equal(t, "2m 5s", formatUptime(125*time.Second))
	assert.Equal(t, "1h 1m 1s", formatUptime(time.Hour+61*time.Second))
	assert.Equal(t, "2d 3h 0s", formatUptime(51*time.Hour))
}
