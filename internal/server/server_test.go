package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Suraj89011/discord-bot-template/internal/config"
	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

const testAPIKey = "test-api-key-0123456789"

// stubPinger reports fixed health for the health endpoints.
type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

// mockUserRepo is an in-memory domain.UserRepository.
type mockUserRepo struct {
	users map[string]*domain.User
	// listErr forces failures to exercise error handling.
	listErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Upsert(_ context.Context, discordID, username, discriminator, avatar string) (*domain.User, error) {
	user, ok := m.users[discordID]
	if !ok {
		user = &domain.User{ID: uuid.New(), DiscordID: discordID}
		m.users[discordID] = user
	}
	user.Username = username
	user.Discriminator = discriminator
	user.Avatar = avatar
	return user, nil
}

func (m *mockUserRepo) GetByDiscordID(_ context.Context, discordID string) (*domain.User, error) {
	user, ok := m.users[discordID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepo) List(_ context.Context, page, limit int) ([]domain.User, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	users := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, len(m.users), nil
}

func (m *mockUserRepo) Update(_ context.Context, discordID, username, discriminator, avatar string) (*domain.User, error) {
	user, ok := m.users[discordID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Username = username
	user.Discriminator = discriminator
	user.Avatar = avatar
	return user, nil
}

func (m *mockUserRepo) Delete(_ context.Context, discordID string) error {
	if _, ok := m.users[discordID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, discordID)
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

// mockServerRepo is an in-memory domain.ServerRepository.
type mockServerRepo struct {
	servers map[string]*domain.Server
}

func newMockServerRepo() *mockServerRepo {
	return &mockServerRepo{servers: make(map[string]*domain.Server)}
}

func (m *mockServerRepo) Upsert(_ context.Context, discordID, name string, memberCount int, ownerID string) (*domain.Server, error) {
	server, ok := m.servers[discordID]
	if !ok {
		server = &domain.Server{
			ID:        uuid.New(),
			DiscordID: discordID,
			Settings:  &domain.ServerSettings{Prefix: "!"},
		}
		m.servers[discordID] = server
	}
	server.Name = name
	server.MemberCount = memberCount
	server.OwnerID = ownerID
	server.IsActive = true
	return server, nil
}

func (m *mockServerRepo) GetByDiscordID(_ context.Context, discordID string) (*domain.Server, error) {
	server, ok := m.servers[discordID]
	if !ok {
		return nil, domain.ErrServerNotFound
	}
	return server, nil
}

func (m *mockServerRepo) List(_ context.Context, page, limit int, active *bool) ([]domain.Server, int, error) {
	var servers []domain.Server
	for _, s := range m.servers {
		if active != nil && s.IsActive != *active {
			continue
		}
		servers = append(servers, *s)
	}
	return servers, len(servers), nil
}

func (m *mockServerRepo) SetActive(_ context.Context, discordID string, active bool) error {
	server, ok := m.servers[discordID]
	if !ok {
		return domain.ErrServerNotFound
	}
	server.IsActive = active
	return nil
}

func (m *mockServerRepo) UpdateSettings(_ context.Context, discordID string, update domain.SettingsUpdate) (*domain.ServerSettings, error) {
	server, ok := m.servers[discordID]
	if !ok {
		return nil, domain.ErrServerNotFound
	}
	if server.Settings == nil {
		server.Settings = &domain.ServerSettings{Prefix: "!"}
	}
	if update.Prefix != nil {
		server.Settings.Prefix = *update.Prefix
	}
	if update.LogChannelID != nil {
		server.Settings.LogChannelID = *update.LogChannelID
	}
	return server.Settings, nil
}

func (m *mockServerRepo) Count(_ context.Context, active *bool) (int, error) {
	count := 0
	for _, s := range m.servers {
		if active != nil && s.IsActive != *active {
			continue
		}
		count++
	}
	return count, nil
}

// mockUsageRepo serves canned command statistics.
type mockUsageRepo struct {
	stats []domain.CommandStat
}

func (m *mockUsageRepo) Record(context.Context, string, string, string) error { return nil }

func (m *mockUsageRepo) TopCommands(_ context.Context, _ time.Time, _ int) ([]domain.CommandStat, error) {
	return m.stats, nil
}

type testFixture struct {
	srv     *Server
	users   *mockUserRepo
	servers *mockServerRepo
	usage   *mockUsageRepo
	clock   *clockwork.FakeClock
}

func testConfig() *config.Config {
	return &config.Config{
		APIPort:            "3000",
		APIKey:             testAPIKey,
		RateLimitPerMinute: 100,
	}
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	users := newMockUserRepo()
	servers := newMockServerRepo()
	usage := &mockUsageRepo{}
	clock := clockwork.NewFakeClock()

	srv := New(testConfig(), Deps{
		Users:   users,
		Servers: servers,
		Usage:   usage,
		DB:      &stubPinger{},
		Redis:   &stubPinger{},
		Clock:   clock,
	})
	return &testFixture{srv: srv, users: users, servers: servers, usage: usage, clock: clock}
}

// doRequest runs a request through the full middleware chain with a
// valid API key attached.
func (f *testFixture) doRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(apiKeyHeader, testAPIKey)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.srv.echo.ServeHTTP(rec, req)
	return rec
}

func (f *testFixture) doUnauthenticated(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	f.srv.echo.ServeHTTP(rec, req)
	return rec
}
