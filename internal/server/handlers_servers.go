package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
	apierrors "github.com/Suraj89011/discord-bot-template/internal/errors"
)

type serverPayload struct {
	DiscordID   string `json:"discordId"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
	OwnerID     string `json:"ownerId"`
}

type settingsPayload struct {
	Prefix       *string `json:"prefix"`
	LogChannelID *string `json:"logChannelId"`
}

func (s *Server) handleListServers(c echo.Context) error {
	page, limit, err := paginationParams(c)
	if err != nil {
		return err
	}

	var active *bool
	switch c.QueryParam("active") {
	case "":
	case "true":
		active = boolPtr(true)
	case "false":
		active = boolPtr(false)
	default:
		return apierrors.ValidationError("active must be true or false")
	}

	servers, total, err := s.servers.List(c.Request().Context(), page, limit, active)
	if err != nil {
		return fmt.Errorf("list servers: %w", err)
	}
	return respondPage(c, servers, page, limit, total)
}

func (s *Server) handleGetServer(c echo.Context) error {
	server, err := s.servers.GetByDiscordID(c.Request().Context(), c.Param("discordId"))
	if err != nil {
		if errors.Is(err, domain.ErrServerNotFound) {
			return apierrors.NotFoundError("Server not found")
		}
		return fmt.Errorf("get server: %w", err)
	}
	return respondOK(c, server)
}

func (s *Server) handleUpsertServer(c echo.Context) error {
	var payload serverPayload
	if err := c.Bind(&payload); err != nil {
		return apierrors.ValidationError("invalid request body")
	}
	if payload.DiscordID == "" || payload.Name == "" {
		return apierrors.ValidationError("discordId and name are required")
	}

	server, err := s.servers.Upsert(c.Request().Context(), payload.DiscordID, payload.Name, payload.MemberCount, payload.OwnerID)
	if err != nil {
		return fmt.Errorf("upsert server: %w", err)
	}

	slog.Info("Server created/updated", "discord_id", payload.DiscordID, "name", payload.Name)
	return respondCreated(c, server)
}

func (s *Server) handleUpdateServerSettings(c echo.Context) error {
	var payload settingsPayload
	if err := c.Bind(&payload); err != nil {
		return apierrors.ValidationError("invalid request body")
	}
	if payload.Prefix != nil && (len(*payload.Prefix) == 0 || len(*payload.Prefix) > 5) {
		return apierrors.ValidationError("prefix must be between 1 and 5 characters")
	}

	settings, err := s.servers.UpdateSettings(c.Request().Context(), c.Param("discordId"), domain.SettingsUpdate{
		Prefix:       payload.Prefix,
		LogChannelID: payload.LogChannelID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrServerNotFound) {
			return apierrors.NotFoundError("Server not found")
		}
		return fmt.Errorf("update server settings: %w", err)
	}
	return respondOK(c, settings)
}

// handleDeleteServer is a soft delete: the row is kept for statistics
// and rejoin handling, only marked inactive.
func (s *Server) handleDeleteServer(c echo.Context) error {
	discordID := c.Param("discordId")
	if err := s.servers.SetActive(c.Request().Context(), discordID, false); err != nil {
		if errors.Is(err, domain.ErrServerNotFound) {
			return apierrors.NotFoundError("Server not found")
		}
		return fmt.Errorf("deactivate server: %w", err)
	}

	slog.Info("Server marked inactive", "discord_id", discordID)
	return respondMessage(c, "Server marked as inactive")
}

func boolPtr(b bool) *bool { return &b }
