package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
	apierrors "github.com/Suraj89011/discord-bot-template/internal/errors"
)

type userPayload struct {
	DiscordID     string `json:"discordId"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

func (s *Server) handleListUsers(c echo.Context) error {
	page, limit, err := paginationParams(c)
	if err != nil {
		return err
	}

	users, total, err := s.users.List(c.Request().Context(), page, limit)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	return respondPage(c, users, page, limit, total)
}

func (s *Server) handleGetUser(c echo.Context) error {
	user, err := s.users.GetByDiscordID(c.Request().Context(), c.Param("discordId"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apierrors.NotFoundError("User not found")
		}
		return fmt.Errorf("get user: %w", err)
	}
	return respondOK(c, user)
}

func (s *Server) handleUpsertUser(c echo.Context) error {
	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return apierrors.ValidationError("invalid request body")
	}
	if payload.DiscordID == "" || payload.Username == "" {
		return apierrors.ValidationError("discordId and username are required")
	}

	user, err := s.users.Upsert(c.Request().Context(), payload.DiscordID, payload.Username, payload.Discriminator, payload.Avatar)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	slog.Info("User created/updated", "discord_id", payload.DiscordID, "username", payload.Username)
	return respondCreated(c, user)
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return apierrors.ValidationError("invalid request body")
	}

	user, err := s.users.Update(c.Request().Context(), c.Param("discordId"), payload.Username, payload.Discriminator, payload.Avatar)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apierrors.NotFoundError("User not found")
		}
		return fmt.Errorf("update user: %w", err)
	}
	return respondOK(c, user)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	discordID := c.Param("discordId")
	if err := s.users.Delete(c.Request().Context(), discordID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apierrors.NotFoundError("User not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}

	slog.Info("User deleted", "discord_id", discordID)
	return respondMessage(c, "User deleted")
}
