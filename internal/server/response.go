package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/Suraj89011/discord-bot-template/internal/errors"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// response is the success envelope. Error responses are produced by the
// errors middleware with the matching shape.
type response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Cached     *bool       `json:"cached,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, response{Success: true, Data: data})
}

func respondCreated(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, response{Success: true, Data: data})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, response{Success: true, Message: message})
}

func respondPage(c echo.Context, data any, page, limit, total int) error {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    data,
		Pagination: &pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// paginationParams parses page and limit query parameters with the
// original API's defaults.
func paginationParams(c echo.Context) (page, limit int, err error) {
	page, err = queryInt(c, "page", defaultPage)
	if err != nil || page < 1 {
		return 0, 0, apierrors.ValidationError("page must be a positive integer")
	}
	limit, err = queryInt(c, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, apierrors.ValidationError("limit must be between 1 and 100")
	}
	return page, limit, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
