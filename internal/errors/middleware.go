package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPErrorsTotal tracks API errors by error type.
var HTTPErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_http_errors_total",
		Help: "Total HTTP errors by error type",
	},
	[]string{"type"},
)

// envelope mirrors the API response format for error payloads.
type envelope struct {
	Success bool         `json:"success"`
	Error   envelopeBody `json:"error"`
}

type envelopeBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Middleware catches errors returned by handlers and converts them into
// enveloped JSON responses with the mapped status code.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// Echo's own HTTPErrors (404 routing, method not allowed,
			// rate limiter middleware) get wrapped into the envelope too,
			// so every error response has the same shape.
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				structured := fromHTTPError(httpErr)
				HTTPErrorsTotal.WithLabelValues(string(structured.Type)).Inc()
				return writeEnvelope(c, structured)
			}

			structured := AsStructured(err)
			HTTPErrorsTotal.WithLabelValues(string(structured.Type)).Inc()
			logError(c, structured)
			return writeEnvelope(c, structured)
		}
	}
}

func writeEnvelope(c echo.Context, err *Error) error {
	resp := envelope{
		Success: false,
		Error:   envelopeBody{Message: err.Message, Code: err.Code()},
	}
	if jsonErr := c.JSON(err.HTTPStatus(), resp); jsonErr != nil {
		return fmt.Errorf("failed to write error response: %w", jsonErr)
	}
	return nil
}

func fromHTTPError(httpErr *echo.HTTPError) *Error {
	message := http.StatusText(httpErr.Code)
	if s, ok := httpErr.Message.(string); ok {
		message = s
	}

	switch httpErr.Code {
	case http.StatusBadRequest:
		return ValidationError(message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return UnauthorizedError(message)
	case http.StatusNotFound:
		return NotFoundError(message)
	case http.StatusTooManyRequests:
		return RateLimitedError("Too many requests")
	default:
		return InternalError(message, nil)
	}
}

func logError(c echo.Context, err *Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause)
	}
	for k, v := range err.Fields {
		attrs = append(attrs, k, v)
	}

	if err.Type == TypeInternal {
		slog.Error("Request failed", attrs...)
	} else {
		slog.Warn("Request rejected", attrs...)
	}
}
