package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/api/handler"
	"github.com/99minutos/tracking-aggregator/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Answers upstream provider failures with 502 and the raw provider payloads.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		log.Warn().
			Err(err).
			Str("stage", string(upstream.Stage)).
			Int("meta_code", upstream.Code).
			Str("courier_code", upstream.CourierCode).
			Str("path", c.Path()).
			Msg("upstream provider failure")
		return http.StatusBadGateway, handler.UpstreamErrorResponse{
			Error:           upstream.Error(),
			Stage:           upstream.Stage,
			Raw:             upstream.Raw,
			DetectRaw:       upstream.DetectRaw,
			CreateRaw:       upstream.CreateRaw,
			UsedCourierCode: upstream.CourierCode,
			Endpoint:        upstream.Endpoint,
		}
	}

	var dirErr *domain.CourierDirectoryError
	if errors.As(err, &dirErr) {
		log.Warn().Err(err).Int("attempts", len(dirErr.Attempts)).Msg("courier directory unavailable")
		return http.StatusBadGateway, handler.CourierDirectoryErrorResponse{
			Error: dirErr.Error(),
			Tries: dirErr.Attempts,
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMissingTrackingNumber):
		return http.StatusBadRequest, handler.ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrLookupNotFound):
		return http.StatusNotFound, handler.ErrorResponse{Error: "lookup not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error"}
}
