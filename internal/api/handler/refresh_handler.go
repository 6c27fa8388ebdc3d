package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/api/middleware"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
	"github.com/99minutos/tracking-aggregator/internal/core/service"
)

// RefreshDispatcher is the interface the handler uses to enqueue refreshes.
type RefreshDispatcher interface {
	// EnqueueBatch reports how many leading requests were accepted before
	// any failure.
	EnqueueBatch(ctx context.Context, reqs []ports.RefreshRequest) (accepted int, err error)
}

// RefreshHandler accepts batch refresh jobs.
type RefreshHandler struct {
	dispatcher RefreshDispatcher
	log        zerolog.Logger
}

func NewRefreshHandler(dispatcher RefreshDispatcher, log zerolog.Logger) *RefreshHandler {
	return &RefreshHandler{dispatcher: dispatcher, log: log}
}

// Refresh handles POST /v1/tracking/refresh. Duplicate numbers in one batch
// are enqueued once. When the queue fills part way through a batch, the
// accepted part still runs and the response reports it under the job ID
// with the remainder as rejected; 503 means nothing was accepted.
//
// @Summary      Refresh tracking numbers in the background
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      refreshRequest           true  "Tracking numbers (1 to 100)"
// @Success      202   {object}  refreshAcceptedResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /v1/tracking/refresh [post]
func (h *RefreshHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	jobID := uuid.NewString()
	seen := make(map[string]struct{}, len(req.TrackingNumbers))
	reqs := make([]ports.RefreshRequest, 0, len(req.TrackingNumbers))
	for i, raw := range req.TrackingNumbers {
		tn := service.SanitizeTrackingNumber(raw)
		if tn == "" {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("trackingNumbers[%d] is blank", i))
		}
		if _, dup := seen[tn]; dup {
			continue
		}
		seen[tn] = struct{}{}
		reqs = append(reqs, ports.RefreshRequest{
			JobID:          jobID,
			TrackingNumber: tn,
			CourierCode:    req.CourierCode,
		})
	}

	accepted, err := h.dispatcher.EnqueueBatch(c.Request().Context(), reqs)
	if err != nil {
		h.log.Warn().Err(err).
			Str("job_id", jobID).
			Int("accepted", accepted).
			Int("rejected", len(reqs)-accepted).
			Msg("refresh batch not fully enqueued")
		if accepted == 0 {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "refresh queue unavailable")
		}
	}

	subject, _ := c.Get(middleware.ContextKeySubject).(string)
	h.log.Info().
		Str("job_id", jobID).
		Str("subject", subject).
		Int("count", accepted).
		Msg("refresh job accepted")

	return c.JSON(http.StatusAccepted, refreshAcceptedResponse{
		JobID:    jobID,
		Count:    accepted,
		Rejected: len(reqs) - accepted,
	})
}
