package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/tracking-aggregator/internal/core/ports"
	"github.com/99minutos/tracking-aggregator/internal/core/service"
)

// LookupHandler serves previously recorded lookups.
type LookupHandler struct {
	repo ports.LookupRepository
}

func NewLookupHandler(repo ports.LookupRepository) *LookupHandler {
	return &LookupHandler{repo: repo}
}

// Latest handles GET /v1/lookups/:tracking_number.
//
// @Summary      Latest recorded lookup
// @Description  Returns the most recent lookup summary without calling the provider.
// @Tags         lookups
// @Produce      json
// @Param        tracking_number  path      string  true  "Tracking number"
// @Success      200              {object}  lookupResponse
// @Failure      404              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /v1/lookups/{tracking_number} [get]
func (h *LookupHandler) Latest(c echo.Context) error {
	trackingNumber := service.SanitizeTrackingNumber(pathParam(c, "tracking_number"))
	if trackingNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tracking number is required")
	}

	snapshot, err := h.repo.Latest(c.Request().Context(), trackingNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLookupResponse(snapshot))
}
