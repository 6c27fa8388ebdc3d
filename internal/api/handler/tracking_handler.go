package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

// TrackingHandler serves unified shipment tracking.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Track handles POST /v1/track.
//
// @Summary      Track a shipment
// @Description  Resolves the carrier (unless courierCode is given), registers the number with the provider and returns the merged origin/destination timeline with a clearance status.
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        body  body      trackRequest           true  "Tracking number and optional carrier"
// @Success      200   {object}  trackResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  UpstreamErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/track [post]
func (h *TrackingHandler) Track(c echo.Context) error {
	var req trackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.track(c, req.TrackingNumber, req.CourierCode)
}

// Get handles GET /v1/track/:tracking_number.
//
// @Summary      Track a shipment by path
// @Tags         tracking
// @Produce      json
// @Param        tracking_number  path      string  true   "Tracking number"
// @Param        courierCode      query     string  false  "Carrier code; detected when empty"
// @Success      200              {object}  trackResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      502              {object}  UpstreamErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /v1/track/{tracking_number} [get]
func (h *TrackingHandler) Get(c echo.Context) error {
	return h.track(c, pathParam(c, "tracking_number"), c.QueryParam("courierCode"))
}

func (h *TrackingHandler) track(c echo.Context, trackingNumber, courierCode string) error {
	result, err := h.service.TrackShipment(c.Request().Context(), ports.TrackShipmentInput{
		TrackingNumber: trackingNumber,
		CourierCode:    courierCode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, trackResponse{
		TrackingNumber: result.TrackingNumber,
		CourierCode:    result.CourierCode,
		Status:         result.Status,
		Source:         result.Source,
		Timeline:       result.Timeline,
		DetectRaw:      rawOrNull(result.DetectRaw),
		Raw:            rawOrNull(result.Raw),
	})
}

// pathParam returns the unescaped path parameter, or the raw value when it
// is not valid escaping.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
