package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

// CourierHandler exposes the provider's courier directory.
type CourierHandler struct {
	service ports.CourierService
}

func NewCourierHandler(service ports.CourierService) *CourierHandler {
	return &CourierHandler{service: service}
}

// List handles GET /v1/couriers. With trackingNumber it returns the
// provider's ranked candidates for that number; otherwise it searches the
// directory by q.
//
// @Summary      Search couriers or detect candidates
// @Tags         couriers
// @Produce      json
// @Param        q               query     string  false  "Case-insensitive name or code filter"
// @Param        trackingNumber  query     string  false  "Detect candidate carriers for this number instead"
// @Success      200             {object}  courierSearchResponse
// @Success      200             {object}  courierDetectResponse
// @Failure      502             {object}  CourierDirectoryErrorResponse
// @Failure      500             {object}  ErrorResponse
// @Router       /v1/couriers [get]
func (h *CourierHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if tn := strings.TrimSpace(c.QueryParam("trackingNumber")); tn != "" {
		res, err := h.service.Detect(ctx, tn)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, courierDetectResponse{
			TrackingNumber: res.TrackingNumber,
			Couriers:       res.Candidates,
			Raw:            rawOrNull(res.Raw),
		})
	}

	res, err := h.service.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courierSearchResponse{
		Endpoint:  res.Endpoint,
		FromCache: res.FromCache,
		Total:     res.Total,
		Query:     res.Query,
		Couriers:  toCourierItems(res.Couriers),
	})
}

// InvalidateCache handles DELETE /v1/couriers/cache.
//
// @Summary      Drop the cached courier directory
// @Tags         couriers
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/couriers/cache [delete]
func (h *CourierHandler) InvalidateCache(c echo.Context) error {
	if err := h.service.Invalidate(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
