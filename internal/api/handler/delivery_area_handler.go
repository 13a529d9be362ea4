package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/delivery-zones/internal/core/domain"
	"github.com/99minutos/delivery-zones/internal/core/ports"
)

// DeliveryAreaHandler answers "which zones deliver here on this day".
type DeliveryAreaHandler struct {
	service ports.DeliveryAreaService
	loc     *time.Location
	now     func() time.Time
}

// NewDeliveryAreaHandler builds the handler. loc decides what "today" means
// when a request omits the day.
func NewDeliveryAreaHandler(service ports.DeliveryAreaService, loc *time.Location) *DeliveryAreaHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DeliveryAreaHandler{service: service, loc: loc, now: time.Now}
}

// Verify handles POST /v1/delivery-areas/verify.
//
// @Summary      Verify delivery coverage for an address
// @Tags         delivery-areas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyDeliveryAreaRequest  true  "Address to verify"
// @Success      200   {object}  deliveryAreaResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/delivery-areas/verify [post]
func (h *DeliveryAreaHandler) Verify(c echo.Context) error {
	var req verifyDeliveryAreaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	day, err := h.day(req.Day)
	if err != nil {
		return err
	}

	result, err := h.service.Verify(c.Request().Context(), domain.AddressQuery{
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.ZipCode,
		PlaceID:    req.PlaceID,
	}, day)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDeliveryAreaResponse(result))
}

// Search handles POST /v1/delivery-areas/search. A coordinate pair skips
// geocoding; otherwise the address or postal code is used.
//
// @Summary      Search delivery areas by coordinate, address or postal code
// @Tags         delivery-areas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      searchDeliveryAreaRequest  true  "Search criteria"
// @Success      200   {object}  deliveryAreaResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/delivery-areas/search [post]
func (h *DeliveryAreaHandler) Search(c echo.Context) error {
	var req searchDeliveryAreaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "lat and lng must be sent together")
	}

	day, err := h.day(req.CurrentDay)
	if err != nil {
		return err
	}

	q := domain.AddressQuery{
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.ZipCode,
	}
	if req.Lat != nil {
		q.Coordinate = &domain.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
	}

	result, err := h.service.Verify(c.Request().Context(), q, day)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDeliveryAreaResponse(result))
}

func (h *DeliveryAreaHandler) day(raw string) (domain.WeekDay, error) {
	if raw == "" {
		return domain.WeekDayOf(h.now().In(h.loc)), nil
	}
	day, err := domain.ParseWeekDay(raw)
	if err != nil {
		return "", domain.NewUserInputError("day must be a week day name such as \"monday\"", err)
	}
	return day, nil
}
