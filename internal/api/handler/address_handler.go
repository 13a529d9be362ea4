package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/delivery-zones/internal/core/domain"
	"github.com/99minutos/delivery-zones/internal/core/ports"
)

// AddressHandler exposes address resolution without zone matching, for
// checkout forms that validate an address before asking about coverage.
type AddressHandler struct {
	resolver ports.AddressResolver
}

func NewAddressHandler(resolver ports.AddressResolver) *AddressHandler {
	return &AddressHandler{resolver: resolver}
}

// Verify handles POST /v1/address/verify.
//
// @Summary      Resolve an address to its canonical form
// @Tags         address
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyAddressRequest  true  "Address"
// @Success      200   {object}  addressResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/address/verify [post]
func (h *AddressHandler) Verify(c echo.Context) error {
	var req verifyAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	addr, err := h.resolver.Resolve(c.Request().Context(), domain.AddressQuery{
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.ZipCode,
		PlaceID:    req.PlaceID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAddressResponse(addr))
}

// Autocomplete handles GET /v1/address/autocomplete.
//
// @Summary      Suggest addresses for partial input
// @Tags         address
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Partial address"
// @Param        city   query     string  false  "City bias"
// @Success      200    {object}  autocompleteResponse
// @Failure      422    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /v1/address/autocomplete [get]
func (h *AddressHandler) Autocomplete(c echo.Context) error {
	var req autocompleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	suggestions, err := h.resolver.Suggestions(c.Request().Context(), req.Query, req.City)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAutocompleteResponse(suggestions))
}

// Place handles GET /v1/address/places/:place_id.
//
// @Summary      Resolve a suggested place
// @Tags         address
// @Produce      json
// @Security     BearerAuth
// @Param        place_id  path      string  true  "Place identifier from autocomplete"
// @Success      200       {object}  addressResponse
// @Failure      422       {object}  errorResponse
// @Failure      503       {object}  errorResponse
// @Router       /v1/address/places/{place_id} [get]
func (h *AddressHandler) Place(c echo.Context) error {
	placeID := strings.TrimSpace(c.Param("place_id"))
	if placeID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "place_id is required")
	}

	addr, err := h.resolver.ResolvePlace(c.Request().Context(), placeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAddressResponse(addr))
}
