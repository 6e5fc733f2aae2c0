package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/offerhub/offers-api/internal/api/metrics"
	"github.com/offerhub/offers-api/internal/core/ports"
)

// OfferHandler serves the admin offer management routes and the user
// browse/buy routes. Access control is applied by the router.
type OfferHandler struct {
	service ports.OfferService
	log     zerolog.Logger
}

func NewOfferHandler(service ports.OfferService, log zerolog.Logger) *OfferHandler {
	return &OfferHandler{service: service, log: log}
}

// List handles GET /admin/offers and GET /user/getOffers.
//
// @Summary      List all offers
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=[]domain.Offer}
// @Failure      401  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      500  {object}  Envelope
// @Router       /admin/offers [get]
// @Router       /user/getOffers [get]
func (h *OfferHandler) List(c echo.Context) error {
	offers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Offers fetched successfully", offers)
}

// Create handles POST /admin/addOffers.
//
// @Summary      Create an offer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOfferRequest  true  "Offer details"
// @Success      201   {object}  Envelope{data=domain.Offer}
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /admin/addOffers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	offer, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.OfferMutationsTotal.WithLabelValues("create").Inc()

	return respond(c, http.StatusCreated, "Offer created successfully", offer)
}

// Update handles PUT /admin/updateOffers/:id. Any subset of fields may be sent.
//
// @Summary      Update an offer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Offer ID"
// @Param        body  body      updateOfferRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{data=domain.Offer}
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /admin/updateOffers/{id} [put]
func (h *OfferHandler) Update(c echo.Context) error {
	var req updateOfferRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	offer, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	metrics.OfferMutationsTotal.WithLabelValues("update").Inc()

	return respond(c, http.StatusOK, "Offer updated successfully", offer)
}

// Delete handles DELETE /admin/deleteOffers/:id.
//
// @Summary      Delete an offer
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Offer ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /admin/deleteOffers/{id} [delete]
func (h *OfferHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.OfferMutationsTotal.WithLabelValues("delete").Inc()

	return respond(c, http.StatusOK, "Offer deleted successfully", nil)
}

// Buy handles POST /user/buyOffers. It returns the offer and records nothing.
//
// @Summary      Buy an offer
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      buyOfferRequest  true  "Offer to buy"
// @Success      200   {object}  Envelope{data=domain.Offer}
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /user/buyOffers [post]
func (h *OfferHandler) Buy(c echo.Context) error {
	var req buyOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	offer, err := h.service.Get(c.Request().Context(), req.OfferID)
	if err != nil {
		return err
	}
	metrics.BuyIntentsTotal.Inc()
	h.log.Debug().
		Str("user_id", callerID(c)).
		Str("offer_id", offer.ID).
		Msg("buy intent")

	return respond(c, http.StatusOK, "Offer retrieved successfully", offer)
}
