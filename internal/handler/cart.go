package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"diversity-shop/internal/dto"
	"diversity-shop/internal/middleware"
	"diversity-shop/internal/service"
	"diversity-shop/internal/session"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
	sessionName string
}

func NewCartHandler(cartService service.CartService, sessionName string) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessionName: sessionName,
	}
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := session.FromEcho(h.sessionName, c)
	if err != nil {
		return err
	}

	ownerKey := service.ResolveOwnerKey(sess, middleware.Identity(c))
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if _, err := h.cartService.AddItem(ctx, ownerKey, req.ProductID, req.Quantity); err != nil {
		return mapServiceError(err)
	}

	return c.Redirect(http.StatusSeeOther, "/shop/cart")
}

func (h *CartHandler) Cart(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := session.FromEcho(h.sessionName, c)
	if err != nil {
		return err
	}

	ownerKey := service.ResolveOwnerKey(sess, middleware.Identity(c))
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	items, err := h.cartService.ListItems(ctx, ownerKey)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewCartView(items))
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart item id")
	}

	if err := h.cartService.RemoveItem(ctx, uint(id)); err != nil {
		return mapServiceError(err)
	}

	return c.Redirect(http.StatusSeeOther, "/shop/cart")
}

// mapServiceError translates the service error taxonomy to HTTP statuses.
// Anything unlisted bubbles up as a 500 through echo's error handler.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPaymentDeclined):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	default:
		return err
	}
}
