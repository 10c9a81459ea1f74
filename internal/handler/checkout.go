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
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	cartService     service.CartService
	checkoutService service.CheckoutService
	sessionName     string
	tokenizationKey string
}

func NewCheckoutHandler(
	cartService service.CartService,
	checkoutService service.CheckoutService,
	sessionName string,
	tokenizationKey string,
) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		sessionName:     sessionName,
		tokenizationKey: tokenizationKey,
	}
}

// CheckoutForm runs the one-time cart migration now that the shopper is
// logged in, then returns the cart the shipping form will be shown against.
func (h *CheckoutHandler) CheckoutForm(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := session.FromEcho(h.sessionName, c)
	if err != nil {
		return err
	}

	identity := middleware.Identity(c)
	if err := h.cartService.Migrate(ctx, sess, identity); err != nil {
		return fmt.Errorf("migrate cart: %w", err)
	}
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	items, err := h.cartService.ListItems(ctx, identity.Key())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewCartView(items))
}

func (h *CheckoutHandler) SubmitCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var shipping dto.ShippingDetails
	if err := c.Bind(&shipping); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&shipping); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := session.FromEcho(h.sessionName, c)
	if err != nil {
		return err
	}

	// Migration is idempotent; running it here too covers a checkout that
	// skipped the form GET, and retries a previously failed re-key.
	identity := middleware.Identity(c)
	if err := h.cartService.Migrate(ctx, sess, identity); err != nil {
		return fmt.Errorf("migrate cart: %w", err)
	}

	pending, err := h.checkoutService.BuildPendingOrder(ctx, identity.Key(), shipping)
	if err != nil {
		return mapServiceError(err)
	}

	if err := sess.SetPendingOrder(pending); err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return c.Redirect(http.StatusSeeOther, "/shop/payment")
}

func (h *CheckoutHandler) PaymentForm(c echo.Context) error {
	sess, err := session.FromEcho(h.sessionName, c)
	if err != nil {
		return err
	}

	pending, ok := sess.PendingOrder()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no pending order, submit checkout first")
	}

	return c.JSON(http.StatusOK, dto.PaymentView{
		TotalCents:      pending.Order.TotalCents,
		Total:           dto.Dollars(pending.Order.TotalCents),
		Currency:        pending.Order.Currency,
		TokenizationKey: h.tokenizationKey,
	})
}

func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentRequest
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

	pending, ok := sess.PendingOrder()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no pending order, submit checkout first")
	}

	// A charge reference left in the session means a previous attempt was
	// charged but its finalize transaction failed. Retries must skip the
	// gateway and finalize with that reference, or the shopper would be
	// charged twice for one order.
	chargeRef, charged := sess.ChargeRef()
	if !charged {
		chargeRef, err = h.checkoutService.Authorize(ctx, pending, req.PayerToken, req.PayerEmail)
		if err != nil {
			// The pending order stays in the session so payment can be
			// retried without redoing checkout.
			return mapServiceError(err)
		}

		// The reference must be durable in the session before finalize
		// runs, otherwise a finalize failure loses the charge.
		sess.SetChargeRef(chargeRef)
		if err := sess.Save(); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	order, err := h.checkoutService.Finalize(ctx, pending, chargeRef)
	if err != nil {
		// Nothing was committed; the pending order and charge reference
		// stay in the session for a finalize-only retry.
		return mapServiceError(err)
	}

	sess.ClearPendingOrder()
	sess.ClearChargeRef()
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/shop/confirmation?order=%d", order.ID))
}

func (h *CheckoutHandler) Confirmation(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := strconv.ParseUint(c.QueryParam("order"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	identity := middleware.Identity(c)
	order, err := h.checkoutService.GetConfirmation(ctx, uint(orderID), identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.OrderConfirmation{
		OrderID:   order.ID,
		Total:     dto.Dollars(order.TotalCents),
		Currency:  order.Currency,
		ChargeRef: order.ChargeRef,
	})
}
