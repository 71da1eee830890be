package handler

import (
	"net/http"

	"dental-academy-store/internal/dto"
	"dental-academy-store/internal/middleware"
	"dental-academy-store/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// GetGroups returns the per-instructor receipt groups the cart splits into,
// so the UI can show one upload slot per instructor.
func (h *CheckoutHandler) GetGroups(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	groups, err := h.checkoutService.GroupCartByInstructor(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, groups)
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.Checkout(ctx, user, req.Receipts)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.CheckoutResponse{
		OrderID:    result.OrderID,
		PaymentIDs: result.PaymentIDs,
		InvoiceID:  result.InvoiceID,
	})
}
