package handler

import (
	"net/http"
	"strconv"

	"dental-academy-store/internal/middleware"
	"dental-academy-store/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func orderIDFromPath(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return uint(id), nil
}

func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	orders, err := h.orderService.GetUserOrders(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.CancelOrder(ctx, user, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}
