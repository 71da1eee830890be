package handler

import (
	"net/http"

	"dental-academy-store/internal/dto"
	"dental-academy-store/internal/middleware"
	"dental-academy-store/internal/model"
	"dental-academy-store/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	items, err := h.cartService.GetCart(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	item, err := h.cartService.AddToCart(ctx, user.ID, req.CourseID, req.Quantity)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)
	itemID := c.Param("itemID")

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cartService.UpdateCartItemQuantity(ctx, user.ID, itemID, req.Quantity); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	if err := h.cartService.RemoveFromCart(ctx, user.ID, c.Param("itemID")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	if err := h.cartService.ClearCart(ctx, user.ID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ModerateItem(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	var req dto.ModerateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	err := h.cartService.SetItemStatus(ctx, user, c.Param("itemID"), model.CartStatus(req.Status))
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
