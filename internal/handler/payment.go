package handler

import (
	"net/http"
	"strconv"

	"dental-academy-store/internal/dto"
	"dental-academy-store/internal/middleware"
	"dental-academy-store/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func paymentIDFromPath(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("paymentID"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	return uint(id), nil
}

func (h *PaymentHandler) SubmitPayment(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	var req dto.SubmitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	payment, err := h.paymentService.SubmitPayment(ctx, user.ID, req.OrderID, req.ReceiptImage, req.InstructorID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	paymentID, err := paymentIDFromPath(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.VerifyPayment(ctx, user, paymentID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) RejectPayment(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	paymentID, err := paymentIDFromPath(c)
	if err != nil {
		return err
	}

	var req dto.ReasonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.paymentService.RejectPayment(ctx, user, paymentID, req.Reason); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	paymentID, err := paymentIDFromPath(c)
	if err != nil {
		return err
	}

	var req dto.ReasonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.paymentService.RefundPayment(ctx, user, paymentID, req.Reason); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PaymentHandler) GenerateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	invoice, err := h.paymentService.GenerateInvoice(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, invoice)
}

func (h *PaymentHandler) GetUserPayments(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	payments, err := h.paymentService.GetUserPayments(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetUserInvoices(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	invoices, err := h.paymentService.GetUserInvoices(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, invoices)
}

func (h *PaymentHandler) GetFinancialReport(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.UserFromContext(c)

	report, err := h.paymentService.GetFinancialReport(ctx, user)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, report)
}
