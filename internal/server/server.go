package server

import (
	"dental-academy-store/internal/handler"
	appmiddleware "dental-academy-store/internal/middleware"
	"dental-academy-store/internal/repository"
	"dental-academy-store/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	orderHandler    *handler.OrderHandler
	paymentHandler  *handler.PaymentHandler
	checkoutHandler *handler.CheckoutHandler
	authMiddleware  echo.MiddlewareFunc
}

func NewServer(
	authService service.AuthService,
	cartService service.CartService,
	orderService service.OrderService,
	paymentService service.PaymentService,
	checkoutService service.CheckoutService,
	courseRepo repository.CourseRepository,
	instructorRepo repository.InstructorRepository,
	userRepo repository.UserRepository,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authHandler:     handler.NewAuthHandler(authService),
		catalogHandler:  handler.NewCatalogHandler(courseRepo, instructorRepo),
		cartHandler:     handler.NewCartHandler(cartService),
		orderHandler:    handler.NewOrderHandler(orderService),
		paymentHandler:  handler.NewPaymentHandler(paymentService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		authMiddleware:  appmiddleware.AuthMiddleware(authService, userRepo),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/auth/login", s.authHandler.Login)
	api.GET("/courses", s.catalogHandler.ListCourses)
	api.GET("/instructors", s.catalogHandler.ListInstructors)

	// -------- signed-in storefront --------
	auth := api.Group("", s.authMiddleware)

	auth.GET("/cart", s.cartHandler.GetCart)
	auth.POST("/cart/items", s.cartHandler.AddToCart)
	auth.PUT("/cart/items/:itemID", s.cartHandler.UpdateQuantity)
	auth.DELETE("/cart/items/:itemID", s.cartHandler.RemoveItem)
	auth.DELETE("/cart", s.cartHandler.ClearCart)
	auth.PATCH("/cart/items/:itemID/status", s.cartHandler.ModerateItem)

	auth.GET("/orders", s.orderHandler.GetUserOrders)
	auth.POST("/orders/:orderID/cancel", s.orderHandler.CancelOrder)
	auth.POST("/orders/:orderID/invoice", s.paymentHandler.GenerateInvoice)

	auth.GET("/checkout/groups", s.checkoutHandler.GetGroups)
	auth.POST("/checkout", s.checkoutHandler.Checkout)

	auth.POST("/payments", s.paymentHandler.SubmitPayment)
	auth.GET("/payments", s.paymentHandler.GetUserPayments)
	auth.GET("/invoices", s.paymentHandler.GetUserInvoices)

	// -------- payment administration --------
	auth.POST("/payments/:paymentID/verify", s.paymentHandler.VerifyPayment)
	auth.POST("/payments/:paymentID/reject", s.paymentHandler.RejectPayment)
	auth.POST("/payments/:paymentID/refund", s.paymentHandler.RefundPayment)
	auth.GET("/reports/financial", s.paymentHandler.GetFinancialReport)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
