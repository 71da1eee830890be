package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dental-academy-store/internal/client"
	"dental-academy-store/internal/dto"
	"dental-academy-store/internal/model"
	"dental-academy-store/internal/notify"
	"dental-academy-store/internal/repository"
	"dental-academy-store/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Instructor{}, &model.Course{},
		&model.CartItem{}, &model.Order{}, &model.OrderItem{},
		&model.Payment{}, &model.Invoice{}, &model.Enrollment{},
	))

	require.NoError(t, db.Create([]*model.Instructor{
		{ID: 1, Name: "دکتر محمدی"},
		{ID: 2, Name: "دکتر رضایی"},
	}).Error)
	require.NoError(t, db.Create([]*model.Course{
		{ID: 1, Title: "اندودانتیکس پیشرفته", Price: "۱,۰۰۰,۰۰۰ تومان", InstructorID: 1},
		{ID: 2, Title: "ایمپلنت مقدماتی", Price: "۵۰۰,۰۰۰ تومان", InstructorID: 2},
	}).Error)
	require.NoError(t, db.Create([]*model.User{
		{ID: "student@test.ir", Name: "دانشجو", Password: "pw", Role: model.RoleStudent},
		{ID: "admin@test.ir", Name: "مدیر", Password: "pw", Role: model.RoleAdmin},
	}).Error)

	logger := zaptest.NewLogger(t)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	authService := service.NewAuthService(userRepo, "test-secret", time.Hour)
	cartService := service.NewCartService(cartRepo, courseRepo, logger)
	orderService := service.NewOrderService(db, orderRepo, courseRepo, logger)
	paymentService := service.NewPaymentService(db, paymentRepo, invoiceRepo,
		orderRepo, courseRepo, enrollmentRepo, logger)
	checkoutService := service.NewCheckoutService(cartService, orderService,
		paymentService, client.NewMockGateway(), notify.NewLogNotifier(logger),
		courseRepo, instructorRepo, false, logger)

	return NewServer(authService, cartService, orderService, paymentService,
		checkoutService, courseRepo, instructorRepo, userRepo)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server, email string) string {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func TestCatalogIsPublic(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var courses []model.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	assert.Len(t, courses, 2)
}

func TestCartRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "student@test.ir")

	for _, courseID := range []uint{1, 2} {
		rec := doJSON(t, s, http.MethodPost, "/api/cart/items", token, dto.AddToCartRequest{
			CourseID: courseID,
			Quantity: 1,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, s, http.MethodGet, "/api/checkout/groups", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var groups []service.InstructorGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 2)

	rec = doJSON(t, s, http.MethodPost, "/api/checkout", token, dto.CheckoutRequest{
		Receipts: map[uint]string{1: "receipt-1.jpg", 2: "receipt-2.jpg"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.PaymentIDs, 2)
	assert.NotZero(t, result.InvoiceID)

	// the cart is consumed
	rec = doJSON(t, s, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestVerifyPaymentRequiresAdminOverHTTP(t *testing.T) {
	s := newTestServer(t)
	studentToken := login(t, s, "student@test.ir")
	adminToken := login(t, s, "admin@test.ir")

	rec := doJSON(t, s, http.MethodPost, "/api/cart/items", studentToken, dto.AddToCartRequest{CourseID: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/checkout", studentToken, dto.CheckoutRequest{
		Receipts: map[uint]string{1: "receipt.jpg"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.PaymentIDs, 1)

	verifyPath := fmt.Sprintf("/api/payments/%d/verify", result.PaymentIDs[0])

	rec = doJSON(t, s, http.MethodPost, verifyPath, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodPost, verifyPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
