package service

import (
	"testing"

	"dental-academy-store/internal/client"
	"dental-academy-store/internal/model"
	"dental-academy-store/internal/notify"
	"dental-academy-store/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	studentID = "student@test.ir"
	otherID   = "other@test.ir"
)

var (
	testAdmin   = &model.User{ID: "admin@test.ir", Role: model.RoleAdmin}
	testStudent = &model.User{ID: studentID, Role: model.RoleStudent}
)

// fixture wires the real services against an in-memory sqlite database.
type fixture struct {
	db             *gorm.DB
	cartRepo       repository.CartRepository
	orderRepo      repository.OrderRepository
	paymentRepo    repository.PaymentRepository
	invoiceRepo    repository.InvoiceRepository
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	instructorRepo repository.InstructorRepository
	userRepo       repository.UserRepository

	cart     CartService
	order    OrderService
	payment  PaymentService
	checkout CheckoutService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithMode(t, false)
}

func newFixtureWithMode(t *testing.T, compensate bool) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Instructor{},
		&model.Course{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Invoice{},
		&model.Enrollment{},
	))

	seedTestData(t, db)

	logger := zaptest.NewLogger(t)

	f := &fixture{
		db:             db,
		cartRepo:       repository.NewCartRepository(db),
		orderRepo:      repository.NewOrderRepository(db),
		paymentRepo:    repository.NewPaymentRepository(db),
		invoiceRepo:    repository.NewInvoiceRepository(db),
		enrollmentRepo: repository.NewEnrollmentRepository(db),
		courseRepo:     repository.NewCourseRepository(db),
		instructorRepo: repository.NewInstructorRepository(db),
		userRepo:       repository.NewUserRepository(db),
	}

	f.cart = NewCartService(f.cartRepo, f.courseRepo, logger)
	f.order = NewOrderService(db, f.orderRepo, f.courseRepo, logger)
	f.payment = NewPaymentService(db, f.paymentRepo, f.invoiceRepo, f.orderRepo,
		f.courseRepo, f.enrollmentRepo, logger)
	f.checkout = NewCheckoutService(f.cart, f.order, f.payment,
		client.NewMockGateway(), notify.NewLogNotifier(logger),
		f.courseRepo, f.instructorRepo, compensate, logger)

	return f
}

func seedTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create([]*model.Instructor{
		{ID: 1, Name: "دکتر محمدی", BankAccount: "6037-0000-1111-2222"},
		{ID: 2, Name: "دکتر رضایی", BankAccount: "6219-3333-4444-5555"},
	}).Error)

	require.NoError(t, db.Create([]*model.Course{
		{ID: 1, Title: "اندودانتیکس پیشرفته", Price: "۱,۰۰۰,۰۰۰ تومان", InstructorID: 1},
		{ID: 2, Title: "ایمپلنت مقدماتی", Price: "۵۰۰,۰۰۰ تومان", InstructorID: 2},
		{ID: 3, Title: "ترمیمی و زیبایی", Price: "۸۰۰,۰۰۰ تومان", DiscountPrice: "۶۰۰,۰۰۰ تومان", InstructorID: 1},
	}).Error)

	require.NoError(t, db.Create([]*model.User{
		{ID: studentID, Name: "دانشجو", Password: "pw", Role: model.RoleStudent},
		{ID: otherID, Name: "دیگری", Password: "pw", Role: model.RoleStudent},
		{ID: testAdmin.ID, Name: "مدیر", Password: "pw", Role: model.RoleAdmin},
	}).Error)
}
