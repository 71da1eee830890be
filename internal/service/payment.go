package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dental-academy-store/internal/dto"
	"dental-academy-store/internal/metrics"
	"dental-academy-store/internal/model"
	"dental-academy-store/internal/money"
	"dental-academy-store/internal/policy"
	"dental-academy-store/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	// SubmitPayment records one receipt for the (order, instructor) group.
	// Nothing stops a second submission for the same pair; it creates a
	// second payment record.
	SubmitPayment(ctx context.Context, userID string, orderID uint, receiptImage string, instructorID uint) (*model.Payment, error)
	VerifyPayment(ctx context.Context, actor *model.User, paymentID uint) (*model.Payment, error)
	RejectPayment(ctx context.Context, actor *model.User, paymentID uint, reason string) error
	RefundPayment(ctx context.Context, actor *model.User, paymentID uint, reason string) error
	// CancelSubmission is the checkout compensation path: it rejects a still
	// pending payment without an admin actor.
	CancelSubmission(ctx context.Context, paymentID uint, reason string) error
	// GenerateInvoice is the manual path; it requires a verified payment for
	// the order and performs no duplicate check.
	GenerateInvoice(ctx context.Context, orderID uint) (*model.Invoice, error)
	// IssueInvoice is the automatic branch; it creates the order's invoice
	// only if none exists yet and returns nil when one already does.
	IssueInvoice(ctx context.Context, orderID uint) (*model.Invoice, error)
	GetFinancialReport(ctx context.Context, actor *model.User) (*dto.FinancialReport, error)
	GetUserPayments(ctx context.Context, userID string) ([]*model.Payment, error)
	GetUserInvoices(ctx context.Context, userID string) ([]*model.Invoice, error)
}

type paymentServiceImpl struct {
	db             *gorm.DB
	paymentRepo    repository.PaymentRepository
	invoiceRepo    repository.InvoiceRepository
	orderRepo      repository.OrderRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	logger         *zap.Logger
}

func NewPaymentService(
	db *gorm.DB,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:             db,
		paymentRepo:    paymentRepo,
		invoiceRepo:    invoiceRepo,
		orderRepo:      orderRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

func (s *paymentServiceImpl) SubmitPayment(ctx context.Context, userID string, orderID uint, receiptImage string, instructorID uint) (*model.Payment, error) {
	if receiptImage == "" {
		return nil, fmt.Errorf("%w: receipt image is required", ErrValidation)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order %d does not belong to you", ErrForbidden, orderID)
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: order %d is %s, receipts are accepted for pending orders only",
			ErrInvalidState, orderID, order.Status)
	}

	amount, err := s.instructorShare(ctx, order, instructorID)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		OrderID:        orderID,
		UserID:         userID,
		Amount:         money.Format(amount),
		ReceiptImage:   receiptImage,
		InstructorID:   instructorID,
		Status:         model.PaymentStatusPending,
		SubmissionDate: time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("store payment: %w", err)
	}

	metrics.PaymentsSubmitted.Inc()
	s.logger.Info("payment submitted",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("order_id", orderID),
		zap.Uint("instructor_id", instructorID),
	)

	return payment, nil
}

func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, actor *model.User, paymentID uint) (*model.Payment, error) {
	if !policy.CanVerifyPayment(actor) {
		return nil, fmt.Errorf("%w: verifying payments requires an admin role", ErrForbidden)
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
	}

	// reads happen up front; only writes go through the transaction below
	order, err := s.orderRepo.FindByID(ctx, payment.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", payment.OrderID, err)
	}
	invoiceExists, err := s.invoiceRepo.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("check invoice for order %d: %w", order.ID, err)
	}
	courses, err := s.orderCourses(ctx, order)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.MarkVerified(ctx, tx, paymentID, now); err != nil {
			return fmt.Errorf("%w: payment %d is not pending", ErrInvalidState, paymentID)
		}

		if !invoiceExists {
			if _, err := s.createInvoice(ctx, tx, order); err != nil {
				return err
			}
		}

		return s.grantEnrollments(ctx, tx, payment, courses)
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentTransitions.WithLabelValues(string(model.PaymentStatusVerified)).Inc()

	return s.paymentRepo.FindByID(ctx, paymentID)
}

func (s *paymentServiceImpl) RejectPayment(ctx context.Context, actor *model.User, paymentID uint, reason string) error {
	if !policy.CanRejectPayment(actor) {
		return fmt.Errorf("%w: rejecting payments requires an admin role", ErrForbidden)
	}
	if reason == "" {
		return fmt.Errorf("%w: a rejection reason is required", ErrValidation)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.paymentRepo.MarkRejected(ctx, tx, paymentID, reason)
	})
	if err != nil {
		return fmt.Errorf("%w: payment %d is not pending", ErrInvalidState, paymentID)
	}

	metrics.PaymentTransitions.WithLabelValues(string(model.PaymentStatusRejected)).Inc()
	return nil
}

func (s *paymentServiceImpl) RefundPayment(ctx context.Context, actor *model.User, paymentID uint, reason string) error {
	if !policy.CanRefundPayment(actor) {
		return fmt.Errorf("%w: refunding payments requires an admin role", ErrForbidden)
	}
	if reason == "" {
		return fmt.Errorf("%w: a refund reason is required", ErrValidation)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.paymentRepo.MarkRefunded(ctx, tx, paymentID, reason)
	})
	if err != nil {
		return fmt.Errorf("%w: payment %d is not verified", ErrInvalidState, paymentID)
	}

	metrics.PaymentTransitions.WithLabelValues(string(model.PaymentStatusRefunded)).Inc()
	return nil
}

func (s *paymentServiceImpl) CancelSubmission(ctx context.Context, paymentID uint, reason string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.paymentRepo.MarkRejected(ctx, tx, paymentID, reason)
	})
	if err != nil {
		return fmt.Errorf("%w: payment %d is not pending", ErrInvalidState, paymentID)
	}

	metrics.PaymentTransitions.WithLabelValues(string(model.PaymentStatusRejected)).Inc()
	return nil
}

func (s *paymentServiceImpl) GenerateInvoice(ctx context.Context, orderID uint) (*model.Invoice, error) {
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load payments for order %d: %w", orderID, err)
	}

	verified := false
	for _, payment := range payments {
		if payment.Status == model.PaymentStatusVerified {
			verified = true
			break
		}
	}
	if !verified {
		return nil, fmt.Errorf("%w: order %d has no verified payment", ErrInvalidState, orderID)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	var invoice *model.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err = s.createInvoice(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *paymentServiceImpl) IssueInvoice(ctx context.Context, orderID uint) (*model.Invoice, error) {
	exists, err := s.invoiceRepo.ExistsForOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("check invoice for order %d: %w", orderID, err)
	}
	if exists {
		return nil, nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	var invoice *model.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err = s.createInvoice(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *paymentServiceImpl) GetFinancialReport(ctx context.Context, actor *model.User) (*dto.FinancialReport, error) {
	if !policy.CanViewFinancialReport(actor) {
		return nil, fmt.Errorf("%w: the financial report requires an admin role", ErrForbidden)
	}

	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	totals := map[model.PaymentStatus]decimal.Decimal{}
	for _, payment := range payments {
		totals[payment.Status] = totals[payment.Status].Add(money.Parse(payment.Amount))
	}

	return &dto.FinancialReport{
		TotalPending:  money.Format(totals[model.PaymentStatusPending]),
		TotalVerified: money.Format(totals[model.PaymentStatusVerified]),
		TotalRejected: money.Format(totals[model.PaymentStatusRejected]),
		TotalRefunded: money.Format(totals[model.PaymentStatusRefunded]),
		PaymentCount:  len(payments),
	}, nil
}

func (s *paymentServiceImpl) GetUserPayments(ctx context.Context, userID string) ([]*model.Payment, error) {
	return s.paymentRepo.FindByUser(ctx, userID)
}

func (s *paymentServiceImpl) GetUserInvoices(ctx context.Context, userID string) ([]*model.Invoice, error) {
	return s.invoiceRepo.FindByUser(ctx, userID)
}

func (s *paymentServiceImpl) createInvoice(ctx context.Context, tx *gorm.DB, order *model.Order) (*model.Invoice, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("snapshot order items: %w", err)
	}

	invoice := &model.Invoice{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Amount:    order.TotalAmount,
		IssueDate: time.Now(),
		ItemsJSON: string(itemsJSON),
	}

	if err := s.invoiceRepo.Create(ctx, tx, invoice); err != nil {
		return nil, fmt.Errorf("store invoice: %w", err)
	}

	metrics.InvoicesIssued.Inc()
	return invoice, nil
}

func (s *paymentServiceImpl) orderCourses(ctx context.Context, order *model.Order) ([]*model.Course, error) {
	courseIDs := make([]uint, len(order.Items))
	for i, item := range order.Items {
		courseIDs[i] = item.CourseID
	}

	courses, err := s.courseRepo.FindMany(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("load order courses: %w", err)
	}

	return courses, nil
}

// grantEnrollments enrolls the payer in every order course taught by the
// verified payment's instructor.
func (s *paymentServiceImpl) grantEnrollments(ctx context.Context, tx *gorm.DB, payment *model.Payment, courses []*model.Course) error {
	now := time.Now()
	for _, course := range courses {
		if course.InstructorID != payment.InstructorID {
			continue
		}
		err := s.enrollmentRepo.Upsert(ctx, tx, &model.Enrollment{
			UserID:    payment.UserID,
			CourseID:  course.ID,
			GrantedAt: now,
		})
		if err != nil {
			return fmt.Errorf("grant enrollment for course %d: %w", course.ID, err)
		}
	}

	return nil
}

// instructorShare sums the order items that belong to the given instructor.
func (s *paymentServiceImpl) instructorShare(ctx context.Context, order *model.Order, instructorID uint) (decimal.Decimal, error) {
	courses, err := s.orderCourses(ctx, order)
	if err != nil {
		return decimal.Zero, err
	}

	instructorByCourse := make(map[uint]uint, len(courses))
	for _, course := range courses {
		instructorByCourse[course.ID] = course.InstructorID
	}

	share := decimal.Zero
	for _, item := range order.Items {
		if instructorByCourse[item.CourseID] == instructorID {
			share = share.Add(money.Parse(item.Price))
		}
	}

	return share, nil
}
