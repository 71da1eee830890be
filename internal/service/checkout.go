package service

import (
	"context"
	"fmt"
	"sort"

	"dental-academy-store/internal/client"
	"dental-academy-store/internal/metrics"
	"dental-academy-store/internal/model"
	"dental-academy-store/internal/money"
	"dental-academy-store/internal/notify"
	"dental-academy-store/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InstructorGroup is one per-instructor slice of the cart: because each
// instructor collects payment into their own account, the cart is split
// into one receipt group per instructor at checkout.
type InstructorGroup struct {
	InstructorID   uint              `json:"instructor_id"`
	InstructorName string            `json:"instructor_name"`
	BankAccount    string            `json:"bank_account"`
	Items          []*model.CartItem `json:"items"`
	Subtotal       string            `json:"subtotal"`
}

type CheckoutResult struct {
	OrderID    uint
	PaymentIDs []uint
	InvoiceID  uint
}

type CheckoutService interface {
	GroupCartByInstructor(ctx context.Context, userID string) ([]*InstructorGroup, error)
	// Checkout drives the full sequence: group the cart, create the order,
	// submit one payment per instructor group, and optimistically complete.
	// receipts maps instructor id to the uploaded receipt reference.
	Checkout(ctx context.Context, user *model.User, receipts map[uint]string) (*CheckoutResult, error)
}

type checkoutServiceImpl struct {
	cartService    CartService
	orderService   OrderService
	paymentService PaymentService
	gateway        client.PaymentGateway
	notifier       notify.Notifier
	courseRepo     repository.CourseRepository
	instructorRepo repository.InstructorRepository
	// compensate selects the fixed, rolled-back failure behavior instead of
	// the legacy flow that leaves partial state behind.
	compensate bool
	logger     *zap.Logger
}

func NewCheckoutService(
	cartService CartService,
	orderService OrderService,
	paymentService PaymentService,
	gateway client.PaymentGateway,
	notifier notify.Notifier,
	courseRepo repository.CourseRepository,
	instructorRepo repository.InstructorRepository,
	compensate bool,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		cartService:    cartService,
		orderService:   orderService,
		paymentService: paymentService,
		gateway:        gateway,
		notifier:       notifier,
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
		compensate:     compensate,
		logger:         logger,
	}
}

func (s *checkoutServiceImpl) GroupCartByInstructor(ctx context.Context, userID string) ([]*InstructorGroup, error) {
	items, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	// only approved lines are purchasable; pending ones await review and
	// rejected ones never check out
	var purchasable []*model.CartItem
	for _, item := range items {
		if item.Status == model.CartStatusApproved {
			purchasable = append(purchasable, item)
		}
	}
	if len(purchasable) == 0 {
		return nil, ErrEmptyCart
	}

	courseIDs := make([]uint, len(purchasable))
	for i, item := range purchasable {
		courseIDs[i] = item.CourseID
	}
	courses, err := s.courseRepo.FindMany(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("load cart courses: %w", err)
	}
	courseMap := make(map[uint]*model.Course, len(courses))
	for _, course := range courses {
		courseMap[course.ID] = course
	}

	groups := map[uint]*InstructorGroup{}
	subtotals := map[uint]decimal.Decimal{}
	for _, item := range purchasable {
		course, ok := courseMap[item.CourseID]
		if !ok {
			return nil, fmt.Errorf("%w: courses no longer in catalog: %s", ErrValidation, item.CourseTitle)
		}

		group, ok := groups[course.InstructorID]
		if !ok {
			group = &InstructorGroup{InstructorID: course.InstructorID}
			groups[course.InstructorID] = group
			subtotals[course.InstructorID] = decimal.Zero
		}
		group.Items = append(group.Items, item)
		subtotals[course.InstructorID] = subtotals[course.InstructorID].
			Add(money.Parse(effectivePrice(course)).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	instructorIDs := make([]uint, 0, len(groups))
	for id := range groups {
		instructorIDs = append(instructorIDs, id)
	}
	instructors, err := s.instructorRepo.FindMany(ctx, instructorIDs)
	if err != nil {
		return nil, fmt.Errorf("load instructors: %w", err)
	}
	for _, instructor := range instructors {
		if group, ok := groups[instructor.ID]; ok {
			group.InstructorName = instructor.Name
			group.BankAccount = instructor.BankAccount
		}
	}

	result := make([]*InstructorGroup, 0, len(groups))
	for id, group := range groups {
		group.Subtotal = money.Format(subtotals[id])
		result = append(result, group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].InstructorID < result[j].InstructorID
	})

	return result, nil
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, user *model.User, receipts map[uint]string) (*CheckoutResult, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: checkout requires a signed-in user", ErrForbidden)
	}

	groups, err := s.GroupCartByInstructor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	for _, group := range groups {
		if receipts[group.InstructorID] == "" {
			return nil, fmt.Errorf("%w: missing payment receipt for instructor %s",
				ErrValidation, group.InstructorName)
		}
	}

	// resume a pending order from an earlier aborted checkout instead of
	// creating a duplicate
	order, err := s.orderService.FindPendingOrder(ctx, user.ID)
	if err != nil {
		var items []*model.CartItem
		for _, group := range groups {
			items = append(items, group.Items...)
		}

		order, err = s.orderService.CreateOrder(ctx, user.ID, items)
		if err != nil {
			metrics.CheckoutFailures.Inc()
			return nil, err
		}
	}

	var submitted []uint
	for _, group := range groups {
		payment, err := s.paymentService.SubmitPayment(ctx, user.ID, order.ID, receipts[group.InstructorID], group.InstructorID)
		if err != nil {
			return nil, s.abort(ctx, user, order.ID, submitted, fmt.Errorf("submit payment for instructor %s: %w", group.InstructorName, err))
		}
		submitted = append(submitted, payment.ID)

		auth, err := s.gateway.Authorize(ctx, &client.AuthorizationRequest{
			OrderID:      order.ID,
			UserID:       user.ID,
			InstructorID: group.InstructorID,
			Amount:       money.Parse(group.Subtotal),
			ReceiptRef:   receipts[group.InstructorID],
		})
		if err != nil {
			return nil, s.abort(ctx, user, order.ID, submitted, fmt.Errorf("authorize payment: %w", err))
		}
		if !auth.Approved {
			return nil, s.abort(ctx, user, order.ID, submitted, fmt.Errorf("%w: payment was declined", ErrInvalidState))
		}
	}

	// the gateway approved every group, so treat the whole checkout as done:
	// issue the invoice, drop the purchased lines, complete the order
	invoice, err := s.paymentService.IssueInvoice(ctx, order.ID)
	if err != nil {
		return nil, s.abort(ctx, user, order.ID, submitted, err)
	}

	if err := s.cartService.ClearApprovedItems(ctx, user.ID); err != nil {
		return nil, s.abort(ctx, user, order.ID, submitted, fmt.Errorf("clear cart: %w", err))
	}

	if err := s.orderService.CompleteOrder(ctx, order.ID); err != nil {
		return nil, s.abort(ctx, user, order.ID, submitted, err)
	}

	result := &CheckoutResult{
		OrderID:    order.ID,
		PaymentIDs: submitted,
	}
	if invoice != nil {
		result.InvoiceID = invoice.ID
	}

	s.notifier.Notify(user.ID, "سفارش شما با موفقیت ثبت شد", notify.SeveritySuccess)
	s.logger.Info("checkout completed",
		zap.Uint("order_id", order.ID),
		zap.Int("payments", len(submitted)),
	)

	return result, nil
}

// abort surfaces the checkout failure. In legacy mode the already-created
// order and payments are left as they are and the user has to retry; in
// compensating mode the submitted payments are rejected and the order
// canceled so no partial state survives.
func (s *checkoutServiceImpl) abort(ctx context.Context, user *model.User, orderID uint, submitted []uint, cause error) error {
	metrics.CheckoutFailures.Inc()
	s.notifier.Notify(user.ID, "پرداخت انجام نشد: "+cause.Error(), notify.SeverityError)

	if !s.compensate {
		return cause
	}

	for _, paymentID := range submitted {
		if err := s.paymentService.CancelSubmission(ctx, paymentID, "checkout aborted"); err != nil {
			s.logger.Error("compensation failed for payment",
				zap.Uint("payment_id", paymentID),
				zap.Error(err),
			)
		}
	}
	if _, err := s.orderService.CancelOrder(ctx, user, orderID); err != nil {
		s.logger.Error("compensation failed for order",
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
	}

	return cause
}
