package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dental-academy-store/internal/metrics"
	"dental-academy-store/internal/model"
	"dental-academy-store/internal/money"
	"dental-academy-store/internal/policy"
	"dental-academy-store/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, items []*model.CartItem) (*model.Order, error)
	CancelOrder(ctx context.Context, actor *model.User, orderID uint) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	GetUserOrders(ctx context.Context, userID string) ([]*model.Order, error)
	FindPendingOrder(ctx context.Context, userID string) (*model.Order, error)
	// CompleteOrder is the optimistic checkout path; it flips a pending order
	// and all of its items to completed.
	CompleteOrder(ctx context.Context, orderID uint) error
}

type orderServiceImpl struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	courseRepo repository.CourseRepository
	logger     *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	courseRepo repository.CourseRepository,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:         db,
		orderRepo:  orderRepo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID string, items []*model.CartItem) (*model.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	courseIDs := make([]uint, len(items))
	for i, item := range items {
		courseIDs[i] = item.CourseID
	}

	courses, err := s.courseRepo.FindMany(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("load catalog courses: %w", err)
	}

	courseMap := make(map[uint]*model.Course, len(courses))
	for _, course := range courses {
		courseMap[course.ID] = course
	}

	var missing []string
	for _, item := range items {
		if _, ok := courseMap[item.CourseID]; !ok {
			missing = append(missing, item.CourseTitle)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: courses no longer in catalog: %s",
			ErrValidation, strings.Join(missing, ", "))
	}

	now := time.Now()
	total := decimal.Zero
	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		course := courseMap[item.CourseID]
		price := effectivePrice(course)
		total = total.Add(money.Parse(price).Mul(decimal.NewFromInt(int64(item.Quantity))))

		orderItems[i] = model.OrderItem{
			CourseID:     course.ID,
			CourseTitle:  course.Title,
			Price:        price,
			PurchaseDate: now,
			Status:       model.OrderStatusPending,
		}
	}

	order := &model.Order{
		UserID:      userID,
		TotalAmount: money.Format(total),
		OrderDate:   now,
		Status:      model.OrderStatusPending,
		Items:       orderItems,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(orderItems)),
	)

	return order, nil
}

func (s *orderServiceImpl) CancelOrder(ctx context.Context, actor *model.User, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	if !policy.CanCancelOrder(actor, order) {
		return nil, fmt.Errorf("%w: order %d does not belong to you", ErrForbidden, orderID)
	}
	if order.Status == model.OrderStatusCanceled {
		return nil, fmt.Errorf("%w: order %d is already canceled", ErrInvalidState, orderID)
	}
	if order.Status == model.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: completed order %d cannot be canceled", ErrInvalidState, orderID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.MarkCanceled(ctx, tx, orderID)
	})
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	return order, nil
}

func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *orderServiceImpl) FindPendingOrder(ctx context.Context, userID string) (*model.Order, error) {
	order, err := s.orderRepo.FindPendingByUser(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	return order, nil
}

func (s *orderServiceImpl) CompleteOrder(ctx context.Context, orderID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.MarkCompleted(ctx, tx, orderID)
	})
	if err != nil {
		return fmt.Errorf("%w: order %d is not pending", ErrInvalidState, orderID)
	}

	return nil
}

// effectivePrice prefers the discount price when the catalog carries one.
func effectivePrice(course *model.Course) string {
	if course.DiscountPrice != "" {
		return course.DiscountPrice
	}
	return course.Price
}
