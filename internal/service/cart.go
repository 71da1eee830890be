package service

import (
	"context"
	"fmt"

	"dental-academy-store/internal/model"
	"dental-academy-store/internal/policy"
	"dental-academy-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) ([]*model.CartItem, error)
	AddToCart(ctx context.Context, userID string, courseID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, itemID string) error
	UpdateCartItemQuantity(ctx context.Context, userID, itemID string, quantity int) error
	ClearCart(ctx context.Context, userID string) error
	ClearApprovedItems(ctx context.Context, userID string) error
	SetItemStatus(ctx context.Context, actor *model.User, itemID string, status model.CartStatus) error
}

type cartServiceImpl struct {
	cartRepo   repository.CartRepository
	courseRepo repository.CourseRepository
	logger     *zap.Logger
}

func NewCartService(
	cartRepo repository.CartRepository,
	courseRepo repository.CourseRepository,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		cartRepo:   cartRepo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) ([]*model.CartItem, error) {
	return s.cartRepo.FindByUser(ctx, userID)
}

// AddToCart always creates a new line; adding the same course twice gives two
// lines rather than bumping a quantity.
func (s *cartServiceImpl) AddToCart(ctx context.Context, userID string, courseID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: course %d not in catalog", ErrNotFound, courseID)
	}

	item := &model.CartItem{
		ID:          uuid.NewString(),
		UserID:      userID,
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Quantity:    quantity,
		Status:      model.CartStatusApproved,
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("store cart item: %w", err)
	}

	return item, nil
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, userID, itemID string) error {
	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if item.Status == model.CartStatusPending {
		s.logger.Warn("refusing to remove pending cart item",
			zap.String("item_id", itemID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("%w: %s", ErrCartItemPending, item.CourseTitle)
	}

	return s.cartRepo.Delete(ctx, itemID)
}

func (s *cartServiceImpl) UpdateCartItemQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, userID, itemID)
	}

	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if item.Status == model.CartStatusPending {
		s.logger.Warn("refusing to change quantity of pending cart item",
			zap.String("item_id", itemID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("%w: %s", ErrCartItemPending, item.CourseTitle)
	}

	item.Quantity = quantity
	return s.cartRepo.Save(ctx, item)
}

// ClearCart empties the cart unless any line is still pending review.
func (s *cartServiceImpl) ClearCart(ctx context.Context, userID string) error {
	pending, err := s.cartRepo.CountByUserAndStatus(ctx, userID, model.CartStatusPending)
	if err != nil {
		return fmt.Errorf("count pending cart items: %w", err)
	}
	if pending > 0 {
		s.logger.Warn("refusing to clear cart with pending items",
			zap.String("user_id", userID),
			zap.Int64("pending", pending),
		)
		return ErrCartItemPending
	}

	return s.cartRepo.DeleteByUser(ctx, userID)
}

// ClearApprovedItems is the post-checkout cleanup: it keeps only lines still
// pending review and drops everything else.
func (s *cartServiceImpl) ClearApprovedItems(ctx context.Context, userID string) error {
	return s.cartRepo.DeleteByUserExceptStatus(ctx, userID, model.CartStatusPending)
}

// SetItemStatus is the instructor-review flow that produces the pending lines
// the guards above protect.
func (s *cartServiceImpl) SetItemStatus(ctx context.Context, actor *model.User, itemID string, status model.CartStatus) error {
	if !policy.CanModerateCart(actor) {
		return fmt.Errorf("%w: cart moderation requires instructor or admin role", ErrForbidden)
	}

	switch status {
	case model.CartStatusPending, model.CartStatusApproved, model.CartStatusRejected:
	default:
		return fmt.Errorf("%w: unknown cart status %q", ErrValidation, status)
	}

	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("%w: cart item %s", ErrNotFound, itemID)
	}

	item.Status = status
	return s.cartRepo.Save(ctx, item)
}

func (s *cartServiceImpl) findOwnedItem(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: cart item %s", ErrNotFound, itemID)
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("%w: cart item %s", ErrNotFound, itemID)
	}

	return item, nil
}
