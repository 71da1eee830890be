package repository

import (
	"context"
	"dental-academy-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, paymentID uint) (*model.Payment, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Payment, error)
	FindByOrder(ctx context.Context, orderID uint) ([]*model.Payment, error)
	List(ctx context.Context) ([]*model.Payment, error)
	// MarkVerified moves a pending payment to verified and stamps the
	// verification date. Returns gorm.ErrRecordNotFound when the payment is
	// not in the expected prior state.
	MarkVerified(ctx context.Context, tx *gorm.DB, paymentID uint, at time.Time) error
	MarkRejected(ctx context.Context, tx *gorm.DB, paymentID uint, reason string) error
	MarkRefunded(ctx context.Context, tx *gorm.DB, paymentID uint, reason string) error
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByID(ctx context.Context, paymentID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("id = ?", paymentID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submission_date DESC").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepoImpl) FindByOrder(ctx context.Context, orderID uint) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepoImpl) List(ctx context.Context) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepoImpl) MarkVerified(ctx context.Context, tx *gorm.DB, paymentID uint, at time.Time) error {
	return r.transition(ctx, tx, paymentID, model.PaymentStatusPending, map[string]interface{}{
		"status":            model.PaymentStatusVerified,
		"verification_date": at,
	})
}

func (r *paymentRepoImpl) MarkRejected(ctx context.Context, tx *gorm.DB, paymentID uint, reason string) error {
	return r.transition(ctx, tx, paymentID, model.PaymentStatusPending, map[string]interface{}{
		"status":           model.PaymentStatusRejected,
		"rejection_reason": reason,
	})
}

func (r *paymentRepoImpl) MarkRefunded(ctx context.Context, tx *gorm.DB, paymentID uint, reason string) error {
	return r.transition(ctx, tx, paymentID, model.PaymentStatusVerified, map[string]interface{}{
		"status":        model.PaymentStatusRefunded,
		"refund_reason": reason,
	})
}

// transition performs a guarded forward status move; the prior-state filter in
// the where clause is what keeps transitions from ever reversing.
func (r *paymentRepoImpl) transition(ctx context.Context, tx *gorm.DB, paymentID uint, from model.PaymentStatus, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Where("status = ?", from).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
