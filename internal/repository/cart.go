package repository

import (
	"context"
	"dental-academy-store/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	Create(ctx context.Context, item *model.CartItem) error
	FindByID(ctx context.Context, itemID string) (*model.CartItem, error)
	FindByUser(ctx context.Context, userID string) ([]*model.CartItem, error)
	Save(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, itemID string) error
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteByUserExceptStatus drops every line of the user's cart whose
	// status differs from keep.
	DeleteByUserExceptStatus(ctx context.Context, userID string, keep model.CartStatus) error
	CountByUserAndStatus(ctx context.Context, userID string, status model.CartStatus) (int64, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepoImpl) FindByID(ctx context.Context, itemID string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.CartItem, error) {
	items := []*model.CartItem{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) Save(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepoImpl) Delete(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) DeleteByUserExceptStatus(ctx context.Context, userID string, keep model.CartStatus) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, keep).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) CountByUserAndStatus(ctx context.Context, userID string, status model.CartStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Where("status = ?", status).
		Count(&count).Error

	return count, err
}
