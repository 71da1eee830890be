package service

import (
	"context"
	"testing"

	"dental-academy-store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartAlwaysCreatesNewLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.cart.AddToCart(ctx, studentID, 1, 0)
	require.NoError(t, err)
	second, err := f.cart.AddToCart(ctx, studentID, 1, 2)
	require.NoError(t, err)

	// no merge-on-duplicate-course: two lines for the same course
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, first.Quantity, "quantity below 1 defaults to 1")
	assert.Equal(t, 2, second.Quantity)
	assert.Equal(t, model.CartStatusApproved, first.Status)
	assert.Equal(t, "اندودانتیکس پیشرفته", first.CourseTitle)

	items, err := f.cart.GetCart(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddToCartUnknownCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.cart.AddToCart(context.Background(), studentID, 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFromCartRefusesPendingItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)

	item.Status = model.CartStatusPending
	require.NoError(t, f.cartRepo.Save(ctx, item))

	err = f.cart.RemoveFromCart(ctx, studentID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemPending)

	items, err := f.cart.GetCart(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, items, 1, "pending item must survive the remove attempt")
}

func TestRemoveFromCartOtherUsersItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)

	err = f.cart.RemoveFromCart(ctx, otherID, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)

	require.NoError(t, f.cart.UpdateCartItemQuantity(ctx, studentID, item.ID, 3))

	updated, err := f.cartRepo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
}

func TestUpdateCartItemQuantityBelowOneRemovesItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)

	require.NoError(t, f.cart.UpdateCartItemQuantity(ctx, studentID, item.ID, 0))

	items, err := f.cart.GetCart(ctx, studentID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateCartItemQuantityRefusesPendingItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)
	item.Status = model.CartStatusPending
	require.NoError(t, f.cartRepo.Save(ctx, item))

	err = f.cart.UpdateCartItemQuantity(ctx, studentID, item.ID, 5)
	assert.ErrorIs(t, err, ErrCartItemPending)

	// quantity < 1 delegates to remove, which is also guarded
	err = f.cart.UpdateCartItemQuantity(ctx, studentID, item.ID, 0)
	assert.ErrorIs(t, err, ErrCartItemPending)
}

func TestClearCartRefusesWhenAnyItemPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)
	pending, err := f.cart.AddToCart(ctx, studentID, 2, 1)
	require.NoError(t, err)
	pending.Status = model.CartStatusPending
	require.NoError(t, f.cartRepo.Save(ctx, pending))

	err = f.cart.ClearCart(ctx, studentID)
	assert.ErrorIs(t, err, ErrCartItemPending)

	items, err := f.cart.GetCart(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, items, 2, "clear must be a no-op while a pending item exists")
}

func TestClearCartEmptiesCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)
	_, err = f.cart.AddToCart(ctx, studentID, 2, 1)
	require.NoError(t, err)

	require.NoError(t, f.cart.ClearCart(ctx, studentID))

	items, err := f.cart.GetCart(ctx, studentID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClearApprovedItemsKeepsOnlyPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)
	pending, err := f.cart.AddToCart(ctx, studentID, 2, 1)
	require.NoError(t, err)
	pending.Status = model.CartStatusPending
	require.NoError(t, f.cartRepo.Save(ctx, pending))
	rejected, err := f.cart.AddToCart(ctx, studentID, 3, 1)
	require.NoError(t, err)
	rejected.Status = model.CartStatusRejected
	require.NoError(t, f.cartRepo.Save(ctx, rejected))

	require.NoError(t, f.cart.ClearApprovedItems(ctx, studentID))

	items, err := f.cart.GetCart(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, pending.ID, items[0].ID)
}

func TestSetItemStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.cart.AddToCart(ctx, studentID, 1, 1)
	require.NoError(t, err)

	err = f.cart.SetItemStatus(ctx, testStudent, item.ID, model.CartStatusPending)
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.cart.SetItemStatus(ctx, testAdmin, item.ID, "shipped")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, f.cart.SetItemStatus(ctx, testAdmin, item.ID, model.CartStatusPending))

	updated, err := f.cartRepo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CartStatusPending, updated.Status)
}
