package service

import (
	"context"
	"testing"

	"dental-academy-store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLines(t *testing.T, f *fixture, courseIDs ...uint) []*model.CartItem {
	t.Helper()

	items := make([]*model.CartItem, len(courseIDs))
	for i, id := range courseIDs {
		item, err := f.cart.AddToCart(context.Background(), studentID, id, 1)
		require.NoError(t, err)
		items[i] = item
	}
	return items
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.order.CreateOrder(context.Background(), studentID, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderNamesMissingCourses(t *testing.T) {
	f := newFixture(t)

	stale := &model.CartItem{
		ID:          "stale-line",
		UserID:      studentID,
		CourseID:    999,
		CourseTitle: "دوره حذف شده",
		Quantity:    1,
		Status:      model.CartStatusApproved,
	}

	_, err := f.order.CreateOrder(context.Background(), studentID, []*model.CartItem{stale})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "دوره حذف شده")
}

func TestCreateOrderComputesTotalFromPersianPrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items := cartLines(t, f, 1, 2)
	items[0].Quantity = 2 // 2 × ۱,۰۰۰,۰۰۰ + ۵۰۰,۰۰۰

	order, err := f.order.CreateOrder(ctx, studentID, items)
	require.NoError(t, err)

	assert.Equal(t, "۲,۵۰۰,۰۰۰ تومان", order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, model.OrderStatusPending, item.Status)
		assert.False(t, item.PurchaseDate.IsZero())
	}
}

func TestCreateOrderUsesDiscountPrice(t *testing.T) {
	f := newFixture(t)

	items := cartLines(t, f, 3)
	order, err := f.order.CreateOrder(context.Background(), studentID, items)
	require.NoError(t, err)

	assert.Equal(t, "۶۰۰,۰۰۰ تومان", order.TotalAmount)
	assert.Equal(t, "۶۰۰,۰۰۰ تومان", order.Items[0].Price)
}

func TestCancelOrderCascadesToItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.order.CreateOrder(ctx, studentID, cartLines(t, f, 1, 2))
	require.NoError(t, err)

	canceled, err := f.order.CancelOrder(ctx, testStudent, order.ID)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusCanceled, canceled.Status)
	for _, item := range canceled.Items {
		assert.Equal(t, model.OrderStatusCanceled, item.Status)
	}
}

func TestCancelOrderGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.order.CreateOrder(ctx, studentID, cartLines(t, f, 1))
	require.NoError(t, err)

	_, err = f.order.CancelOrder(ctx, &model.User{ID: otherID, Role: model.RoleStudent}, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.order.CancelOrder(ctx, testStudent, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.order.CancelOrder(ctx, testStudent, order.ID)
	require.NoError(t, err)
	_, err = f.order.CancelOrder(ctx, testStudent, order.ID)
	assert.ErrorIs(t, err, ErrInvalidState, "second cancel must fail")
}

func TestCancelCompletedOrderFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.order.CreateOrder(ctx, studentID, cartLines(t, f, 1))
	require.NoError(t, err)
	require.NoError(t, f.order.CompleteOrder(ctx, order.ID))

	_, err = f.order.CancelOrder(ctx, testStudent, order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCompleteOrderFlipsOrderAndItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.order.CreateOrder(ctx, studentID, cartLines(t, f, 1, 2))
	require.NoError(t, err)

	require.NoError(t, f.order.CompleteOrder(ctx, order.ID))

	completed, err := f.order.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, completed.Status)
	for _, item := range completed.Items {
		assert.Equal(t, model.OrderStatusCompleted, item.Status)
	}

	// completed is terminal
	err = f.order.CompleteOrder(ctx, order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGetUserOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.order.CreateOrder(ctx, studentID, cartLines(t, f, 1))
	require.NoError(t, err)

	orders, err := f.order.GetUserOrders(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	none, err := f.order.GetUserOrders(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
