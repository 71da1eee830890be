package policy

import (
	"testing"

	"dental-academy-store/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestPaymentAdminCapabilities(t *testing.T) {
	admin := &model.User{ID: "admin@example.com", Role: model.RoleAdmin}
	super := &model.User{ID: "root@example.com", Role: model.RoleSuperAdmin}
	student := &model.User{ID: "student@example.com", Role: model.RoleStudent}
	blogger := &model.User{ID: "blogger@example.com", Role: model.RoleBlogger}

	for _, u := range []*model.User{admin, super} {
		assert.True(t, CanVerifyPayment(u), "role %s", u.Role)
		assert.True(t, CanRejectPayment(u), "role %s", u.Role)
		assert.True(t, CanRefundPayment(u), "role %s", u.Role)
		assert.True(t, CanViewFinancialReport(u), "role %s", u.Role)
	}
	for _, u := range []*model.User{student, blogger, nil} {
		assert.False(t, CanVerifyPayment(u))
		assert.False(t, CanRejectPayment(u))
		assert.False(t, CanRefundPayment(u))
		assert.False(t, CanViewFinancialReport(u))
	}
}

func TestCanCancelOrder(t *testing.T) {
	order := &model.Order{ID: 1, UserID: "owner@example.com"}

	owner := &model.User{ID: "owner@example.com", Role: model.RoleStudent}
	other := &model.User{ID: "other@example.com", Role: model.RoleStudent}
	admin := &model.User{ID: "admin@example.com", Role: model.RoleAdmin}

	assert.True(t, CanCancelOrder(owner, order))
	assert.True(t, CanCancelOrder(admin, order))
	assert.False(t, CanCancelOrder(other, order))
	assert.False(t, CanCancelOrder(nil, order))
	assert.False(t, CanCancelOrder(owner, nil))
}

func TestCanModerateCart(t *testing.T) {
	assert.True(t, CanModerateCart(&model.User{Role: model.RoleInstructor}))
	assert.True(t, CanModerateCart(&model.User{Role: model.RoleAdmin}))
	assert.False(t, CanModerateCart(&model.User{Role: model.RoleStudent}))
	assert.False(t, CanModerateCart(nil))
}
