// Package policy holds the role capability checks that used to be inlined in
// the business logic, so authorization rules are testable on their own.
package policy

import "dental-academy-store/internal/model"

// roles allowed to administer payments (verify / reject / refund)
var paymentAdmins = map[model.Role]bool{
	model.RoleAdmin:      true,
	model.RoleSuperAdmin: true,
}

func CanVerifyPayment(u *model.User) bool {
	return u != nil && paymentAdmins[u.Role]
}

func CanRejectPayment(u *model.User) bool {
	return u != nil && paymentAdmins[u.Role]
}

func CanRefundPayment(u *model.User) bool {
	return u != nil && paymentAdmins[u.Role]
}

func CanViewFinancialReport(u *model.User) bool {
	return u != nil && paymentAdmins[u.Role]
}

// CanCancelOrder allows the order's owner and payment admins.
func CanCancelOrder(u *model.User, o *model.Order) bool {
	if u == nil || o == nil {
		return false
	}
	return u.ID == o.UserID || paymentAdmins[u.Role]
}

// CanModerateCart covers the instructor-review flow that flips cart lines
// between pending and approved.
func CanModerateCart(u *model.User) bool {
	if u == nil {
		return false
	}
	return u.Role == model.RoleInstructor || paymentAdmins[u.Role]
}
