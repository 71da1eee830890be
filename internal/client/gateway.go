package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentGateway is the seam a real card/bank gateway would plug into. The
// storefront ships with the mock implementation below, which approves every
// authorization instantly; the checkout orchestrator treats its answer as
// final with no later callback.
type PaymentGateway interface {
	Authorize(ctx context.Context, req *AuthorizationRequest) (*AuthorizationResult, error)
}

type AuthorizationRequest struct {
	OrderID      uint
	UserID       string
	InstructorID uint
	Amount       decimal.Decimal
	ReceiptRef   string
}

type AuthorizationResult struct {
	Approved  bool
	Reference string
}

type mockGateway struct{}

func NewMockGateway() PaymentGateway {
	return &mockGateway{}
}

func (g *mockGateway) Authorize(ctx context.Context, req *AuthorizationRequest) (*AuthorizationResult, error) {
	return &AuthorizationResult{
		Approved:  true,
		Reference: uuid.NewString(),
	}, nil
}
