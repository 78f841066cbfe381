package ports

import "context"

// FinalizeInput carries the checkout request.
type FinalizeInput struct {
	CustomerID     string
	IdempotencyKey string
}

// FinalizeResult reports the placed order. CartCleared=false means the order
// was created but the follow-up cart clear failed; the cart stays dirty for
// a later retry and the checkout still counts as a success.
type FinalizeResult struct {
	OrderID        string
	OrderNumber    string
	LineCount      int
	CartCleared    bool
	AlreadyExisted bool
}

// CheckoutService converts the cart into exactly one persisted RFQ order
// with one line per item. Either the order is created whole or the cart is
// left untouched; there is no partial submission.
type CheckoutService interface {
	Finalize(ctx context.Context, input FinalizeInput) (*FinalizeResult, error)
}
