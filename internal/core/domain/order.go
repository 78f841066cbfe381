package domain

import (
	"fmt"
	"time"
)

// OrderStatus is the aggregate status of an RFQ order. Except for the
// terminal CANCELLED transition it is always a projection over the line
// statuses, never independently settable.
type OrderStatus string

const (
	OrderNew               OrderStatus = "NEW"
	OrderNegotiating       OrderStatus = "NEGOTIATING"
	OrderUnderConfirmation OrderStatus = "UNDER_CONFIRMATION"
	OrderCompleted         OrderStatus = "COMPLETED"
	OrderCancelled         OrderStatus = "CANCELLED"
)

// LineStatus is the negotiation state of a single order line.
type LineStatus string

const (
	LinePending   LineStatus = "PENDING"
	LineResponded LineStatus = "RESPONDED"
	LineApproved  LineStatus = "APPROVED"
	LineRejected  LineStatus = "REJECTED"
)

// SupplierResponse is the quote a supplier attaches when responding to a
// line. Monetary amounts are integer cents.
type SupplierResponse struct {
	PriceCents        int64     `json:"price_cents" bson:"price_cents"`
	ShippingCents     int64     `json:"shipping_cents" bson:"shipping_cents"`
	EstimatedDelivery time.Time `json:"estimated_delivery" bson:"estimated_delivery"`
	AvailableQuantity int       `json:"available_quantity" bson:"available_quantity"`
}

// OrderLine is the per-supplier, per-product unit of negotiation within an
// RFQ order. Lines are created in a batch at checkout, one per cart item,
// and become immutable once the parent order is terminal.
type OrderLine struct {
	ID         string            `json:"id" bson:"id"`
	SupplierID string            `json:"supplier_id" bson:"supplier_id"`
	ProductID  string            `json:"product_id" bson:"product_id"`
	Name       string            `json:"name" bson:"name"`
	Quantity   int               `json:"quantity" bson:"quantity"`
	Status     LineStatus        `json:"status" bson:"status"`
	Response   *SupplierResponse `json:"response,omitempty" bson:"response,omitempty"`
}

// Order is the durable RFQ aggregate produced by checkout.
type Order struct {
	ID             string      `json:"id" bson:"_id"`
	OrderNumber    string      `json:"order_number" bson:"order_number"`
	CreatorID      string      `json:"creator_id" bson:"creator_id"`
	Status         OrderStatus `json:"status" bson:"status"`
	Lines          []OrderLine `json:"lines" bson:"lines"`
	IdempotencyKey string      `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
}

// DeriveOrderStatus projects the aggregate status from the line statuses.
// Deterministic and side-effect free; recomputing without mutation always
// yields the same value.
func DeriveOrderStatus(lines []OrderLine) OrderStatus {
	var pending, responded, approved, rejected int
	for _, l := range lines {
		switch l.Status {
		case LinePending:
			pending++
		case LineResponded:
			responded++
		case LineApproved:
			approved++
		case LineRejected:
			rejected++
		}
	}

	open := pending + responded
	switch {
	case open == 0 && approved > 0:
		return OrderCompleted
	case open == 0 && rejected > 0:
		return OrderCancelled
	case open == 0:
		// Zero open lines on an empty order counts as completed.
		return OrderCompleted
	case approved > 0:
		return OrderUnderConfirmation
	case responded > 0:
		return OrderNegotiating
	default:
		return OrderNew
	}
}

// Recompute refreshes the derived aggregate status in place. A cancelled
// order is terminal and keeps its status.
func (o *Order) Recompute() {
	if o.Status == OrderCancelled {
		return
	}
	o.Status = DeriveOrderStatus(o.Lines)
}

// IsTerminal reports whether the order admits no further line mutation.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderCompleted || o.Status == OrderCancelled
}

// CanCancel reports whether buyer cancellation is still offered. Cancellation
// is legal only before any line has been approved.
func (o *Order) CanCancel() bool {
	return o.Status == OrderNew || o.Status == OrderNegotiating
}

// Line returns the line with the given id.
func (o *Order) Line(lineID string) (*OrderLine, error) {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i], nil
		}
	}
	return nil, ErrOrderLineNotFound
}

// ApproveLine moves a RESPONDED line to APPROVED and recomputes the order
// status. Retrying on an already-APPROVED line is a no-op, not an error.
func (o *Order) ApproveLine(lineID string) (*OrderLine, error) {
	line, err := o.Line(lineID)
	if err != nil {
		return nil, err
	}
	if line.Status == LineApproved {
		return line, nil
	}
	if o.IsTerminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrPreconditionFailed, o.Status)
	}
	if line.Status != LineResponded {
		return nil, fmt.Errorf("%w: cannot approve line in status %s", ErrPreconditionFailed, line.Status)
	}
	line.Status = LineApproved
	o.Recompute()
	return line, nil
}

// RespondLine attaches a supplier quote to a PENDING line and recomputes the
// order status.
func (o *Order) RespondLine(lineID string, resp SupplierResponse) (*OrderLine, error) {
	if o.IsTerminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrPreconditionFailed, o.Status)
	}
	line, err := o.Line(lineID)
	if err != nil {
		return nil, err
	}
	if line.Status != LinePending {
		return nil, fmt.Errorf("%w: cannot respond to line in status %s", ErrPreconditionFailed, line.Status)
	}
	line.Status = LineResponded
	line.Response = &resp
	o.Recompute()
	return line, nil
}

// Cancel forces the terminal CANCELLED state: every line becomes REJECTED.
// Legal only from NEW or NEGOTIATING.
func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return fmt.Errorf("%w: cannot cancel order in status %s", ErrPreconditionFailed, o.Status)
	}
	for i := range o.Lines {
		o.Lines[i].Status = LineRejected
	}
	o.Status = OrderCancelled
	return nil
}
