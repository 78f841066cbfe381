package domain

import (
	"errors"
	"testing"
	"time"
)

func orderWith(statuses ...LineStatus) *Order {
	o := &Order{
		ID:          "ord_1",
		OrderNumber: "RFQ-00000001",
		CreatorID:   "cust_1",
		CreatedAt:   time.Now().UTC(),
	}
	for i, s := range statuses {
		o.Lines = append(o.Lines, OrderLine{
			ID:         string(rune('a' + i)),
			SupplierID: "sup_1",
			ProductID:  "prod_1",
			Quantity:   1,
			Status:     s,
		})
	}
	o.Status = DeriveOrderStatus(o.Lines)
	return o
}

func quote() SupplierResponse {
	return SupplierResponse{
		PriceCents:        1250,
		ShippingCents:     300,
		EstimatedDelivery: time.Now().UTC().AddDate(0, 0, 5),
		AvailableQuantity: 10,
	}
}

func TestDeriveOrderStatus(t *testing.T) {
	cases := []struct {
		name  string
		lines []LineStatus
		want  OrderStatus
	}{
		{"all pending", []LineStatus{LinePending, LinePending}, OrderNew},
		{"one responded", []LineStatus{LinePending, LineResponded}, OrderNegotiating},
		{"all responded", []LineStatus{LineResponded, LineResponded}, OrderNegotiating},
		{"responded plus approved", []LineStatus{LineResponded, LineApproved}, OrderUnderConfirmation},
		{"pending plus approved", []LineStatus{LinePending, LineApproved}, OrderUnderConfirmation},
		{"all approved", []LineStatus{LineApproved, LineApproved}, OrderCompleted},
		{"approved plus rejected", []LineStatus{LineApproved, LineRejected}, OrderCompleted},
		{"all rejected", []LineStatus{LineRejected, LineRejected}, OrderCancelled},
		{"no lines", nil, OrderCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var lines []OrderLine
			for _, s := range tc.lines {
				lines = append(lines, OrderLine{Status: s})
			}
			if got := DeriveOrderStatus(lines); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

// Recomputing without mutation is stable.
func TestDeriveOrderStatus_Deterministic(t *testing.T) {
	lines := []OrderLine{
		{Status: LineResponded}, {Status: LineApproved}, {Status: LinePending},
	}
	first := DeriveOrderStatus(lines)
	second := DeriveOrderStatus(lines)
	if first != second {
		t.Fatalf("derivation not referentially transparent: %s then %s", first, second)
	}
}

func TestApproveLine_LegalTransition(t *testing.T) {
	o := orderWith(LineResponded, LinePending)

	line, err := o.ApproveLine("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Status != LineApproved {
		t.Errorf("expected line APPROVED, got %s", line.Status)
	}
	if o.Status != OrderUnderConfirmation {
		t.Errorf("expected order UNDER_CONFIRMATION, got %s", o.Status)
	}
}

// Approving an already-approved line twice is a no-op, not an error.
func TestApproveLine_IdempotentRetry(t *testing.T) {
	o := orderWith(LineResponded, LineResponded)

	if _, err := o.ApproveLine("a"); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	before := o.Status

	line, err := o.ApproveLine("a")
	if err != nil {
		t.Fatalf("retry must be a no-op, got error: %v", err)
	}
	if line.Status != LineApproved {
		t.Errorf("expected line to stay APPROVED, got %s", line.Status)
	}
	if o.Status != before {
		t.Errorf("retry must not change order status: %s -> %s", before, o.Status)
	}
}

func TestApproveLine_PendingLineRejected(t *testing.T) {
	o := orderWith(LinePending)

	_, err := o.ApproveLine("a")
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
	if o.Lines[0].Status != LinePending {
		t.Error("failed transition must leave the line unchanged")
	}
}

func TestApproveLine_UnknownLine(t *testing.T) {
	o := orderWith(LineResponded)
	if _, err := o.ApproveLine("zzz"); !errors.Is(err, ErrOrderLineNotFound) {
		t.Fatalf("expected ErrOrderLineNotFound, got %v", err)
	}
}

func TestRespondLine_AttachesQuote(t *testing.T) {
	o := orderWith(LinePending, LinePending)

	line, err := o.RespondLine("a", quote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Status != LineResponded {
		t.Errorf("expected RESPONDED, got %s", line.Status)
	}
	if line.Response == nil || line.Response.PriceCents != 1250 {
		t.Error("response must carry the quote")
	}
	if o.Status != OrderNegotiating {
		t.Errorf("expected order NEGOTIATING, got %s", o.Status)
	}
}

func TestRespondLine_NonPendingRejected(t *testing.T) {
	o := orderWith(LineResponded)

	_, err := o.RespondLine("a", quote())
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestCancel_FromNewAndNegotiating(t *testing.T) {
	for _, o := range []*Order{orderWith(LinePending, LinePending), orderWith(LineResponded, LinePending)} {
		if err := o.Cancel(); err != nil {
			t.Fatalf("cancel from %s: %v", o.Status, err)
		}
		if o.Status != OrderCancelled {
			t.Errorf("expected CANCELLED, got %s", o.Status)
		}
		for _, l := range o.Lines {
			if l.Status != LineRejected {
				t.Errorf("expected all lines REJECTED, got %s", l.Status)
			}
		}
	}
}

// Cancelling a completed order fails and leaves order and lines unchanged.
func TestCancel_CompletedOrderUnchanged(t *testing.T) {
	o := orderWith(LineApproved, LineApproved)

	err := o.Cancel()
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
	if o.Status != OrderCompleted {
		t.Errorf("order status must stay COMPLETED, got %s", o.Status)
	}
	for _, l := range o.Lines {
		if l.Status != LineApproved {
			t.Errorf("line status must stay APPROVED, got %s", l.Status)
		}
	}
}

func TestCancel_UnderConfirmationRejected(t *testing.T) {
	o := orderWith(LineApproved, LineResponded)

	if o.CanCancel() {
		t.Error("cancel must not be offered once a line is approved")
	}
	if err := o.Cancel(); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestRecompute_CancelledIsTerminal(t *testing.T) {
	o := orderWith(LinePending)
	if err := o.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	o.Recompute()
	if o.Status != OrderCancelled {
		t.Errorf("recompute must not resurrect a cancelled order, got %s", o.Status)
	}
}
