package timing

import (
	"testing"
	"time"
)

func date(day int) *time.Time {
	t := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeAllDates(t *testing.T) {
	m := Compute(date(1), date(5), date(7), date(10))

	if m.OrderToDeliveryDays == nil || *m.OrderToDeliveryDays != 6 {
		t.Fatalf("unexpected order_to_delivery: %v", m.OrderToDeliveryDays)
	}
	if m.DeliveryDelayDays == nil || *m.DeliveryDelayDays != 2 {
		t.Fatalf("unexpected delivery_delay: %v", m.DeliveryDelayDays)
	}
	if m.InvoiceLagDays == nil || *m.InvoiceLagDays != 3 {
		t.Fatalf("unexpected invoice_lag: %v", m.InvoiceLagDays)
	}
	if m.OrderToInvoiceDays == nil || *m.OrderToInvoiceDays != 9 {
		t.Fatalf("unexpected order_to_invoice: %v", m.OrderToInvoiceDays)
	}
}

func TestComputeEarlyDeliveryIsNegative(t *testing.T) {
	m := Compute(date(1), date(10), date(7), nil)
	if m.DeliveryDelayDays == nil || *m.DeliveryDelayDays != -3 {
		t.Fatalf("expected -3 day delay, got %v", m.DeliveryDelayDays)
	}
}

func TestComputePartialDayBackwardsFloors(t *testing.T) {
	order := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	// Twelve hours before the order: a negative partial day must floor to
	// -1, not round towards zero.
	delivery := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	invoice := time.Date(2024, 1, 3, 18, 0, 0, 0, time.UTC)

	m := Compute(&order, nil, &delivery, &invoice)
	if m.OrderToDeliveryDays == nil || *m.OrderToDeliveryDays != -1 {
		t.Fatalf("expected -1 days, got %v", m.OrderToDeliveryDays)
	}
	// Forwards a partial day still floors: 42h is 1 day, not 2.
	if m.InvoiceLagDays == nil || *m.InvoiceLagDays != 1 {
		t.Fatalf("expected 1 day invoice lag, got %v", m.InvoiceLagDays)
	}
}

func TestComputeMissingDatesStayNil(t *testing.T) {
	m := Compute(date(1), nil, nil, date(10))
	if m.OrderToDeliveryDays != nil {
		t.Fatalf("expected nil order_to_delivery without delivery date")
	}
	if m.DeliveryDelayDays != nil {
		t.Fatalf("expected nil delivery_delay without both dates")
	}
	if m.InvoiceLagDays != nil {
		t.Fatalf("expected nil invoice_lag without delivery date")
	}
	if m.OrderToInvoiceDays == nil || *m.OrderToInvoiceDays != 9 {
		t.Fatalf("unexpected order_to_invoice: %v", m.OrderToInvoiceDays)
	}

	empty := Compute(nil, nil, nil, nil)
	if empty.OrderToDeliveryDays != nil || empty.OrderToInvoiceDays != nil {
		t.Fatalf("expected all-nil metrics, got %+v", empty)
	}
}
