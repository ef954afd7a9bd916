// Package timing derives day-count lag metrics from document milestone
// dates. Every metric requires both of its dates; a missing input yields an
// absent metric, never a zero — zero is a legitimate same-day result and
// must stay distinguishable from "unknown".
package timing

import (
	"math"
	"time"

	"github.com/procmine/docflow/internal/domain"
)

// Compute builds the timing metrics for one document from up to four
// milestone dates: order creation, requested delivery, actual downstream
// (delivery or goods receipt), and invoice/billing. Nil inputs leave the
// dependent metrics nil.
func Compute(orderDate, requestedDate, actualDate, invoiceDate *time.Time) domain.TimingMetrics {
	metrics := domain.TimingMetrics{}
	if d := daysBetween(orderDate, actualDate); d != nil {
		metrics.OrderToDeliveryDays = d
	}
	if d := daysBetween(requestedDate, actualDate); d != nil {
		metrics.DeliveryDelayDays = d
	}
	if d := daysBetween(actualDate, invoiceDate); d != nil {
		metrics.InvoiceLagDays = d
	}
	if d := daysBetween(orderDate, invoiceDate); d != nil {
		metrics.OrderToInvoiceDays = d
	}
	return metrics
}

func daysBetween(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	// Floor rather than truncate so a partial day backwards counts as -1,
	// not 0, keeping negative lags visible on timestamped inputs.
	days := int(math.Floor(to.Sub(*from).Hours() / 24))
	return &days
}
