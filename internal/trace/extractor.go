// Package trace groups activity-log events into per-case traces and derives
// process-variant statistics from them.
package trace

import (
	"sort"
	"strings"

	"github.com/procmine/docflow/internal/domain"
)

// variantSeparator joins activity names into a variant string.
const variantSeparator = " → "

// Extractor turns flat event sequences into ordered traces and variant
// counts. An optional translation table maps source-specific activity names
// onto a canonical cross-domain vocabulary (many-to-one) before variant
// strings are built.
type Extractor struct {
	translation map[string]string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTranslation applies an activity-name translation table.
func WithTranslation(table map[string]string) Option {
	return func(e *Extractor) {
		e.translation = table
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultActivityTranslation maps the purchase-order-handling activity
// vocabulary onto the canonical order-lifecycle vocabulary shared by both
// process directions.
func DefaultActivityTranslation() map[string]string {
	return map[string]string{
		"Create Purchase Order Item": "OrderCreated",
		"Record Purchase Order Item": "OrderCreated",

		"Record Goods Receipt": "DeliveryCreated",
		"Receive Goods":        "GoodsIssue",
		"Clear Goods Receipt":  "GoodsIssue",

		"Record Invoice Receipt": "InvoiceCreated",
		"Create Invoice":         "InvoiceCreated",
		"Receive Invoice":        "InvoiceCreated",
		"Scan Invoice":           "InvoiceCreated",

		"3-way match":    "InvoiceVerified",
		"2-way match":    "InvoiceVerified",
		"Record Invoice": "InvoiceVerified",

		"Vendor creates invoice":    "InvoiceCreated",
		"Vendor creates debit memo": "DebitMemo",

		"Clear Invoice":  "PaymentReceived",
		"Record Payment": "PaymentReceived",

		"Change Price":               "OrderChanged",
		"Change Quantity":            "OrderChanged",
		"Change Delivery Date":       "OrderChanged",
		"Change Vendor":              "OrderChanged",
		"Cancel Goods Receipt":       "DeliveryCancelled",
		"Cancel Invoice Receipt":     "InvoiceCancelled",
		"Delete Purchase Order Item": "OrderCancelled",

		"Release Purchase Order": "OrderApproved",
		"Approve Purchase Order": "OrderApproved",

		"Block Purchase Order Item":   "CreditBlock",
		"Unblock Purchase Order Item": "CreditRelease",
		"Set Payment Block":           "CreditBlock",
		"Remove Payment Block":        "CreditRelease",
	}
}

// Traces groups events by case id and sorts each group by timestamp
// ascending. Events with an absent timestamp sort as if their timestamp were
// the minimum possible value; equal (or absent) timestamps keep their input
// order. Case order follows first encounter in the input.
func (e *Extractor) Traces(events []domain.Event) []domain.Trace {
	grouped := map[string][]domain.Event{}
	var order []string
	for _, event := range events {
		if event.CaseID == "" {
			continue
		}
		if _, ok := grouped[event.CaseID]; !ok {
			order = append(order, event.CaseID)
		}
		grouped[event.CaseID] = append(grouped[event.CaseID], event)
	}

	traces := make([]domain.Trace, 0, len(order))
	for _, caseID := range order {
		caseEvents := grouped[caseID]
		sort.SliceStable(caseEvents, func(i, j int) bool {
			a, b := caseEvents[i].Timestamp, caseEvents[j].Timestamp
			if a == nil {
				return b != nil
			}
			if b == nil {
				return false
			}
			return a.Before(*b)
		})
		traces = append(traces, domain.Trace{CaseID: caseID, Events: caseEvents})
	}
	return traces
}

// Translate returns the canonical activity name for a source activity, or
// the input unchanged when the table has no entry.
func (e *Extractor) Translate(activity string) string {
	if canonical, ok := e.translation[activity]; ok {
		return canonical
	}
	return activity
}

// VariantOf builds the variant string for one trace.
func (e *Extractor) VariantOf(t domain.Trace) string {
	names := make([]string, len(t.Events))
	for i, event := range t.Events {
		names[i] = e.Translate(event.Activity)
	}
	return strings.Join(names, variantSeparator)
}

// TopVariants counts variant frequency across all traces and returns the n
// most common, ties broken by first-encountered order. n <= 0 returns every
// variant.
func (e *Extractor) TopVariants(traces []domain.Trace, n int) []domain.Variant {
	counts := map[string]int{}
	var order []string
	for _, t := range traces {
		variant := e.VariantOf(t)
		if _, ok := counts[variant]; !ok {
			order = append(order, variant)
		}
		counts[variant]++
	}

	variants := make([]domain.Variant, 0, len(order))
	for _, sequence := range order {
		variants = append(variants, domain.Variant{Sequence: sequence, Count: counts[sequence]})
	}
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Count > variants[j].Count
	})

	if n > 0 && len(variants) > n {
		variants = variants[:n]
	}
	return variants
}
