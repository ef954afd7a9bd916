package flow

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/procmine/docflow/internal/domain"
)

// InferencePatterns are the activity-name substrings that classify an event
// as a document-creation, goods-movement or invoice milestone. Matching is
// case-sensitive substring containment — this is a heuristic, so the table is
// exported and overridable rather than hard-coded.
type InferencePatterns struct {
	Creation      []string
	GoodsMovement []string
	Invoice       []string
}

// DefaultInferencePatterns covers the purchase-order-handling vocabulary the
// inference was originally tuned on.
func DefaultInferencePatterns() InferencePatterns {
	return InferencePatterns{
		Creation:      []string{"Create", "Record Purchase Order"},
		GoodsMovement: []string{"Goods Receipt", "Receive Goods"},
		Invoice:       []string{"Invoice"},
	}
}

func matchesAny(activity string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(activity, pattern) {
			return true
		}
	}
	return false
}

// Infer derives flow edges from an activity log when no explicit flow table
// exists. For each document already in the graph it scans that document's
// events in timestamp order: the earliest creation match sets the creation
// date; the earliest goods-movement match creates a synthetic goods-receipt
// node and a creation edge; the earliest invoice match creates a synthetic
// invoice-receipt node linked to the goods receipt when one exists, directly
// to the document otherwise. Synthetic numbers are deterministic in the
// source document number, so repeated runs reproduce identical graphs.
func (b *Builder) Infer(graph *Graph, events []domain.Event, patterns InferencePatterns) []domain.Warning {
	var warnings []domain.Warning

	byDocument := map[string][]domain.Event{}
	for _, event := range events {
		if event.DocumentNumber == "" {
			continue
		}
		byDocument[event.DocumentNumber] = append(byDocument[event.DocumentNumber], event)
	}

	inferred := 0
	for _, number := range append([]string(nil), graph.Order...) {
		doc := graph.Document(number)
		docEvents := byDocument[number]
		if len(docEvents) == 0 {
			continue
		}
		sort.SliceStable(docEvents, func(i, j int) bool {
			return eventBefore(docEvents[i], docEvents[j])
		})

		var created, goods, invoice *domain.Event
		for i := range docEvents {
			event := &docEvents[i]
			if event.Timestamp == nil {
				continue
			}
			if created == nil && matchesAny(event.Activity, patterns.Creation) {
				created = event
			}
			if goods == nil && matchesAny(event.Activity, patterns.GoodsMovement) {
				goods = event
			}
			if invoice == nil && matchesAny(event.Activity, patterns.Invoice) {
				invoice = event
			}
		}

		if created != nil && doc.CreatedAt == nil {
			doc.CreatedAt = created.Timestamp
		}

		var receiptNumber string
		if goods != nil {
			receiptNumber = domain.GoodsReceiptNumber(number)
			graph.Add(&domain.Document{
				Number:    receiptNumber,
				Type:      domain.TypeGoodsReceipt,
				Category:  domain.CategoryGoodsReceipt,
				CreatedAt: goods.Timestamp,
				PartyID:   doc.PartyID,
				Synthetic: true,
			})
			graph.AddEdge(domain.FlowEdge{
				PrecedingDoc:  number,
				PrecedingCat:  doc.Category,
				SubsequentDoc: receiptNumber,
				SubsequentCat: domain.CategoryGoodsReceipt,
				OccurredAt:    goods.Timestamp,
			})
			inferred++
		}

		if invoice != nil {
			invoiceNumber := domain.InvoiceReceiptNumber(number)
			graph.Add(&domain.Document{
				Number:    invoiceNumber,
				Type:      domain.TypeInvoiceReceipt,
				Category:  domain.CategoryInvoiceReceipt,
				CreatedAt: invoice.Timestamp,
				PartyID:   doc.PartyID,
				Synthetic: true,
			})
			edge := domain.FlowEdge{
				PrecedingDoc:  number,
				PrecedingCat:  doc.Category,
				SubsequentDoc: invoiceNumber,
				SubsequentCat: domain.CategoryInvoiceReceipt,
				OccurredAt:    invoice.Timestamp,
			}
			if receiptNumber != "" {
				edge.PrecedingDoc = receiptNumber
				edge.PrecedingCat = domain.CategoryGoodsReceipt
			}
			graph.AddEdge(edge)
			inferred++
		}

		if created == nil && doc.CreatedAt == nil {
			warnings = append(warnings, domain.Warning{
				Resource: "events",
				Message:  "document " + number + " has no creation event and no creation date",
			})
		}
	}

	b.logger.Info("flow edges inferred from activity log",
		zap.Int("edges", inferred),
		zap.Int("documents", len(byDocument)))
	return warnings
}

// eventBefore orders events by timestamp ascending with absent timestamps
// sorting first, the same policy the trace extractor documents.
func eventBefore(a, b domain.Event) bool {
	if a.Timestamp == nil {
		return b.Timestamp != nil
	}
	if b.Timestamp == nil {
		return false
	}
	return a.Timestamp.Before(*b.Timestamp)
}
