// Package adapter holds the plumbing shared by the source-kind loaders:
// turning a finished flow graph into the dataset's per-category collections.
package adapter

import (
	"sort"
	"time"

	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/flow"
)

// Assemble splits the graph into the dataset's per-category collections,
// derives the party list from the distinct party ids, and fills the run
// statistics. Documents keep graph insertion order; parties are sorted by id.
func Assemble(ds *domain.Dataset, graph *flow.Graph) {
	partySeen := map[string]bool{}
	for _, number := range graph.Order {
		doc := graph.Documents[number]
		switch doc.Category {
		case domain.CategoryDelivery, domain.CategoryGoodsReceipt:
			ds.Deliveries = append(ds.Deliveries, *doc)
		case domain.CategoryInvoice, domain.CategoryInvoiceReceipt:
			ds.Invoices = append(ds.Invoices, *doc)
		default:
			ds.Orders = append(ds.Orders, *doc)
		}
		if doc.PartyID != "" && !partySeen[doc.PartyID] {
			partySeen[doc.PartyID] = true
			ds.Parties = append(ds.Parties, domain.Party{ID: doc.PartyID})
		}
	}
	sort.Slice(ds.Parties, func(i, j int) bool { return ds.Parties[i].ID < ds.Parties[j].ID })
	ds.FlowEdges = graph.Edges

	ds.Stats["orders"] = len(ds.Orders)
	ds.Stats["deliveries"] = len(ds.Deliveries)
	ds.Stats["invoices"] = len(ds.Invoices)
	ds.Stats["parties"] = len(ds.Parties)
	ds.Stats["flow_edges"] = len(ds.FlowEdges)
	ds.Stats["warnings"] = len(ds.Warnings)
}

// EarliestCreated returns the earliest creation date among the named
// documents of one category, or nil when none has a date.
func EarliestCreated(graph *flow.Graph, numbers []string, cat domain.CategoryCode) *time.Time {
	var earliest *time.Time
	for _, number := range numbers {
		doc := graph.Documents[number]
		if doc == nil || doc.Category != cat || doc.CreatedAt == nil {
			continue
		}
		if earliest == nil || doc.CreatedAt.Before(*earliest) {
			earliest = doc.CreatedAt
		}
	}
	return earliest
}

// Successors indexes the graph's edges into an adjacency list keyed by
// preceding document number.
func Successors(graph *flow.Graph) map[string][]string {
	successors := map[string][]string{}
	for _, edge := range graph.Edges {
		successors[edge.PrecedingDoc] = append(successors[edge.PrecedingDoc], edge.SubsequentDoc)
	}
	return successors
}
