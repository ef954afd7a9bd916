package flow

import (
	"strings"
	"testing"

	"github.com/procmine/docflow/internal/domain"
)

func headerRecord(number, party string, netValue float64, created string) domain.Record {
	return domain.Record{
		domain.FieldDocumentNumber: number,
		domain.FieldPartyID:        party,
		domain.FieldNetValue:       netValue,
		domain.FieldCreatedDate:    created,
	}
}

func TestBuildAttachesItems(t *testing.T) {
	headers := []domain.Record{
		headerRecord("0000000001", "C001", 1500.50, "2024-01-15"),
		headerRecord("0000000002", "C002", 200, "2024-01-16"),
	}
	items := []domain.Record{
		{domain.FieldDocumentNumber: "0000000001", domain.FieldItemNumber: "000010", domain.FieldQuantity: 5.0},
		{domain.FieldDocumentNumber: "0000000001", domain.FieldItemNumber: "000020", domain.FieldQuantity: 2.0},
		{domain.FieldDocumentNumber: "0000000009", domain.FieldItemNumber: "000010"},
	}

	builder := NewBuilder(nil)
	graph, warnings := builder.Build(headers, items, nil, domain.TypeOrder, domain.CategoryOrder)

	if len(graph.Order) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(graph.Order))
	}
	doc := graph.Document("0000000001")
	if doc == nil || len(doc.Items) != 2 {
		t.Fatalf("expected 2 items on first document, got %+v", doc)
	}
	if doc.Items[0].ItemNumber != "000010" {
		t.Fatalf("unexpected first item: %+v", doc.Items[0])
	}
	if doc.CreatedAt == nil || doc.CreatedAt.Day() != 15 {
		t.Fatalf("expected created date parsed, got %v", doc.CreatedAt)
	}

	// The orphan item must produce a warning, not an error.
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "0000000009") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected orphan item warning, got %v", warnings)
	}
}

func TestBuildKeepsFirstDuplicateHeader(t *testing.T) {
	headers := []domain.Record{
		headerRecord("1", "C001", 100, "2024-01-15"),
		headerRecord("1", "C002", 999, "2024-02-20"),
	}

	builder := NewBuilder(nil)
	graph, warnings := builder.Build(headers, nil, nil, domain.TypeOrder, domain.CategoryOrder)

	if len(graph.Order) != 1 {
		t.Fatalf("expected 1 document, got %d", len(graph.Order))
	}
	if graph.Document("1").PartyID != "C001" {
		t.Fatalf("expected first occurrence kept, got %q", graph.Document("1").PartyID)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected duplicate warning, got %v", warnings)
	}
}

func TestBuildDeduplicatesEdges(t *testing.T) {
	headers := []domain.Record{headerRecord("1", "C001", 100, "2024-01-15")}
	flows := []domain.Record{
		{domain.FieldPrecedingDoc: "1", domain.FieldPrecedingCat: "C", domain.FieldSubsequentDoc: "81", domain.FieldSubsequentCat: "J"},
		{domain.FieldPrecedingDoc: "1", domain.FieldPrecedingCat: "C", domain.FieldSubsequentDoc: "81", domain.FieldSubsequentCat: "J"},
	}

	builder := NewBuilder(nil)
	graph, _ := builder.Build(headers, nil, flows, domain.TypeOrder, domain.CategoryOrder)

	if len(graph.Edges) != 1 {
		t.Fatalf("expected duplicate edge suppressed, got %d edges", len(graph.Edges))
	}
}

func TestBuildSynthesizesStubEndpoints(t *testing.T) {
	headers := []domain.Record{headerRecord("1", "C001", 100, "2024-01-15")}
	flows := []domain.Record{
		{domain.FieldPrecedingDoc: "1", domain.FieldPrecedingCat: "C", domain.FieldSubsequentDoc: "81", domain.FieldSubsequentCat: "J"},
	}

	builder := NewBuilder(nil)
	graph, _ := builder.Build(headers, nil, flows, domain.TypeOrder, domain.CategoryOrder)

	stub := graph.Document("81")
	if stub == nil {
		t.Fatalf("expected stub node for edge target")
	}
	if !stub.Synthetic || stub.Type != domain.TypeDelivery {
		t.Fatalf("unexpected stub: %+v", stub)
	}
}

func TestBuildUppercasesEdgeCategories(t *testing.T) {
	headers := []domain.Record{headerRecord("1", "C001", 100, "2024-01-15")}
	flows := []domain.Record{
		{domain.FieldPrecedingDoc: "1", domain.FieldPrecedingCat: "c", domain.FieldSubsequentDoc: "81", domain.FieldSubsequentCat: "j"},
	}

	builder := NewBuilder(nil)
	graph, _ := builder.Build(headers, nil, flows, domain.TypeOrder, domain.CategoryOrder)

	edge := graph.Edges[0]
	if edge.PrecedingCat != domain.CategoryOrder || edge.SubsequentCat != domain.CategoryDelivery {
		t.Fatalf("expected normalized categories, got %+v", edge)
	}
	// The stub node is classified off the normalized code.
	if stub := graph.Document("81"); stub == nil || stub.Type != domain.TypeDelivery {
		t.Fatalf("unexpected stub for lowercase category: %+v", graph.Document("81"))
	}
}

func TestBuildSkipsIncompleteEdges(t *testing.T) {
	headers := []domain.Record{headerRecord("1", "C001", 100, "2024-01-15")}
	flows := []domain.Record{
		{domain.FieldPrecedingDoc: "1"},
		{domain.FieldSubsequentDoc: "81"},
	}

	builder := NewBuilder(nil)
	graph, warnings := builder.Build(headers, nil, flows, domain.TypeOrder, domain.CategoryOrder)

	if len(graph.Edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(graph.Edges))
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
}
