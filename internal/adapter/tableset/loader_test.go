package tableset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/tabular"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadSynthesizesLifecycle(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		DocumentPath: writeFile(t, dir, "sales_documents.csv",
			"SalesDocument,SalesDocumentType,SalesOrganization,CreationDate,TotalNetAmount,TransactionCurrency,SoldToParty\n"+
				"0000000001,OR,1000,2024-01-15,1500.50,EUR,C001\n"),
		ItemPath: writeFile(t, dir, "sales_document_items.csv",
			"SalesDocument,SalesDocumentItem,Material,RequestedQuantity,NetAmount\n"+
				"0000000001,000010,M-100,5,1500.50\n"),
	}

	result, err := NewLoader(tabular.Options{}, 42, nil).Load(req)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	ds := result.Dataset

	if len(ds.Orders) != 1 || len(ds.Deliveries) != 1 || len(ds.Invoices) != 1 {
		t.Fatalf("expected full synthesized lifecycle, got %d/%d/%d",
			len(ds.Orders), len(ds.Deliveries), len(ds.Invoices))
	}

	delivery := ds.Deliveries[0]
	if delivery.Number != "80000000001" || !delivery.Synthetic {
		t.Fatalf("unexpected delivery: %+v", delivery)
	}
	if delivery.CreatedAt == nil || delivery.CreatedAt.Day() != 18 {
		t.Fatalf("expected delivery dated +3 days, got %v", delivery.CreatedAt)
	}

	invoice := ds.Invoices[0]
	if invoice.Number != "90000000001" {
		t.Fatalf("unexpected invoice number: %q", invoice.Number)
	}
	if invoice.CreatedAt == nil || invoice.CreatedAt.Day() != 20 {
		t.Fatalf("expected invoice dated +5 days, got %v", invoice.CreatedAt)
	}
	if invoice.NetValue == nil || *invoice.NetValue != 1500.50 {
		t.Fatalf("expected invoice to carry order value, got %v", invoice.NetValue)
	}

	if len(ds.FlowEdges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(ds.FlowEdges))
	}
	if ds.FlowEdges[0].PrecedingCat != domain.CategoryOrder || ds.FlowEdges[0].SubsequentCat != domain.CategoryDelivery {
		t.Fatalf("unexpected first edge: %+v", ds.FlowEdges[0])
	}

	// Goods issue at +4 days is the actual fulfilment date.
	order := ds.Orders[0]
	if order.Timing.OrderToDeliveryDays == nil || *order.Timing.OrderToDeliveryDays != 4 {
		t.Fatalf("unexpected order_to_delivery: %v", order.Timing.OrderToDeliveryDays)
	}
	if order.Timing.OrderToInvoiceDays == nil || *order.Timing.OrderToInvoiceDays != 5 {
		t.Fatalf("unexpected order_to_invoice: %v", order.Timing.OrderToInvoiceDays)
	}
	if len(order.Texts) == 0 {
		t.Fatalf("expected synthesized annotation texts")
	}
}

func TestLoadJoinsPartiesAndAddresses(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		DocumentPath: writeFile(t, dir, "sales_documents.csv",
			"SalesDocument,SoldToParty,CreationDate\n1,C001,2024-01-15\n2,C003,2024-01-16\n"),
		PartyPath: writeFile(t, dir, "customers.csv",
			"Customer,CustomerName,CustomerAccountGroup\nC001,Acme GmbH,Z001\nC002,Globex,Z001\n"),
		AddressPath: writeFile(t, dir, "customer_addresses.csv",
			"Customer,Country,Region,CityName,PostalCode\nC001,DE,BW,Stuttgart,70173\n"),
	}

	result, err := NewLoader(tabular.Options{}, 42, nil).Load(req)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	parties := result.Dataset.Parties

	if len(parties) != 3 {
		t.Fatalf("expected 3 parties, got %v", parties)
	}
	// Sorted by id: C001 joined from both tables.
	if parties[0].ID != "C001" || parties[0].Name != "Acme GmbH" || parties[0].City != "Stuttgart" {
		t.Fatalf("unexpected joined party: %+v", parties[0])
	}
	// C002 appears only in the party table.
	if parties[1].ID != "C002" || parties[1].Name != "Globex" {
		t.Fatalf("unexpected party: %+v", parties[1])
	}
	// C003 is referenced by a document but missing from the tables.
	if parties[2].ID != "C003" || parties[2].Name != "" {
		t.Fatalf("unexpected fallback party: %+v", parties[2])
	}
}

func TestLoadUndatedOrderKeepsWiring(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		DocumentPath: writeFile(t, dir, "sales_documents.csv",
			"SalesDocument,SoldToParty\n1,C001\n"),
	}

	result, err := NewLoader(tabular.Options{}, 42, nil).Load(req)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	ds := result.Dataset

	if len(ds.FlowEdges) != 2 {
		t.Fatalf("expected lifecycle edges even without dates, got %d", len(ds.FlowEdges))
	}
	if ds.Deliveries[0].CreatedAt != nil {
		t.Fatalf("expected undated synthetic delivery")
	}
	if ds.Orders[0].Timing.OrderToDeliveryDays != nil {
		t.Fatalf("expected nil timing without dates")
	}
}

func TestLoadMissingDocumentTable(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		DocumentPath: writeFile(t, dir, "sales_documents.csv", "TotalNetAmount\n100\n"),
	}

	if _, err := NewLoader(tabular.Options{}, 42, nil).Load(req); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLoadDirectoryDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A_SalesOrder.csv", "SALESDOCUMENT,CREATIONDATE\n1,2024-01-15\n")

	result, err := NewLoader(tabular.Options{}, 42, nil).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if len(result.Dataset.Orders) != 1 {
		t.Fatalf("discovery failed: %+v", result.Dataset.Orders)
	}
}
