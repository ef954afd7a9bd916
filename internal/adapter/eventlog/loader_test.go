package eventlog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/tabular"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}
	return path
}

const sampleLog = "case concept:name,event concept:name,event time:timestamp,case Purchasing Document,case Vendor,case Name,case Company,case Document Type,case Spend area text\n" +
	"c1,Create Purchase Order Item,2018-01-02 09:00:00,4500000001,V100,Steelworks AG,companyA,NB,Raw Materials\n" +
	"c1,Record Goods Receipt,2018-01-08 10:00:00,4500000001,V100,Steelworks AG,companyA,NB,Raw Materials\n" +
	"c1,Record Invoice Receipt,2018-01-12 11:00:00,4500000001,V100,Steelworks AG,companyA,NB,Raw Materials\n" +
	"c2,Create Purchase Order Item,2018-01-03 09:00:00,4500000002,V200,Parts Ltd,companyB,NB,Components\n" +
	"c2,Record Invoice Receipt,2018-01-15 09:00:00,4500000002,V200,Parts Ltd,companyB,NB,Components\n"

func TestLoadBuildsDocumentsAndTraces(t *testing.T) {
	path := writeLog(t, sampleLog)

	result, err := NewLoader(tabular.Options{}, nil).Load(path)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	ds := result.Dataset

	if len(ds.Orders) != 2 {
		t.Fatalf("expected 2 purchase documents, got %d", len(ds.Orders))
	}
	po := ds.Orders[0]
	if po.Number != "4500000001" || po.Type != domain.TypePurchaseDocument {
		t.Fatalf("unexpected document: %+v", po)
	}
	if po.PartyID != "V100" || po.OrgUnit != "companyA" || po.TypeCode != "NB" {
		t.Fatalf("case attributes not carried: %+v", po)
	}
	if len(po.Texts) != 1 || po.Texts[0] != "Raw Materials" {
		t.Fatalf("expected spend area as text, got %v", po.Texts)
	}
	if po.CreatedAt == nil || po.CreatedAt.Day() != 2 {
		t.Fatalf("expected creation date inferred, got %v", po.CreatedAt)
	}

	// First document: GR at day 8, IR at day 12.
	if len(ds.Deliveries) != 1 || ds.Deliveries[0].Number != "GR4500000001" {
		t.Fatalf("unexpected goods receipts: %+v", ds.Deliveries)
	}
	if len(ds.Invoices) != 2 {
		t.Fatalf("expected 2 invoice receipts, got %d", len(ds.Invoices))
	}

	if po.Timing.OrderToDeliveryDays == nil || *po.Timing.OrderToDeliveryDays != 6 {
		t.Fatalf("unexpected order_to_delivery: %v", po.Timing.OrderToDeliveryDays)
	}
	if po.Timing.OrderToInvoiceDays == nil || *po.Timing.OrderToInvoiceDays != 10 {
		t.Fatalf("unexpected order_to_invoice: %v", po.Timing.OrderToInvoiceDays)
	}

	if len(ds.Traces) != 2 || len(ds.Traces[0].Events) != 3 {
		t.Fatalf("unexpected traces: %d", len(ds.Traces))
	}
	if len(ds.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(ds.Variants))
	}
	if !strings.Contains(ds.Variants[0].Sequence, "OrderCreated") {
		t.Fatalf("expected translated variant, got %q", ds.Variants[0].Sequence)
	}

	if len(ds.Parties) != 2 || ds.Parties[0].Name != "Steelworks AG" {
		t.Fatalf("unexpected parties: %+v", ds.Parties)
	}
	if ds.Stats["events"] != 5 || ds.Stats["traces"] != 2 {
		t.Fatalf("unexpected stats: %v", ds.Stats)
	}
}

func TestLoadKeepsEventWithBadTimestamp(t *testing.T) {
	path := writeLog(t,
		"Case ID,Activity,Timestamp,Purchasing Document\n"+
			"c1,Create Purchase Order Item,not-a-time,P1\n"+
			"c1,Record Goods Receipt,2018-01-08 10:00:00,P1\n")

	result, err := NewLoader(tabular.Options{}, nil).Load(path)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	ds := result.Dataset

	if ds.Stats["events"] != 2 {
		t.Fatalf("expected both events kept, got %d", ds.Stats["events"])
	}
	found := false
	for _, w := range ds.Warnings {
		if strings.Contains(w.Message, "unparseable timestamp") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected timestamp warning, got %v", ds.Warnings)
	}
	// The undated creation event cannot set a creation date.
	if ds.Orders[0].CreatedAt != nil {
		t.Fatalf("expected no creation date from undated event")
	}
}

func TestLoadCollectsItemsAcrossCases(t *testing.T) {
	path := writeLog(t,
		"Case ID,Activity,Timestamp,Purchasing Document,case Item\n"+
			"c1,Create Purchase Order Item,2018-01-02 09:00:00,4500000001,00010\n"+
			"c2,Create Purchase Order Item,2018-01-02 10:00:00,4500000001,00020\n"+
			"c3,Record Goods Receipt,2018-01-05 10:00:00,4500000001,00010\n")

	result, err := NewLoader(tabular.Options{}, nil).Load(path)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	po := result.Dataset.Orders[0]
	if len(po.Items) != 2 {
		t.Fatalf("expected 2 distinct items, got %d: %+v", len(po.Items), po.Items)
	}
	if po.Items[0].ItemNumber != "00010" || po.Items[1].ItemNumber != "00020" {
		t.Fatalf("expected first-encounter item order, got %+v", po.Items)
	}
}

func TestLoadFallsBackToCaseID(t *testing.T) {
	path := writeLog(t,
		"Case ID,Activity,Timestamp\n"+
			"caseX,Create Purchase Order Item,2018-01-02 09:00:00\n")

	result, err := NewLoader(tabular.Options{}, nil).Load(path)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if len(result.Dataset.Orders) != 1 || result.Dataset.Orders[0].Number != "caseX" {
		t.Fatalf("expected case id as document number, got %+v", result.Dataset.Orders)
	}
}

func TestLoadMaxRowsCap(t *testing.T) {
	path := writeLog(t, sampleLog)

	result, err := NewLoader(tabular.Options{}, nil, WithMaxRows(2)).Load(path)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	ds := result.Dataset
	if ds.Stats["events"] != 2 {
		t.Fatalf("expected 2 events after cap, got %d", ds.Stats["events"])
	}
	found := false
	for _, w := range ds.Warnings {
		if strings.Contains(w.Message, "truncated") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected truncation warning, got %v", ds.Warnings)
	}
}

func TestLoadLatinOneDefault(t *testing.T) {
	// 0xFC is ü in latin-1 and invalid alone in utf-8.
	content := append([]byte("Case ID,Activity,Timestamp,case Vendor,case Name\n"),
		[]byte("c1,Create Purchase Order Item,2018-01-02 09:00:00,V1,M")...)
	content = append(content, 0xFC)
	content = append(content, []byte("ller GmbH\n")...)

	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}

	result, err := NewLoader(tabular.Options{}, nil).Load(path)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if result.Dataset.Parties[0].Name != "Müller GmbH" {
		t.Fatalf("expected latin-1 decode, got %q", result.Dataset.Parties[0].Name)
	}
}

func TestLoadMissingCaseColumn(t *testing.T) {
	path := writeLog(t, "Activity,Timestamp\nCreate,2018-01-02 09:00:00\n")

	if _, err := NewLoader(tabular.Options{}, nil).Load(path); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
