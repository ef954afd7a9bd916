// Package tableset loads the related-table source kind: a document table, an
// item table, and optional party and address tables extracted together from
// one system. Flow relations are not part of such extractions, so this
// adapter synthesizes the downstream lifecycle deterministically.
package tableset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/procmine/docflow/internal/adapter"
	"github.com/procmine/docflow/internal/annot"
	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/flow"
	"github.com/procmine/docflow/internal/tabular"
	"github.com/procmine/docflow/internal/timing"
)

// ErrValidation is returned when the document table fails structural
// validation.
var ErrValidation = errors.New("resource validation failed")

// Offsets of the synthesized lifecycle milestones from the order creation
// date. The goods-issue date is what the timing metrics treat as the actual
// delivery date.
const (
	deliveryOffsetDays   = 3
	goodsIssueOffsetDays = 4
	invoiceOffsetDays    = 5
)

// Request names the tables of one extraction. DocumentPath is mandatory.
type Request struct {
	DocumentPath string
	ItemPath     string
	PartyPath    string
	AddressPath  string
}

// Result is the outcome of a load.
type Result struct {
	Dataset    domain.Dataset
	Validation map[string]tabular.ValidationResult
}

// Loader ingests related table sets into the canonical document model.
type Loader struct {
	opts   tabular.Options
	seed   int64
	logger *zap.Logger
}

// NewLoader creates a Loader. The seed drives both the annotation texts and
// nothing else; the synthesized lifecycle dates are pure functions of the
// order dates.
func NewLoader(opts tabular.Options, seed int64, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{opts: opts, seed: seed, logger: logger}
}

// Load reads the tables, builds the order documents, synthesizes the
// delivery and invoice stages, and returns the dataset. Only a missing or
// invalid document table is an error.
func (l *Loader) Load(req Request) (*Result, error) {
	result := &Result{
		Dataset:    domain.NewDataset("tableset"),
		Validation: map[string]tabular.ValidationResult{},
	}
	ds := &result.Dataset

	documents, err := l.loadResource(req.DocumentPath, documentFields, documentStringFields, domain.FieldDocumentNumber, result)
	if err != nil {
		return result, err
	}
	items := l.loadOptional(req.ItemPath, "items", itemFields, itemStringFields, domain.FieldDocumentNumber, result)
	parties := l.loadOptional(req.PartyPath, "parties", partyFields, partyStringFields, domain.FieldPartyID, result)
	addresses := l.loadOptional(req.AddressPath, "addresses", addressFields, addressStringFields, domain.FieldPartyID, result)

	builder := flow.NewBuilder(l.logger)
	graph, warnings := builder.Build(documents, items, nil, domain.TypeOrder, domain.CategoryOrder)
	ds.Warnings = append(ds.Warnings, warnings...)

	l.synthesizeLifecycle(graph)
	ds.Warnings = append(ds.Warnings, flow.Check(graph)...)

	annotate(graph, l.seed)
	adapter.Assemble(ds, graph)
	ds.Parties = mergeParties(ds.Parties, parties, addresses)
	ds.Stats["parties"] = len(ds.Parties)

	l.logger.Info("table set loaded",
		zap.String("run_id", ds.RunID.String()),
		zap.Int("orders", len(ds.Orders)),
		zap.Int("synthesized", len(ds.Deliveries)+len(ds.Invoices)),
		zap.Int("warnings", len(ds.Warnings)))
	return result, nil
}

// Base-name candidates tried per table by LoadDirectory.
var (
	resourceExtensions = []string{".csv", ".csv.gz", ".xlsx"}

	documentNames = []string{"sales_documents", "SalesOrder", "A_SalesOrder", "orders"}
	itemNames     = []string{"sales_document_items", "SalesOrderItem", "A_SalesOrderItem", "order_items"}
	partyNames    = []string{"customers", "Customer", "A_Customer", "business_partners"}
	addressNames  = []string{"customer_addresses", "CustomerAddress", "A_CustomerAddress", "addresses"}
)

// LoadDirectory discovers the extraction's tables under dir by conventional
// base names and loads them.
func (l *Loader) LoadDirectory(dir string) (*Result, error) {
	req := Request{
		DocumentPath: discover(dir, documentNames),
		ItemPath:     discover(dir, itemNames),
		PartyPath:    discover(dir, partyNames),
		AddressPath:  discover(dir, addressNames),
	}
	if req.DocumentPath == "" {
		return nil, fmt.Errorf("no document table found in %s (tried %v)", dir, documentNames)
	}
	return l.Load(req)
}

func discover(dir string, names []string) string {
	for _, name := range names {
		for _, ext := range resourceExtensions {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func (l *Loader) loadResource(path string, fields tabular.FieldMap, stringFields map[string]bool, requiredKey string, result *Result) ([]domain.Record, error) {
	table, err := tabular.Open(path, l.opts)
	if err != nil {
		return nil, err
	}
	report := tabular.Validate(table, fields, requiredKey)
	result.Validation[table.Name] = report
	if !report.Valid {
		return nil, fmt.Errorf("%s: %w: %s", table.Name, ErrValidation, strings.Join(report.Errors, "; "))
	}
	for _, msg := range report.Warnings {
		result.Dataset.Warnings = append(result.Dataset.Warnings, domain.Warning{Resource: table.Name, Message: msg})
	}
	return tabular.Normalize(table, fields, stringFields), nil
}

func (l *Loader) loadOptional(path, role string, fields tabular.FieldMap, stringFields map[string]bool, requiredKey string, result *Result) []domain.Record {
	if path == "" {
		result.Dataset.Warnings = append(result.Dataset.Warnings,
			domain.Warning{Resource: role, Message: "resource not provided"})
		return nil
	}
	records, err := l.loadResource(path, fields, stringFields, requiredKey, result)
	if err != nil {
		result.Dataset.Warnings = append(result.Dataset.Warnings,
			domain.Warning{Resource: role, Message: fmt.Sprintf("resource unusable, continuing without it: %v", err)})
		return nil
	}
	return records
}

// synthesizeLifecycle adds one delivery and one invoice per order, dated at
// fixed offsets from the order creation date, with the connecting edges.
// Orders without a creation date get undated stages; the wiring is still
// emitted so the graph stays complete.
func (l *Loader) synthesizeLifecycle(graph *flow.Graph) {
	for _, number := range append([]string(nil), graph.Order...) {
		order := graph.Documents[number]
		if order.Category != domain.CategoryOrder {
			continue
		}

		deliveryNumber := domain.SyntheticDeliveryNumber(number)
		invoiceNumber := domain.SyntheticInvoiceNumber(number)

		delivery := &domain.Document{
			Number:    deliveryNumber,
			Type:      domain.TypeDelivery,
			Category:  domain.CategoryDelivery,
			PartyID:   order.PartyID,
			OrgUnit:   order.OrgUnit,
			Synthetic: true,
		}
		invoice := &domain.Document{
			Number:    invoiceNumber,
			Type:      domain.TypeInvoice,
			Category:  domain.CategoryInvoice,
			PartyID:   order.PartyID,
			OrgUnit:   order.OrgUnit,
			Currency:  order.Currency,
			NetValue:  order.NetValue,
			Synthetic: true,
		}

		var goodsIssueDate *time.Time
		if order.CreatedAt != nil {
			delivery.CreatedAt = offsetDate(*order.CreatedAt, deliveryOffsetDays)
			goodsIssueDate = offsetDate(*order.CreatedAt, goodsIssueOffsetDays)
			invoice.CreatedAt = offsetDate(*order.CreatedAt, invoiceOffsetDays)
		}

		graph.Add(delivery)
		graph.Add(invoice)
		graph.AddEdge(domain.FlowEdge{
			PrecedingDoc:  number,
			PrecedingCat:  domain.CategoryOrder,
			SubsequentDoc: deliveryNumber,
			SubsequentCat: domain.CategoryDelivery,
			OccurredAt:    delivery.CreatedAt,
		})
		graph.AddEdge(domain.FlowEdge{
			PrecedingDoc:  deliveryNumber,
			PrecedingCat:  domain.CategoryDelivery,
			SubsequentDoc: invoiceNumber,
			SubsequentCat: domain.CategoryInvoice,
			OccurredAt:    invoice.CreatedAt,
		})

		order.Timing = timing.Compute(order.CreatedAt, order.RequestedAt, goodsIssueDate, invoice.CreatedAt)
	}
}

func offsetDate(base time.Time, days int) *time.Time {
	d := base.AddDate(0, 0, days)
	return &d
}

func annotate(graph *flow.Graph, seed int64) {
	gen := annot.NewGenerator(seed)
	for _, number := range graph.Order {
		doc := graph.Documents[number]
		if doc.Category != domain.CategoryOrder {
			continue
		}
		var value float64
		if doc.NetValue != nil {
			value = *doc.NetValue
		}
		doc.Texts = gen.Annotate(annot.Profile{
			DocumentNumber: doc.Number,
			TypeCode:       doc.TypeCode,
			OrgUnit:        doc.OrgUnit,
			NetValue:       value,
			ItemCount:      len(doc.Items),
		})
	}
}

// mergeParties replaces the id-only party list derived from the documents
// with full records joined from the party and address tables. Parties named
// by documents but absent from the tables keep their id-only entry.
func mergeParties(derived []domain.Party, parties, addresses []domain.Record) []domain.Party {
	byID := map[string]*domain.Party{}
	order := make([]string, 0, len(derived))
	for _, p := range derived {
		cp := p
		byID[p.ID] = &cp
		order = append(order, p.ID)
	}

	for _, rec := range parties {
		id, ok := rec.String(domain.FieldPartyID)
		if !ok {
			continue
		}
		p := byID[id]
		if p == nil {
			p = &domain.Party{ID: id}
			byID[id] = p
			order = append(order, id)
		}
		p.Name, _ = rec.String(domain.FieldPartyName)
		p.AccountGroup, _ = rec.String(domain.FieldAccountGroup)
	}
	for _, rec := range addresses {
		id, ok := rec.String(domain.FieldPartyID)
		if !ok {
			continue
		}
		p := byID[id]
		if p == nil {
			p = &domain.Party{ID: id}
			byID[id] = p
			order = append(order, id)
		}
		p.Country, _ = rec.String(domain.FieldCountry)
		p.Region, _ = rec.String(domain.FieldRegion)
		p.City, _ = rec.String(domain.FieldCity)
		p.PostalCode, _ = rec.String(domain.FieldPostalCode)
	}

	sort.Strings(order)
	merged := make([]domain.Party, 0, len(order))
	for _, id := range order {
		merged = append(merged, *byID[id])
	}
	return merged
}
