// Package delimited loads the flat-export source kind: one delimited (or
// xlsx) file per resource, with document headers mandatory and items, texts
// and flow relations optional.
package delimited

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
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

// ErrValidation is returned when a mandatory resource fails structural
// validation. The Result still carries the per-resource reports so the
// caller can show what exactly was wrong.
var ErrValidation = errors.New("resource validation failed")

// textKeyLength is how many leading characters of a text object key identify
// the owning document. Text objects append item or sequence suffixes beyond
// that.
const textKeyLength = 10

// Request names the resources of one delimited-export batch. HeaderPath is
// mandatory; the rest are optional and degrade to warnings when absent.
type Request struct {
	HeaderPath string
	ItemPath   string
	TextPath   string
	FlowPath   string
}

// Result is the outcome of a load: the assembled dataset plus the structural
// validation report of every resource that was opened.
type Result struct {
	Dataset    domain.Dataset
	Validation map[string]tabular.ValidationResult
}

// Loader ingests delimited exports into the canonical document model.
type Loader struct {
	opts   tabular.Options
	seed   int64
	logger *zap.Logger
}

// NewLoader creates a Loader. The seed drives text synthesis when the batch
// carries no text resource; equal seeds give byte-identical output.
func NewLoader(opts tabular.Options, seed int64, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{opts: opts, seed: seed, logger: logger}
}

// Load reads the batch, normalizes every resource, builds the document flow
// graph and returns the dataset. A missing or invalid header resource is an
// error; every other defect is recorded as a warning and skipped.
func (l *Loader) Load(req Request) (*Result, error) {
	result := &Result{
		Dataset:    domain.NewDataset("delimited"),
		Validation: map[string]tabular.ValidationResult{},
	}
	ds := &result.Dataset

	headers, err := l.loadResource(req.HeaderPath, headerFields, headerStringFields, domain.FieldDocumentNumber, result)
	if err != nil {
		return result, err
	}

	items := l.loadOptional(req.ItemPath, "items", itemFields, itemStringFields, domain.FieldDocumentNumber, result)
	texts := l.loadOptional(req.TextPath, "texts", textFields, textStringFields, domain.FieldTextObject, result)
	flows := l.loadOptional(req.FlowPath, "flows", flowFields, flowStringFields, domain.FieldPrecedingDoc, result)

	builder := flow.NewBuilder(l.logger)
	graph, warnings := builder.Build(headers, items, flows, domain.TypeOrder, domain.CategoryOrder)
	ds.Warnings = append(ds.Warnings, warnings...)
	ds.Warnings = append(ds.Warnings, flow.Check(graph)...)

	if texts != nil {
		ds.Warnings = append(ds.Warnings, attachTexts(graph, texts)...)
	} else {
		synthesizeTexts(graph, l.seed)
	}

	computeTiming(graph)
	adapter.Assemble(ds, graph)

	l.logger.Info("delimited batch loaded",
		zap.String("run_id", ds.RunID.String()),
		zap.Int("orders", len(ds.Orders)),
		zap.Int("deliveries", len(ds.Deliveries)),
		zap.Int("invoices", len(ds.Invoices)),
		zap.Int("warnings", len(ds.Warnings)))
	return result, nil
}

// Base-name candidates tried per resource by LoadDirectory, in priority
// order. Each candidate is tried with every supported extension before the
// next candidate is considered.
var (
	resourceExtensions = []string{".csv", ".csv.gz", ".xlsx"}

	headerNames = []string{"documents", "orders", "sales_orders", "VBAK", "vbak"}
	itemNames   = []string{"document_items", "order_items", "sales_order_items", "VBAP", "vbap"}
	textNames   = []string{"texts", "annotations", "STXH", "STXL", "stxh", "stxl"}
	flowNames   = []string{"doc_flow", "flows", "VBFA", "vbfa"}
)

// LoadDirectory discovers the batch's resources under dir by conventional
// base names and loads them.
func (l *Loader) LoadDirectory(dir string) (*Result, error) {
	req := Request{
		HeaderPath: discover(dir, headerNames),
		ItemPath:   discover(dir, itemNames),
		TextPath:   discover(dir, textNames),
		FlowPath:   discover(dir, flowNames),
	}
	if req.HeaderPath == "" {
		return nil, fmt.Errorf("no document header resource found in %s (tried %v)", dir, headerNames)
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

// loadOptional returns nil when the resource is absent or unusable; the
// reason lands in the warning list and the pipeline continues without it.
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

// attachTexts groups text lines by the document part of their object key and
// appends each document's lines in source order.
func attachTexts(graph *flow.Graph, texts []domain.Record) []domain.Warning {
	var warnings []domain.Warning
	for i, rec := range texts {
		object, ok := rec.String(domain.FieldTextObject)
		if !ok {
			warnings = append(warnings, domain.RowWarning("texts", i+1, "missing text object key, row skipped"))
			continue
		}
		content, ok := rec.String(domain.FieldTextContent)
		if !ok {
			continue
		}
		number := object
		if len(number) > textKeyLength {
			number = number[:textKeyLength]
		}
		doc := graph.Document(number)
		if doc == nil {
			warnings = append(warnings, domain.RowWarning("texts", i+1, "no document %s for text object %s, row skipped", number, object))
			continue
		}
		doc.Texts = append(doc.Texts, content)
	}
	return warnings
}

// synthesizeTexts gives every non-synthetic document a deterministic
// annotation derived from its own attributes. Only used when the batch
// carries no text resource.
func synthesizeTexts(graph *flow.Graph, seed int64) {
	gen := annot.NewGenerator(seed)
	for _, number := range graph.Order {
		doc := graph.Documents[number]
		if doc.Synthetic {
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

// computeTiming derives per-order milestone deltas from the flow graph: the
// delivery date is the earliest creation date among the order's delivery
// successors, the invoice date the earliest among those deliveries' invoice
// successors.
func computeTiming(graph *flow.Graph) {
	successors := adapter.Successors(graph)
	for _, number := range graph.Order {
		doc := graph.Documents[number]
		if doc.Category != domain.CategoryOrder {
			continue
		}
		deliveryDate := adapter.EarliestCreated(graph, successors[number], domain.CategoryDelivery)
		var invoiceDate *time.Time
		for _, succ := range successors[number] {
			if graph.Documents[succ].Category != domain.CategoryDelivery {
				continue
			}
			if d := adapter.EarliestCreated(graph, successors[succ], domain.CategoryInvoice); d != nil {
				if invoiceDate == nil || d.Before(*invoiceDate) {
					invoiceDate = d
				}
			}
		}
		doc.Timing = timing.Compute(doc.CreatedAt, doc.RequestedAt, deliveryDate, invoiceDate)
	}
}
