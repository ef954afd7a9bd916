// Package eventlog loads the raw activity-log source kind: one flat file of
// timestamped events, from which documents, flow edges and traces are all
// derived. There are no header or flow resources here; structure comes from
// the case attributes and from milestone inference over the activities.
package eventlog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/procmine/docflow/internal/adapter"
	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/flow"
	"github.com/procmine/docflow/internal/tabular"
	"github.com/procmine/docflow/internal/timing"
	"github.com/procmine/docflow/internal/trace"
)

// ErrValidation is returned when the log fails structural validation.
var ErrValidation = errors.New("resource validation failed")

// defaultTopVariants bounds the variant summary when no override is given.
const defaultTopVariants = 20

// Result is the outcome of a load.
type Result struct {
	Dataset    domain.Dataset
	Validation map[string]tabular.ValidationResult
}

// Loader ingests activity logs into the canonical document model.
type Loader struct {
	opts        tabular.Options
	maxRows     int
	topVariants int
	patterns    flow.InferencePatterns
	logger      *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxRows caps how many event rows are read. Zero means unbounded.
func WithMaxRows(n int) Option {
	return func(l *Loader) { l.maxRows = n }
}

// WithTopVariants sets how many variants the summary keeps.
func WithTopVariants(n int) Option {
	return func(l *Loader) { l.topVariants = n }
}

// WithPatterns overrides the milestone-inference patterns.
func WithPatterns(p flow.InferencePatterns) Option {
	return func(l *Loader) { l.patterns = p }
}

// NewLoader creates a Loader. Activity logs default to latin-1 decoding,
// matching the encoding the common public logs ship in; an explicit Encoding
// in opts wins.
func NewLoader(opts tabular.Options, logger *zap.Logger, options ...Option) *Loader {
	if opts.Encoding == "" {
		opts.Encoding = "latin-1"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{
		opts:        opts,
		topVariants: defaultTopVariants,
		patterns:    flow.DefaultInferencePatterns(),
		logger:      logger,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Load reads the activity log at path and returns the dataset: one
// purchase document per distinct document attribute, inferred goods-receipt
// and invoice-receipt stages, per-case traces and the variant summary.
func (l *Loader) Load(path string) (*Result, error) {
	result := &Result{
		Dataset:    domain.NewDataset("eventlog"),
		Validation: map[string]tabular.ValidationResult{},
	}
	ds := &result.Dataset

	table, err := tabular.Open(path, l.opts)
	if err != nil {
		return result, err
	}
	report := tabular.Validate(table, eventFields, domain.FieldCaseID)
	result.Validation[table.Name] = report
	if !report.Valid {
		return result, fmt.Errorf("%s: %w: %s", table.Name, ErrValidation, strings.Join(report.Errors, "; "))
	}
	for _, msg := range report.Warnings {
		ds.Warnings = append(ds.Warnings, domain.Warning{Resource: table.Name, Message: msg})
	}

	if l.maxRows > 0 && len(table.Rows) > l.maxRows {
		ds.Warnings = append(ds.Warnings, domain.Warning{
			Resource: table.Name,
			Message:  fmt.Sprintf("log truncated to first %d of %d rows", l.maxRows, len(table.Rows)),
		})
		table.Rows = table.Rows[:l.maxRows]
	}

	records := tabular.Normalize(table, eventFields, eventStringFields)
	events, graph, vendorNames, warnings := l.eventsAndDocuments(records)
	ds.Warnings = append(ds.Warnings, warnings...)

	builder := flow.NewBuilder(l.logger)
	ds.Warnings = append(ds.Warnings, builder.Infer(graph, events, l.patterns)...)
	ds.Warnings = append(ds.Warnings, flow.Check(graph)...)
	computeTiming(graph)

	extractor := trace.NewExtractor(trace.WithTranslation(trace.DefaultActivityTranslation()))
	ds.Traces = extractor.Traces(events)
	ds.Variants = extractor.TopVariants(ds.Traces, l.topVariants)

	adapter.Assemble(ds, graph)
	for i := range ds.Parties {
		ds.Parties[i].Name = vendorNames[ds.Parties[i].ID]
	}
	ds.Stats["events"] = len(events)
	ds.Stats["traces"] = len(ds.Traces)
	ds.Stats["variants"] = len(ds.Variants)

	l.logger.Info("activity log loaded",
		zap.String("run_id", ds.RunID.String()),
		zap.Int("events", len(events)),
		zap.Int("documents", len(graph.Order)),
		zap.Int("traces", len(ds.Traces)),
		zap.Int("warnings", len(ds.Warnings)))
	return result, nil
}

// eventsAndDocuments converts normalized rows into events and registers one
// purchase document per distinct document attribute. Cases without a
// document attribute use the case id as document number so every event stays
// attached to a node. Unparseable timestamps become nil with a warning; the
// event itself is kept.
func (l *Loader) eventsAndDocuments(records []domain.Record) ([]domain.Event, *flow.Graph, map[string]string, []domain.Warning) {
	graph := flow.NewGraph()
	vendorNames := map[string]string{}
	events := make([]domain.Event, 0, len(records))
	var warnings []domain.Warning

	for i, rec := range records {
		caseID, ok := rec.String(domain.FieldCaseID)
		if !ok {
			warnings = append(warnings, domain.RowWarning("events", i+1, "missing case id, row skipped"))
			continue
		}
		event := domain.Event{CaseID: caseID}
		event.Activity, _ = rec.String(domain.FieldActivity)
		event.Resource, _ = rec.String(domain.FieldResource)
		event.ItemNumber, _ = rec.String(domain.FieldItemNumber)
		event.DocumentNumber, _ = rec.String(domain.FieldDocumentNumber)
		if event.DocumentNumber == "" {
			event.DocumentNumber = caseID
		}

		if raw, ok := rec.String(domain.FieldTimestamp); ok {
			if ts, parsed := tabular.ParseTimestamp(raw); parsed {
				event.Timestamp = &ts
			} else {
				warnings = append(warnings, domain.RowWarning("events", i+1, "unparseable timestamp %q, event kept without one", raw))
			}
		}

		doc := graph.Document(event.DocumentNumber)
		if doc == nil {
			doc = documentFromCase(event.DocumentNumber, rec)
			graph.Add(doc)
		}
		addItem(doc, event.ItemNumber)
		if vendor, ok := rec.String(domain.FieldPartyID); ok {
			if name, ok := rec.String(domain.FieldPartyName); ok && vendorNames[vendor] == "" {
				vendorNames[vendor] = name
			}
		}
		events = append(events, event)
	}
	return events, graph, vendorNames, warnings
}

func documentFromCase(number string, rec domain.Record) *domain.Document {
	doc := &domain.Document{
		Number:   number,
		Type:     domain.TypePurchaseDocument,
		Category: domain.CategoryPurchaseOrder,
	}
	doc.TypeCode, _ = rec.String(domain.FieldDocumentType)
	doc.PartyID, _ = rec.String(domain.FieldPartyID)
	doc.OrgUnit, _ = rec.String(domain.FieldCompany)
	if spend, ok := rec.String(domain.FieldSpendArea); ok {
		doc.Texts = []string{spend}
	}
	return doc
}

// addItem collects an item number on the document, keeping first-encounter
// order and skipping duplicates. A multi-item purchase document appears as
// several cases, each carrying its own item attribute.
func addItem(doc *domain.Document, itemNumber string) {
	if itemNumber == "" {
		return
	}
	for _, item := range doc.Items {
		if item.ItemNumber == itemNumber {
			return
		}
	}
	doc.Items = append(doc.Items, domain.Item{ItemNumber: itemNumber})
}

// computeTiming fills each purchase document's metrics from its inferred
// receipt stages: the goods receipt acts as the actual fulfilment date, the
// invoice receipt as the invoice date. There is no requested date in an
// activity log.
func computeTiming(graph *flow.Graph) {
	for _, number := range graph.Order {
		doc := graph.Documents[number]
		if doc.Category != domain.CategoryPurchaseOrder {
			continue
		}
		goodsDate := timestampOf(graph, domain.GoodsReceiptNumber(number))
		invoiceDate := timestampOf(graph, domain.InvoiceReceiptNumber(number))
		doc.Timing = timing.Compute(doc.CreatedAt, nil, goodsDate, invoiceDate)
	}
}

func timestampOf(graph *flow.Graph, number string) *time.Time {
	if doc := graph.Document(number); doc != nil {
		return doc.CreatedAt
	}
	return nil
}
