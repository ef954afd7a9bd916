package flow

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/tabular"
)

// Graph is the document-flow graph for one source: every document keyed by
// number plus the deduplicated edge set. Order preserves first-encounter
// order of the documents so output and statistics stay deterministic.
type Graph struct {
	Documents map[string]*domain.Document
	Order     []string
	Edges     []domain.FlowEdge

	edgeSeen map[[4]string]bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Documents: map[string]*domain.Document{}}
}

// Document returns the node for a number, or nil.
func (g *Graph) Document(number string) *domain.Document {
	return g.Documents[number]
}

// Add registers a document node, keeping first-encounter order.
func (g *Graph) Add(doc *domain.Document) {
	if _, ok := g.Documents[doc.Number]; ok {
		return
	}
	g.Documents[doc.Number] = doc
	g.Order = append(g.Order, doc.Number)
}

// AddEdge appends an edge unless its 4-tuple was already seen.
func (g *Graph) AddEdge(edge domain.FlowEdge) bool {
	if g.edgeSeen == nil {
		g.edgeSeen = map[[4]string]bool{}
	}
	key := edge.Key()
	if g.edgeSeen[key] {
		return false
	}
	g.edgeSeen[key] = true
	g.Edges = append(g.Edges, edge)
	return true
}

// Builder assembles document graphs from normalized records.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a Builder. A nil logger is replaced with a no-op one.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// Build produces one Document per unique document number in the header
// records, attaches items by their document-number foreign key, and takes
// explicit flow records verbatim as edges (duplicates suppressed). Items
// without a matching header and flow rows without both document numbers are
// skipped with a warning.
func (b *Builder) Build(headers, items, flows []domain.Record, docType domain.DocumentType, category domain.CategoryCode) (*Graph, []domain.Warning) {
	graph := NewGraph()
	var warnings []domain.Warning

	for i, header := range headers {
		number, ok := header.String(domain.FieldDocumentNumber)
		if !ok {
			warnings = append(warnings, domain.RowWarning("headers", i+1, "missing document number, row skipped"))
			continue
		}
		if existing := graph.Document(number); existing != nil {
			warnings = append(warnings, domain.RowWarning("headers", i+1, "duplicate document %s, first occurrence kept", number))
			continue
		}
		graph.Add(b.documentFromHeader(number, header, docType, category))
	}

	orphans := 0
	for i, item := range items {
		number, ok := item.String(domain.FieldDocumentNumber)
		if !ok {
			warnings = append(warnings, domain.RowWarning("items", i+1, "missing document number, row skipped"))
			continue
		}
		doc := graph.Document(number)
		if doc == nil {
			warnings = append(warnings, domain.RowWarning("items", i+1, "no matching header for document %s, item dropped", number))
			orphans++
			continue
		}
		doc.Items = append(doc.Items, itemFromRecord(item))
	}
	if orphans > 0 {
		b.logger.Warn("dropped items without matching header", zap.Int("count", orphans))
	}

	for i, flowRec := range flows {
		edge, err := edgeFromRecord(flowRec)
		if err != "" {
			warnings = append(warnings, domain.RowWarning("flows", i+1, "%s, edge skipped", err))
			continue
		}
		b.ensureEndpoints(graph, edge)
		graph.AddEdge(edge)
	}

	b.logger.Info("document graph built",
		zap.Int("documents", len(graph.Order)),
		zap.Int("edges", len(graph.Edges)),
		zap.Int("warnings", len(warnings)))
	return graph, warnings
}

func (b *Builder) documentFromHeader(number string, header domain.Record, docType domain.DocumentType, category domain.CategoryCode) *domain.Document {
	doc := &domain.Document{
		Number:   number,
		Type:     docType,
		Category: category,
	}
	doc.TypeCode, _ = header.String(domain.FieldDocumentType)
	doc.PartyID, _ = header.String(domain.FieldPartyID)
	doc.Currency, _ = header.String(domain.FieldCurrency)
	if org, ok := header.String(domain.FieldSalesOrg); ok {
		doc.OrgUnit = org
	} else if company, ok := header.String(domain.FieldCompany); ok {
		doc.OrgUnit = company
	}
	if value, ok := header.Float(domain.FieldNetValue); ok {
		doc.NetValue = &value
	}
	if created, ok := tabular.ParseDate(header[domain.FieldCreatedDate]); ok {
		doc.CreatedAt = &created
	}
	if requested, ok := tabular.ParseDate(header[domain.FieldRequestedDate]); ok {
		doc.RequestedAt = &requested
	}
	return doc
}

func itemFromRecord(record domain.Record) domain.Item {
	item := domain.Item{}
	item.ItemNumber, _ = record.String(domain.FieldItemNumber)
	item.MaterialID, _ = record.String(domain.FieldMaterialID)
	item.Plant, _ = record.String(domain.FieldPlant)
	item.ShippingPoint, _ = record.String(domain.FieldShippingPoint)
	item.ItemCategory, _ = record.String(domain.FieldItemCategory)
	item.Unit, _ = record.String(domain.FieldUnit)
	if qty, ok := record.Float(domain.FieldQuantity); ok {
		item.Quantity = &qty
	}
	if value, ok := record.Float(domain.FieldNetValue); ok {
		item.NetValue = &value
	}
	return item
}

func edgeFromRecord(record domain.Record) (domain.FlowEdge, string) {
	preceding, ok := record.String(domain.FieldPrecedingDoc)
	if !ok {
		return domain.FlowEdge{}, "missing preceding document"
	}
	subsequent, ok := record.String(domain.FieldSubsequentDoc)
	if !ok {
		return domain.FlowEdge{}, "missing subsequent document"
	}

	edge := domain.FlowEdge{
		PrecedingDoc:  preceding,
		SubsequentDoc: subsequent,
	}
	// Some exports carry the category codes in lowercase; classification is
	// case-insensitive on them.
	if cat, ok := record.String(domain.FieldPrecedingCat); ok {
		edge.PrecedingCat = domain.CategoryCode(strings.ToUpper(cat))
	}
	if cat, ok := record.String(domain.FieldSubsequentCat); ok {
		edge.SubsequentCat = domain.CategoryCode(strings.ToUpper(cat))
	}
	if qty, ok := record.Float(domain.FieldReferenceQty); ok {
		edge.Quantity = &qty
	}
	if ts, ok := tabular.ParseDate(record[domain.FieldCreatedDate]); ok {
		edge.OccurredAt = &ts
	}
	return edge, ""
}

// ensureEndpoints synthesizes stub nodes for edge endpoints the header
// resource never declared, so every edge reference resolves to a node.
func (b *Builder) ensureEndpoints(graph *Graph, edge domain.FlowEdge) {
	if graph.Document(edge.PrecedingDoc) == nil {
		graph.Add(stubDocument(edge.PrecedingDoc, edge.PrecedingCat, edge.OccurredAt))
	}
	if graph.Document(edge.SubsequentDoc) == nil {
		graph.Add(stubDocument(edge.SubsequentDoc, edge.SubsequentCat, edge.OccurredAt))
	}
}

func stubDocument(number string, cat domain.CategoryCode, createdAt *time.Time) *domain.Document {
	return &domain.Document{
		Number:    number,
		Type:      domain.TypeForCategory(cat),
		Category:  cat,
		CreatedAt: createdAt,
		Synthetic: true,
	}
}
