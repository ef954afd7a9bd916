package domain

import "time"

// CategoryCode classifies a document's role in the flow graph. The one-letter
// codes follow the ERP document-flow convention; GoodsReceipt and
// InvoiceReceipt cover the procurement direction of the same lifecycle.
type CategoryCode string

const (
	CategoryOrder          CategoryCode = "C"
	CategoryDelivery       CategoryCode = "J"
	CategoryInvoice        CategoryCode = "M"
	CategoryPurchaseOrder  CategoryCode = "F"
	CategoryGoodsReceipt   CategoryCode = "R"
	CategoryInvoiceReceipt CategoryCode = "P"
)

// DocumentType tags the business meaning of a document.
type DocumentType string

const (
	TypeOrder            DocumentType = "order"
	TypeDelivery         DocumentType = "delivery"
	TypeInvoice          DocumentType = "invoice"
	TypePurchaseDocument DocumentType = "purchase_document"
	TypeGoodsReceipt     DocumentType = "goods_receipt"
	TypeInvoiceReceipt   DocumentType = "invoice_receipt"
)

// TypeForCategory maps a flow category code to the document type a stub node
// of that category should carry.
func TypeForCategory(cat CategoryCode) DocumentType {
	switch cat {
	case CategoryDelivery:
		return TypeDelivery
	case CategoryInvoice:
		return TypeInvoice
	case CategoryPurchaseOrder:
		return TypePurchaseDocument
	case CategoryGoodsReceipt:
		return TypeGoodsReceipt
	case CategoryInvoiceReceipt:
		return TypeInvoiceReceipt
	default:
		return TypeOrder
	}
}

// Item is one line of a document. Quantity and NetValue stay nil when the
// source row had no value; zero is a legitimate stated amount.
type Item struct {
	ItemNumber    string   `json:"item_number"`
	MaterialID    string   `json:"material_id,omitempty"`
	Quantity      *float64 `json:"quantity,omitempty"`
	NetValue      *float64 `json:"net_value,omitempty"`
	Plant         string   `json:"plant,omitempty"`
	ShippingPoint string   `json:"shipping_point,omitempty"`
	ItemCategory  string   `json:"item_category,omitempty"`
	Unit          string   `json:"unit,omitempty"`
}

// Document is a business record in the order/delivery/invoice lifecycle.
// Number is always a string; leading zeros are significant and must survive
// every transformation.
type Document struct {
	Number        string        `json:"document_number"`
	Type          DocumentType  `json:"type"`
	Category      CategoryCode  `json:"category"`
	TypeCode      string        `json:"type_code,omitempty"`
	CreatedAt     *time.Time    `json:"created_date,omitempty"`
	RequestedAt   *time.Time    `json:"requested_date,omitempty"`
	PartyID       string        `json:"party_id,omitempty"`
	OrgUnit       string        `json:"org_unit,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	NetValue      *float64      `json:"net_value,omitempty"`
	Items         []Item        `json:"items,omitempty"`
	Texts         []string      `json:"texts,omitempty"`
	Timing        TimingMetrics `json:"timing"`
	Synthetic     bool          `json:"synthetic,omitempty"`
	SourceCounter int           `json:"-"`
}

// FlowEdge states that one document is the origin of another. The identity of
// an edge is the 4-tuple of documents and categories; quantity and timestamp
// are informational.
type FlowEdge struct {
	PrecedingDoc  string       `json:"preceding_doc"`
	PrecedingCat  CategoryCode `json:"preceding_category"`
	SubsequentDoc string       `json:"subsequent_doc"`
	SubsequentCat CategoryCode `json:"subsequent_category"`
	Quantity      *float64     `json:"quantity,omitempty"`
	OccurredAt    *time.Time   `json:"occurred_at,omitempty"`
}

// Key returns the identity 4-tuple used for duplicate suppression.
func (e FlowEdge) Key() [4]string {
	return [4]string{e.PrecedingDoc, string(e.PrecedingCat), e.SubsequentDoc, string(e.SubsequentCat)}
}

// Party identifies the customer or vendor a document belongs to, depending on
// process direction.
type Party struct {
	ID           string `json:"party_id"`
	Name         string `json:"name,omitempty"`
	Country      string `json:"country,omitempty"`
	Region       string `json:"region,omitempty"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	AccountGroup string `json:"account_group,omitempty"`
}

// TimingMetrics holds day-count deltas between milestone dates. A nil field
// means the required dates were not both known; it is never zero-filled.
type TimingMetrics struct {
	OrderToDeliveryDays *int `json:"order_to_delivery_days,omitempty"`
	DeliveryDelayDays   *int `json:"delivery_delay_days,omitempty"`
	InvoiceLagDays      *int `json:"invoice_lag_days,omitempty"`
	OrderToInvoiceDays  *int `json:"order_to_invoice_days,omitempty"`
}

// Synthetic document numbers. Table-set sources follow the numeric range
// convention (deliveries 8…, invoices 9…); event-log sources have no number
// ranges, so goods receipts and invoice receipts get letter prefixes instead.
// Both are deterministic in the source document number.
func SyntheticDeliveryNumber(order string) string { return "8" + order }
func SyntheticInvoiceNumber(order string) string  { return "9" + order }
func GoodsReceiptNumber(document string) string   { return "GR" + document }
func InvoiceReceiptNumber(document string) string { return "IR" + document }
