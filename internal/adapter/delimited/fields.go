package delimited

import (
	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/tabular"
)

// Alias tables for the four delimited export resources. Each canonical field
// accepts the technical column code, its upper-case form, and the
// natural-language titles the common export tools emit. Built once at
// package init, never re-derived per row.

var headerFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldDocumentNumber: {"vbeln", "VBELN", "sales_document", "Sales Document", "order_number", "Order Number"},
	domain.FieldDocumentType:   {"auart", "AUART", "order_type", "Order Type", "Sales Document Type"},
	domain.FieldSalesOrg:       {"vkorg", "VKORG", "sales_org", "Sales Org", "Sales Organization"},
	domain.FieldDistribChannel: {"vtweg", "VTWEG", "Distribution Channel"},
	domain.FieldDivision:       {"spart", "SPART", "Division"},
	domain.FieldCreatedDate:    {"erdat", "ERDAT", "Created Date", "Creation Date"},
	domain.FieldCreatedTime:    {"erzet", "ERZET", "Created Time"},
	domain.FieldCreatedBy:      {"ernam", "ERNAM", "Created By"},
	domain.FieldNetValue:       {"netwr", "NETWR", "net_value", "Net Value"},
	domain.FieldCurrency:       {"waerk", "WAERK", "currency", "Currency"},
	domain.FieldPartyID:        {"kunnr", "KUNNR", "customer", "Customer", "Sold-to party", "Sold-To Party"},
	domain.FieldRequestedDate:  {"vdatu", "VDATU", "req_delivery_date", "Requested Delivery Date"},
})

var itemFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldDocumentNumber: {"vbeln", "VBELN", "sales_document", "Sales Document"},
	domain.FieldItemNumber:     {"posnr", "POSNR", "item", "Item", "Item Number", "Sales Document Item"},
	domain.FieldMaterialID:     {"matnr", "MATNR", "material", "Material", "Material Number"},
	domain.FieldPlant:          {"werks", "WERKS", "plant", "Plant"},
	domain.FieldQuantity:       {"kwmeng", "KWMENG", "quantity", "Quantity", "Order Quantity"},
	domain.FieldNetValue:       {"netwr", "NETWR", "net_value", "Net Value", "Net Amount"},
	domain.FieldItemCategory:   {"pstyv", "PSTYV", "Item Category"},
	domain.FieldUnit:           {"vrkme", "VRKME", "Sales Unit", "meins", "MEINS", "Unit"},
})

var textFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldTextObject:  {"tdname", "TDNAME", "object_key", "Object Key"},
	domain.FieldTextID:      {"tdid", "TDID", "text_id", "Text ID"},
	domain.FieldLanguage:    {"tdspras", "TDSPRAS", "spras", "SPRAS", "language", "Language"},
	domain.FieldTextContent: {"tdline", "TDLINE", "text", "Text", "text_line", "Text Line", "content", "Content"},
	"text_object_type":      {"tdobject", "TDOBJECT", "Text Object"},
})

var flowFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldPrecedingDoc:   {"vbelv", "VBELV", "preceding_doc", "Preceding Doc", "Source Document"},
	domain.FieldPrecedingItem:  {"posnv", "POSNV", "preceding_item", "Source Item"},
	domain.FieldPrecedingCat:   {"vbtyp_v", "VBTYP_V", "source_category", "Source Category"},
	domain.FieldSubsequentDoc:  {"vbeln", "VBELN", "subsequent_doc", "Subsequent Doc", "Target Document"},
	domain.FieldSubsequentItem: {"posnn", "POSNN", "subsequent_item", "Target Item"},
	domain.FieldSubsequentCat:  {"vbtyp_n", "VBTYP_N", "target_category", "Target Category"},
	domain.FieldReferenceQty:   {"rfmng", "RFMNG", "Reference Quantity"},
	domain.FieldCreatedDate:    {"erdat", "ERDAT", "created_date", "Created Date"},
})

// Identifier fields that always stay verbatim strings: document numbers,
// item numbers, material ids, category codes — anywhere leading zeros or
// non-numeric characters are significant.
var headerStringFields = map[string]bool{
	domain.FieldDocumentNumber: true,
	domain.FieldDocumentType:   true,
	domain.FieldSalesOrg:       true,
	domain.FieldDistribChannel: true,
	domain.FieldDivision:       true,
	domain.FieldCreatedBy:      true,
	domain.FieldCurrency:       true,
	domain.FieldPartyID:        true,
}

var itemStringFields = map[string]bool{
	domain.FieldDocumentNumber: true,
	domain.FieldItemNumber:     true,
	domain.FieldMaterialID:     true,
	domain.FieldPlant:          true,
	domain.FieldItemCategory:   true,
	domain.FieldUnit:           true,
}

var textStringFields = map[string]bool{
	domain.FieldTextObject:  true,
	domain.FieldTextID:      true,
	domain.FieldLanguage:    true,
	domain.FieldTextContent: true,
	"text_object_type":      true,
}

var flowStringFields = map[string]bool{
	domain.FieldPrecedingDoc:   true,
	domain.FieldPrecedingItem:  true,
	domain.FieldPrecedingCat:   true,
	domain.FieldSubsequentDoc:  true,
	domain.FieldSubsequentItem: true,
	domain.FieldSubsequentCat:  true,
}
