package domain

// Canonical field vocabulary. Every source adapter maps its own column
// spellings onto these names before any record leaves the normalizer, so the
// rest of the pipeline never sees source-specific headers.
const (
	// Document headers
	FieldDocumentNumber = "document_number"
	FieldDocumentType   = "document_type"
	FieldCreatedDate    = "created_date"
	FieldCreatedTime    = "created_time"
	FieldCreatedBy      = "created_by"
	FieldRequestedDate  = "requested_date"
	FieldBillingDate    = "billing_date"
	FieldNetValue       = "net_value"
	FieldCurrency       = "currency"
	FieldPartyID        = "party_id"
	FieldSalesOrg       = "sales_org"
	FieldDistribChannel = "distribution_channel"
	FieldDivision       = "division"
	FieldSalesOffice    = "sales_office"
	FieldSalesGroup     = "sales_group"
	FieldPaymentTerms   = "payment_terms"
	FieldShippingCond   = "shipping_condition"
	FieldIncoterms      = "incoterms"
	FieldCompany        = "company"
	FieldSpendArea      = "spend_area"

	// Line items
	FieldItemNumber    = "item_number"
	FieldMaterialID    = "material_id"
	FieldQuantity      = "quantity"
	FieldPlant         = "plant"
	FieldShippingPoint = "shipping_point"
	FieldItemCategory  = "item_category"
	FieldUnit          = "unit"

	// Free-text annotations
	FieldTextObject  = "text_object"
	FieldTextID      = "text_id"
	FieldTextContent = "text_content"
	FieldLanguage    = "language"

	// Flow records
	FieldPrecedingDoc   = "preceding_document"
	FieldPrecedingItem  = "preceding_item"
	FieldPrecedingCat   = "preceding_category"
	FieldSubsequentDoc  = "subsequent_document"
	FieldSubsequentItem = "subsequent_item"
	FieldSubsequentCat  = "subsequent_category"
	FieldReferenceQty   = "reference_quantity"

	// Parties and addresses
	FieldPartyName    = "party_name"
	FieldCountry      = "country"
	FieldRegion       = "region"
	FieldCity         = "city"
	FieldPostalCode   = "postal_code"
	FieldAccountGroup = "account_group"

	// Activity-log columns
	FieldCaseID    = "case_id"
	FieldActivity  = "activity"
	FieldTimestamp = "timestamp"
	FieldResource  = "resource"
)
