package eventlog

import (
	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/tabular"
)

// Activity-log exports carry process-mining column names: the exchange-format
// attribute spellings ("case:concept:name"), their flattened variants
// ("case concept:name"), and plain titles from hand-rolled exports.

var eventFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldCaseID:         {"case concept:name", "case:concept:name", "Case ID", "case_id", "CaseID"},
	domain.FieldActivity:       {"event concept:name", "concept:name", "Activity", "activity"},
	domain.FieldTimestamp:      {"event time:timestamp", "time:timestamp", "Timestamp", "timestamp", "Complete Timestamp"},
	domain.FieldResource:       {"event org:resource", "org:resource", "event User", "Resource", "User"},
	domain.FieldDocumentNumber: {"case Purchasing Document", "Purchasing Document", "case Purchase Order", "purchasing_document"},
	domain.FieldItemNumber:     {"case Item", "Item"},
	domain.FieldPartyID:        {"case Vendor", "Vendor", "vendor"},
	domain.FieldPartyName:      {"case Name", "Vendor Name"},
	domain.FieldCompany:        {"case Company", "Company", "company"},
	domain.FieldDocumentType:   {"case Document Type", "Document Type"},
	domain.FieldItemCategory:   {"case Item Category", "Item Category"},
	domain.FieldSpendArea:      {"case Spend area text", "Spend area text", "Spend Area"},
})

// Every mapped column stays a verbatim string: the ids for their leading
// zeros, the timestamp because it is parsed separately with the
// timestamp-layout chain rather than the date coercion.
var eventStringFields = map[string]bool{
	domain.FieldCaseID:         true,
	domain.FieldActivity:       true,
	domain.FieldTimestamp:      true,
	domain.FieldResource:       true,
	domain.FieldDocumentNumber: true,
	domain.FieldItemNumber:     true,
	domain.FieldPartyID:        true,
	domain.FieldPartyName:      true,
	domain.FieldCompany:        true,
	domain.FieldDocumentType:   true,
	domain.FieldItemCategory:   true,
	domain.FieldSpendArea:      true,
}
