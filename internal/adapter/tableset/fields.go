package tableset

import (
	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/tabular"
)

// Related table sets come from API extractions, which emit either the
// ALL-CAPS technical spelling or the CamelCase entity-property spelling
// depending on the extraction tool. Both map to the same canonical field.

var documentFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldDocumentNumber: {"SALESDOCUMENT", "SalesDocument", "salesdocument"},
	domain.FieldDocumentType:   {"SALESDOCUMENTTYPE", "SalesDocumentType", "SDDocumentCategory"},
	domain.FieldSalesOrg:       {"SALESORGANIZATION", "SalesOrganization"},
	domain.FieldDistribChannel: {"DISTRIBUTIONCHANNEL", "DistributionChannel"},
	domain.FieldDivision:       {"ORGANIZATIONDIVISION", "OrganizationDivision", "Division"},
	domain.FieldCreatedDate:    {"CREATIONDATE", "CreationDate", "SalesDocumentDate"},
	domain.FieldCreatedBy:      {"CREATEDBYUSER", "CreatedByUser"},
	domain.FieldRequestedDate:  {"REQUESTEDDELIVERYDATE", "RequestedDeliveryDate"},
	domain.FieldNetValue:       {"TOTALNETAMOUNT", "TotalNetAmount", "NetAmount"},
	domain.FieldCurrency:       {"TRANSACTIONCURRENCY", "TransactionCurrency"},
	domain.FieldPartyID:        {"SOLDTOPARTY", "SoldToParty", "CUSTOMER", "Customer"},
	domain.FieldPaymentTerms:   {"CUSTOMERPAYMENTTERMS", "CustomerPaymentTerms"},
	domain.FieldIncoterms:      {"INCOTERMSCLASSIFICATION", "IncotermsClassification"},
})

var itemFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldDocumentNumber: {"SALESDOCUMENT", "SalesDocument"},
	domain.FieldItemNumber:     {"SALESDOCUMENTITEM", "SalesDocumentItem"},
	domain.FieldMaterialID:     {"MATERIAL", "Material", "Product"},
	domain.FieldQuantity:       {"REQUESTEDQUANTITY", "RequestedQuantity", "OrderQuantity"},
	domain.FieldUnit:           {"REQUESTEDQUANTITYUNIT", "RequestedQuantityUnit", "OrderQuantityUnit"},
	domain.FieldNetValue:       {"NETAMOUNT", "NetAmount"},
	domain.FieldPlant:          {"PRODUCTIONPLANT", "ProductionPlant", "Plant"},
	domain.FieldShippingPoint:  {"SHIPPINGPOINT", "ShippingPoint"},
	domain.FieldItemCategory:   {"SALESDOCUMENTITEMCATEGORY", "SalesDocumentItemCategory"},
})

var partyFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldPartyID:      {"CUSTOMER", "Customer", "BUSINESSPARTNER", "BusinessPartner"},
	domain.FieldPartyName:    {"CUSTOMERNAME", "CustomerName", "BUSINESSPARTNERFULLNAME", "BusinessPartnerFullName"},
	domain.FieldAccountGroup: {"CUSTOMERACCOUNTGROUP", "CustomerAccountGroup", "AuthorizationGroup"},
})

var addressFields = tabular.NewFieldMap(map[string][]string{
	domain.FieldPartyID:    {"CUSTOMER", "Customer", "BUSINESSPARTNER", "BusinessPartner"},
	domain.FieldCountry:    {"COUNTRY", "Country", "CountryKey"},
	domain.FieldRegion:     {"REGION", "Region"},
	domain.FieldCity:       {"CITYNAME", "CityName", "City"},
	domain.FieldPostalCode: {"POSTALCODE", "PostalCode"},
})

var documentStringFields = map[string]bool{
	domain.FieldDocumentNumber: true,
	domain.FieldDocumentType:   true,
	domain.FieldSalesOrg:       true,
	domain.FieldDistribChannel: true,
	domain.FieldDivision:       true,
	domain.FieldCreatedBy:      true,
	domain.FieldCurrency:       true,
	domain.FieldPartyID:        true,
	domain.FieldPaymentTerms:   true,
	domain.FieldIncoterms:      true,
}

var itemStringFields = map[string]bool{
	domain.FieldDocumentNumber: true,
	domain.FieldItemNumber:     true,
	domain.FieldMaterialID:     true,
	domain.FieldUnit:           true,
	domain.FieldPlant:          true,
	domain.FieldShippingPoint:  true,
	domain.FieldItemCategory:   true,
}

var partyStringFields = map[string]bool{
	domain.FieldPartyID:      true,
	domain.FieldPartyName:    true,
	domain.FieldAccountGroup: true,
}

var addressStringFields = map[string]bool{
	domain.FieldPartyID:    true,
	domain.FieldCountry:    true,
	domain.FieldRegion:     true,
	domain.FieldCity:       true,
	domain.FieldPostalCode: true,
}
