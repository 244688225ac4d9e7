package normalizer

// Field identifies one logical input column.
type Field string

const (
	DebtorName             Field = "debtor_name"
	DebtorIBAN             Field = "debtor_iban"
	DebtorOtherAccount     Field = "debtor_account_other"
	DebtorBIC              Field = "debtor_bic"
	DebtorAddressLine1     Field = "debtor_address_line1"
	DebtorAddressLine2     Field = "debtor_address_line2"
	DebtorCountry          Field = "debtor_country"
	CreditorName           Field = "creditor_name"
	CreditorIBAN           Field = "creditor_iban"
	CreditorOtherAccount   Field = "creditor_account_other"
	CreditorBIC            Field = "creditor_bic"
	CreditorAddressLine1   Field = "creditor_address_line1"
	CreditorAddressLine2   Field = "creditor_address_line2"
	CreditorCountry        Field = "creditor_country"
	Amount                 Field = "amount"
	Currency               Field = "currency"
	ExecutionDate          Field = "execution_date"
	EndToEndID             Field = "end_to_end_id"
	InstructionID          Field = "instruction_id"
	RemittanceUnstructured Field = "remittance_info"
	RemittanceStructured   Field = "remittance_structured"
	PurposeCode            Field = "purpose_code"
	CategoryPurposeCode    Field = "category_purpose_code"
	ChargeBearer           Field = "charge_bearer"
)

// aliases lists, per field, the accepted header names in precedence order.
// Every name is lower-case. The first entry is the canonical column name.
var aliases = map[Field][]string{
	DebtorName:             {"debtor_name", "debtorname", "payer_name"},
	DebtorIBAN:             {"debtor_iban", "debtor_account_iban", "payer_iban"},
	DebtorOtherAccount:     {"debtor_account_other", "debtor_account"},
	DebtorBIC:              {"debtor_bic", "payer_bic"},
	DebtorAddressLine1:     {"debtor_address_line1", "debtor_address1"},
	DebtorAddressLine2:     {"debtor_address_line2", "debtor_address2"},
	DebtorCountry:          {"debtor_country", "payer_country"},
	CreditorName:           {"creditor_name", "creditorname", "payee_name"},
	CreditorIBAN:           {"creditor_iban", "creditor_account_iban", "payee_iban"},
	CreditorOtherAccount:   {"creditor_account_other", "creditor_account"},
	CreditorBIC:            {"creditor_bic", "payee_bic"},
	CreditorAddressLine1:   {"creditor_address_line1", "creditor_address1"},
	CreditorAddressLine2:   {"creditor_address_line2", "creditor_address2"},
	CreditorCountry:        {"creditor_country", "payee_country"},
	Amount:                 {"amount", "instructed_amount", "payment_amount"},
	Currency:               {"currency", "ccy"},
	ExecutionDate:          {"execution_date", "requested_execution_date", "payment_date"},
	EndToEndID:             {"end_to_end_id", "endtoendid", "reference"},
	InstructionID:          {"instruction_id", "instructionid"},
	RemittanceUnstructured: {"remittance_info", "remittance_information", "payment_reference"},
	RemittanceStructured:   {"remittance_structured", "structured_remittance"},
	PurposeCode:            {"purpose_code", "purpose"},
	CategoryPurposeCode:    {"category_purpose_code", "category_purpose"},
	ChargeBearer:           {"charge_bearer", "charges"},
}
