package models

// Generation defaults applied by the message generator, never at parse time.
const (
	DefaultCurrency   = "EUR"
	DefaultAmountText = "0.00"
)

// PaymentMethodTransfer is the only payment method emitted in PmtInf.
const PaymentMethodTransfer = "TRF"

// PermissionOutputFile is applied to generated messages, reports and CSV exports.
const PermissionOutputFile = 0644
