// Package xmlutils provides XPath helpers for reading generated XML messages.
package xmlutils

// XPath expressions for pain.013 documents. The matcher ignores namespaces.
const (
	XPathInitiatingParty = "/Document/CdtrPmtActvtnReq/GrpHdr/InitgPty/Nm"
	XPathTransaction     = "/Document/CdtrPmtActvtnReq/PmtInf/CdtTrfTxInf"

	XPathEndToEndID   = "//CdtTrfTxInf/PmtId/EndToEndId"
	XPathCurrency     = "//CdtTrfTxInf/Amt/InstdAmt/@Ccy"
	XPathCreditorName = "//CdtTrfTxInf/Cdtr/Nm"
)
