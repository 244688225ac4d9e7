// Package pain013 builds ISO 20022 pain.013 Creditor Payment Activation Request
// messages from normalized instructions and reads them back for inspection.
//
// The document layout is fixed: two-space indentation, one element per line,
// a single PmtInf group and one CdtTrfTxInf per instruction in input order.
// Optional blocks are gated by the emit* decision functions below.
package pain013

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/C0d3N1nJ4/payment-builder/internal/dateutils"
	"github.com/C0d3N1nJ4/payment-builder/internal/models"
)

// Header constants of every generated message.
const (
	XMLDeclaration     = `<?xml version="1.0" encoding="UTF-8"?>`
	Namespace          = models.Pain013Namespace
	InitiatingPartyNm  = "Payment Builder System"
	indentUnit         = "  "
	estimatedTxnLength = 640
)

// Option configures a Generator.
type Option func(*Generator)

// WithIDSource replaces the random token source.
func WithIDSource(src IDSource) Option {
	return func(g *Generator) {
		if src != nil {
			g.ids = src
		}
	}
}

// WithClock replaces the wall clock used for CreDtTm.
func WithClock(clock Clock) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// Generator renders pain.013 documents. It keeps no state between calls and is
// safe for concurrent use as long as its IDSource and Clock are.
type Generator struct {
	ids   IDSource
	clock Clock
}

// NewGenerator creates a Generator using random UUID tokens and time.Now.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		ids:   UUIDTokens,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the complete document for instructions. It never fails:
// absent optional values either suppress their block or fall back to the
// documented defaults. The text ends with </Document> and no trailing newline.
func (g *Generator) Generate(instructions []models.Instruction) string {
	w := &docWriter{}
	w.Grow(1024 + estimatedTxnLength*len(instructions))

	w.raw(XMLDeclaration)
	w.openAttr("Document", "xmlns", Namespace)
	w.open("CdtrPmtActvtnReq")
	g.writeGroupHeader(w, len(instructions))
	g.writePaymentInfo(w, instructions)
	w.close("CdtrPmtActvtnReq")
	w.closeLast("Document")

	return w.String()
}

// WriteTo writes the document for instructions to out.
func (g *Generator) WriteTo(out io.Writer, instructions []models.Instruction) (int64, error) {
	n, err := io.WriteString(out, g.Generate(instructions))
	return int64(n), err
}

func (g *Generator) token(prefix string) string {
	return prefix + g.ids()
}

func (g *Generator) writeGroupHeader(w *docWriter, count int) {
	msgID := g.token(MessageIDPrefix)
	created := dateutils.ToISODateTime(g.clock())

	w.open("GrpHdr")
	w.leaf("MsgId", msgID)
	w.leaf("CreDtTm", created)
	w.leaf("NbOfTxs", strconv.Itoa(count))
	w.open("InitgPty")
	w.leaf("Nm", InitiatingPartyNm)
	w.close("InitgPty")
	w.close("GrpHdr")
}

func (g *Generator) writePaymentInfo(w *docWriter, instructions []models.Instruction) {
	w.open("PmtInf")
	w.leaf("PmtInfId", g.token(PaymentInfoIDPrefix))
	w.leaf("PmtMtd", models.PaymentMethodTransfer)
	for _, ins := range instructions {
		g.writeTransaction(w, ins)
	}
	w.close("PmtInf")
}

func (g *Generator) writeTransaction(w *docWriter, ins models.Instruction) {
	w.open("CdtTrfTxInf")

	w.open("PmtId")
	if ins.InstructionID != "" {
		w.leaf("InstrId", ins.InstructionID)
	}
	w.leaf("EndToEndId", g.endToEndID(ins))
	w.close("PmtId")

	if emitPaymentTypeInfo(ins) {
		w.open("PmtTpInf")
		if ins.CategoryPurposeCode != "" {
			w.open("CtgyPurp")
			w.leaf("Cd", ins.CategoryPurposeCode)
			w.close("CtgyPurp")
		}
		w.close("PmtTpInf")
	}

	w.open("Amt")
	w.leafAttr("InstdAmt", "Ccy", currency(ins), amountText(ins))
	w.close("Amt")

	if ins.ChargeBearer != "" {
		w.leaf("ChrgBr", ins.ChargeBearer)
	}

	if emitCreditorAgent(ins) {
		w.open("CdtrAgt")
		w.open("FinInstnId")
		w.leaf("BICFI", ins.Creditor.BIC)
		w.close("FinInstnId")
		w.close("CdtrAgt")
	}

	writeCreditor(w, ins.Creditor)
	writeCreditorAccount(w, ins.Creditor)

	if emitRemittanceInfo(ins) {
		w.open("RmtInf")
		if ins.RemittanceUnstructured != "" {
			w.leaf("Ustrd", ins.RemittanceUnstructured)
		}
		w.close("RmtInf")
	}

	w.close("CdtTrfTxInf")
}

func (g *Generator) endToEndID(ins models.Instruction) string {
	if ins.EndToEndID != "" {
		return ins.EndToEndID
	}
	return g.token(EndToEndIDPrefix)
}

func writeCreditor(w *docWriter, p models.Party) {
	w.open("Cdtr")
	w.leaf("Nm", p.Name)
	if emitPostalAddress(p) {
		w.open("PstlAdr")
		if p.Country != "" {
			w.leaf("Ctry", p.Country)
		}
		for _, line := range p.AddressLines() {
			w.leaf("AdrLine", line)
		}
		w.close("PstlAdr")
	}
	w.close("Cdtr")
}

func writeCreditorAccount(w *docWriter, p models.Party) {
	w.open("CdtrAcct")
	w.open("Id")
	switch {
	case p.HasIBAN():
		w.leaf("IBAN", p.IBAN)
	case p.HasOtherID():
		w.open("Othr")
		w.leaf("Id", p.OtherID)
		w.close("Othr")
	}
	w.close("Id")
	w.close("CdtrAcct")
}

func currency(ins models.Instruction) string {
	if ins.Currency != "" {
		return ins.Currency
	}
	return models.DefaultCurrency
}

func amountText(ins models.Instruction) string {
	if ins.Amount.Valid {
		return ins.AmountText()
	}
	return models.DefaultAmountText
}

// emitPaymentTypeInfo gates PmtTpInf on either purpose code. Only the category
// purpose code is rendered inside the block, so a purpose code alone yields an
// empty PmtTpInf. Existing consumers depend on this output.
func emitPaymentTypeInfo(ins models.Instruction) bool {
	return ins.CategoryPurposeCode != "" || ins.PurposeCode != ""
}

// emitRemittanceInfo gates RmtInf on either remittance text. Only the
// unstructured text is rendered, so structured text alone yields an empty RmtInf.
func emitRemittanceInfo(ins models.Instruction) bool {
	return ins.RemittanceUnstructured != "" || ins.RemittanceStructured != ""
}

// emitPostalAddress gates PstlAdr on address line 1 or country. A lone address
// line 2 does not open the block.
func emitPostalAddress(p models.Party) bool {
	return p.AddressLine1 != "" || p.Country != ""
}

func emitCreditorAgent(ins models.Instruction) bool {
	return ins.Creditor.HasBIC()
}

// docWriter emits one element per line at the current indentation depth.
type docWriter struct {
	strings.Builder
	depth int
}

func (w *docWriter) indent() {
	for i := 0; i < w.depth; i++ {
		w.WriteString(indentUnit)
	}
}

func (w *docWriter) raw(s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *docWriter) open(name string) {
	w.indent()
	w.WriteByte('<')
	w.WriteString(name)
	w.WriteString(">\n")
	w.depth++
}

func (w *docWriter) openAttr(name, attr, value string) {
	w.indent()
	w.WriteByte('<')
	w.WriteString(name)
	w.writeAttr(attr, value)
	w.WriteString(">\n")
	w.depth++
}

func (w *docWriter) writeAttr(attr, value string) {
	w.WriteByte(' ')
	w.WriteString(attr)
	w.WriteString(`="`)
	w.WriteString(Escape(value))
	w.WriteByte('"')
}

func (w *docWriter) close(name string) {
	w.depth--
	w.indent()
	w.WriteString("</")
	w.WriteString(name)
	w.WriteString(">\n")
}

// closeLast writes the final end tag without a line terminator.
func (w *docWriter) closeLast(name string) {
	w.depth--
	w.indent()
	w.WriteString("</")
	w.WriteString(name)
	w.WriteByte('>')
}

func (w *docWriter) leaf(name, value string) {
	w.indent()
	w.WriteByte('<')
	w.WriteString(name)
	w.WriteByte('>')
	w.WriteString(Escape(value))
	w.WriteString("</")
	w.WriteString(name)
	w.WriteString(">\n")
}

func (w *docWriter) leafAttr(name, attr, attrValue, value string) {
	w.indent()
	w.WriteByte('<')
	w.WriteString(name)
	w.writeAttr(attr, attrValue)
	w.WriteByte('>')
	w.WriteString(Escape(value))
	w.WriteString("</")
	w.WriteString(name)
	w.WriteString(">\n")
}
