package pain013

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/C0d3N1nJ4/payment-builder/internal/models"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"
	"github.com/C0d3N1nJ4/payment-builder/internal/xmlutils"

	"github.com/shopspring/decimal"
)

// Summary describes a pain.013 document read back from text.
type Summary struct {
	Namespace    string
	MessageID    string
	CreatedAt    string
	PaymentInfID string
	// InitiatingParty is the GrpHdr/InitgPty/Nm value.
	InitiatingParty string
	// DeclaredTxs is the NbOfTxs value, or -1 when it is not an integer.
	DeclaredTxs int
	// CountedTxs is the number of CdtTrfTxInf elements found.
	CountedTxs  int
	EndToEndIDs []string
	Creditors   []string
	// AmountCcys holds the Ccy attribute of every InstdAmt, in document order.
	AmountCcys   []string
	Totals       map[string]decimal.Decimal
	Transactions []models.Pain013Transaction
}

// Inspect reads a pain.013 document from r. It fails only when the input is
// not well-formed XML or an amount is not a decimal; structural mismatches are
// reported by Summary.Check.
func Inspect(r io.Reader) (*Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	var doc models.Pain013Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}

	root, err := xmlutils.ParseXML(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	counted, err := xmlutils.CountNodes(root, xmlutils.XPathTransaction)
	if err != nil {
		return nil, err
	}
	e2e, err := xmlutils.ExtractFromXML(root, xmlutils.XPathEndToEndID)
	if err != nil {
		return nil, err
	}
	creditors, err := xmlutils.ExtractFromXML(root, xmlutils.XPathCreditorName)
	if err != nil {
		return nil, err
	}
	ccys, err := xmlutils.ExtractFromXML(root, xmlutils.XPathCurrency)
	if err != nil {
		return nil, err
	}
	initgPty, err := xmlutils.FirstValue(root, xmlutils.XPathInitiatingParty)
	if err != nil {
		return nil, err
	}

	hdr := doc.Request.GrpHdr
	s := &Summary{
		Namespace:       doc.XMLName.Space,
		MessageID:       hdr.MsgID,
		CreatedAt:       hdr.CreDtTm,
		PaymentInfID:    doc.Request.PmtInf.PmtInfID,
		InitiatingParty: initgPty,
		DeclaredTxs:     -1,
		CountedTxs:      counted,
		EndToEndIDs:     e2e,
		Creditors:       creditors,
		AmountCcys:      ccys,
		Totals:          make(map[string]decimal.Decimal),
		Transactions:    doc.Request.PmtInf.Transactions,
	}
	if n, err := strconv.Atoi(strings.TrimSpace(hdr.NbOfTxs)); err == nil {
		s.DeclaredTxs = n
	}

	for i, tx := range s.Transactions {
		amt := tx.Amt.InstdAmt
		value, err := models.ParseAmount(strings.TrimSpace(amt.Value))
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		s.Totals[amt.Ccy] = s.Totals[amt.Ccy].Add(value)
	}

	return s, nil
}

// Check verifies the structural invariants of a generated message: the root
// namespace, the declared against counted transaction totals, one identifier and
// one currency per transaction, and the generated identifier prefixes.
func (s *Summary) Check() error {
	switch {
	case s.Namespace != Namespace:
		return &parsererror.ValidationError{Reason: fmt.Sprintf("unexpected namespace %q", s.Namespace)}
	case s.DeclaredTxs < 0:
		return &parsererror.ValidationError{Reason: "NbOfTxs is not an integer"}
	case s.DeclaredTxs != s.CountedTxs:
		return &parsererror.ValidationError{
			Reason: fmt.Sprintf("NbOfTxs declares %d transactions but %d were found", s.DeclaredTxs, s.CountedTxs),
		}
	case len(s.EndToEndIDs) != s.CountedTxs:
		return &parsererror.ValidationError{
			Reason: fmt.Sprintf("%d transactions but %d EndToEndId elements", s.CountedTxs, len(s.EndToEndIDs)),
		}
	case len(s.AmountCcys) != s.CountedTxs:
		return &parsererror.ValidationError{
			Reason: fmt.Sprintf("%d transactions but %d InstdAmt currencies", s.CountedTxs, len(s.AmountCcys)),
		}
	case !strings.HasPrefix(s.MessageID, MessageIDPrefix):
		return &parsererror.ValidationError{Reason: fmt.Sprintf("MsgId %q lacks prefix %s", s.MessageID, MessageIDPrefix)}
	case !strings.HasPrefix(s.PaymentInfID, PaymentInfoIDPrefix):
		return &parsererror.ValidationError{Reason: fmt.Sprintf("PmtInfId %q lacks prefix %s", s.PaymentInfID, PaymentInfoIDPrefix)}
	}
	return nil
}

// Creditor returns the creditor name of the i-th transaction, or "" when absent.
func (s *Summary) Creditor(i int) string {
	return xmlutils.GetOrEmpty(s.Creditors, i)
}

// Currencies returns the currencies present in Totals, sorted.
func (s *Summary) Currencies() []string {
	out := make([]string, 0, len(s.Totals))
	for ccy := range s.Totals {
		out = append(out, ccy)
	}
	sort.Strings(out)
	return out
}
