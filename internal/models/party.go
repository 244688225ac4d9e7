package models

// Party is the debtor or creditor side of a payment instruction.
// An empty string means the value is absent.
type Party struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	IBAN         string `json:"iban,omitempty" yaml:"iban,omitempty"`
	OtherID      string `json:"other_id,omitempty" yaml:"other_id,omitempty"`
	BIC          string `json:"bic,omitempty" yaml:"bic,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty" yaml:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty" yaml:"address_line2,omitempty"`
	Country      string `json:"country,omitempty" yaml:"country,omitempty"`
}

// HasIBAN returns true if the party has an IBAN.
func (p Party) HasIBAN() bool {
	return p.IBAN != ""
}

// HasOtherID returns true if the party has a non-IBAN account identifier.
func (p Party) HasOtherID() bool {
	return p.OtherID != ""
}

// HasBIC returns true if the party has a BIC.
func (p Party) HasBIC() bool {
	return p.BIC != ""
}

// AccountID returns the authoritative account identifier: the IBAN when present,
// otherwise the other-scheme identifier, otherwise "".
func (p Party) AccountID() string {
	if p.HasIBAN() {
		return p.IBAN
	}
	return p.OtherID
}

// AddressLines returns the present address lines in order.
func (p Party) AddressLines() []string {
	lines := make([]string, 0, 2)
	if p.AddressLine1 != "" {
		lines = append(lines, p.AddressLine1)
	}
	if p.AddressLine2 != "" {
		lines = append(lines, p.AddressLine2)
	}
	return lines
}
