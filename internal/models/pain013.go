package models

import "encoding/xml"

// Pain013Namespace is the namespace of the generated document root.
const Pain013Namespace = "urn:iso:std:iso:20022:tech:xsd:pain.013.001.11"

// Pain013Document is the read model of a generated pain.013 message. It covers
// only the elements the generator emits.
type Pain013Document struct {
	XMLName xml.Name `xml:"Document"`
	Request struct {
		GrpHdr Pain013GroupHeader `xml:"GrpHdr"`
		PmtInf Pain013PaymentInfo `xml:"PmtInf"`
	} `xml:"CdtrPmtActvtnReq"`
}

// Pain013GroupHeader is the GrpHdr block.
type Pain013GroupHeader struct {
	MsgID    string `xml:"MsgId"`
	CreDtTm  string `xml:"CreDtTm"`
	NbOfTxs  string `xml:"NbOfTxs"`
	InitgPty struct {
		Nm string `xml:"Nm"`
	} `xml:"InitgPty"`
}

// Pain013PaymentInfo is the single PmtInf block.
type Pain013PaymentInfo struct {
	PmtInfID     string               `xml:"PmtInfId"`
	PmtMtd       string               `xml:"PmtMtd"`
	Transactions []Pain013Transaction `xml:"CdtTrfTxInf"`
}

// Pain013Transaction is one CdtTrfTxInf block.
type Pain013Transaction struct {
	PmtID struct {
		InstrID    string `xml:"InstrId"`
		EndToEndID string `xml:"EndToEndId"`
	} `xml:"PmtId"`
	PmtTpInf *struct {
		CtgyPurp struct {
			Cd string `xml:"Cd"`
		} `xml:"CtgyPurp"`
	} `xml:"PmtTpInf"`
	Amt struct {
		InstdAmt Pain013Amount `xml:"InstdAmt"`
	} `xml:"Amt"`
	ChrgBr  string `xml:"ChrgBr"`
	CdtrAgt *struct {
		FinInstnID struct {
			BICFI string `xml:"BICFI"`
		} `xml:"FinInstnId"`
	} `xml:"CdtrAgt"`
	Cdtr struct {
		Nm      string `xml:"Nm"`
		PstlAdr *struct {
			Ctry    string   `xml:"Ctry"`
			AdrLine []string `xml:"AdrLine"`
		} `xml:"PstlAdr"`
	} `xml:"Cdtr"`
	CdtrAcct struct {
		ID struct {
			IBAN string `xml:"IBAN"`
			Othr struct {
				ID string `xml:"Id"`
			} `xml:"Othr"`
		} `xml:"Id"`
	} `xml:"CdtrAcct"`
	RmtInf *struct {
		Ustrd string `xml:"Ustrd"`
	} `xml:"RmtInf"`
}

// Pain013Amount is an amount with its currency attribute, kept as text.
type Pain013Amount struct {
	Value string `xml:",chardata"`
	Ccy   string `xml:"Ccy,attr"`
}

// Creditor returns the creditor party as carried by the message.
func (t Pain013Transaction) Creditor() Party {
	p := Party{
		Name:    t.Cdtr.Nm,
		IBAN:    t.CdtrAcct.ID.IBAN,
		OtherID: t.CdtrAcct.ID.Othr.ID,
	}
	if t.CdtrAgt != nil {
		p.BIC = t.CdtrAgt.FinInstnID.BICFI
	}
	if t.Cdtr.PstlAdr != nil {
		p.Country = t.Cdtr.PstlAdr.Ctry
		if len(t.Cdtr.PstlAdr.AdrLine) > 0 {
			p.AddressLine1 = t.Cdtr.PstlAdr.AdrLine[0]
		}
		if len(t.Cdtr.PstlAdr.AdrLine) > 1 {
			p.AddressLine2 = t.Cdtr.PstlAdr.AdrLine[1]
		}
	}
	return p
}
