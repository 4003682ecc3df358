package preview

import (
	"strings"

	"github.com/MrJamesThe3rd/invoi/internal/invoice"
)

const (
	companyPlaceholder = "Your Company"
	emptyPlaceholder   = "—"
)

// Detail is a labelled value such as a date or a bank field.
type Detail struct {
	Label string
	Value string
}

type Line struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// Document is the invoice prepared for display: every value formatted, every
// optional block resolved.
type Document struct {
	Title         string
	Currency      string
	FromName      string
	FromLines     []string
	InvoiceNumber string
	ToName        string
	ToLines       []string
	Dates         []Detail
	Lines         []Line
	Subtotal      string
	Total         string
	Bank          []Detail
}

func NewDocument(inv invoice.Invoice) Document {
	money := func(v float64) string {
		return invoice.FormatMoney(v, inv.Currency)
	}

	doc := Document{
		Title:         FileName(inv),
		Currency:      inv.Currency,
		FromName:      orDefault(inv.FromName, companyPlaceholder),
		FromLines:     nonEmpty(inv.FromEmail, inv.FromPhone, inv.FromAddress),
		InvoiceNumber: inv.InvoiceNumber,
		ToName:        orDefault(inv.ToName, emptyPlaceholder),
		ToLines:       nonEmpty(inv.ToEmail, inv.ToAddress),
		Lines:         make([]Line, 0, len(inv.LineItems)),
		Subtotal:      money(inv.Subtotal()),
		Total:         money(inv.Total()),
	}

	if inv.IssueDate != "" {
		doc.Dates = append(doc.Dates, Detail{Label: "Issue Date", Value: invoice.FormatDate(inv.IssueDate)})
	}

	if inv.DueDate != "" {
		doc.Dates = append(doc.Dates, Detail{Label: "Due Date", Value: invoice.FormatDate(inv.DueDate)})
	}

	for _, item := range inv.LineItems {
		doc.Lines = append(doc.Lines, Line{
			Description: orDefault(item.Description, emptyPlaceholder),
			Quantity:    invoice.FormatNumber(item.Quantity),
			Rate:        money(item.Rate),
			Amount:      money(item.Amount()),
		})
	}

	if inv.HasBankDetails() {
		for _, d := range []Detail{
			{Label: "Beneficiary", Value: inv.BankBeneficiary},
			{Label: "Bank", Value: inv.BankName},
			{Label: "IBAN", Value: inv.BankAccount},
			{Label: "SWIFT / BIC", Value: inv.BankSwift},
		} {
			if d.Value != "" {
				doc.Bank = append(doc.Bank, d)
			}
		}
	}

	return doc
}

// FileName is the document title used for exported files: the invoice number
// and sender joined with " - ", or "invoice" when both are blank.
func FileName(inv invoice.Invoice) string {
	parts := nonEmpty(strings.TrimSpace(inv.InvoiceNumber), strings.TrimSpace(inv.FromName))
	if len(parts) == 0 {
		return "invoice"
	}

	return strings.Join(parts, " - ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

func nonEmpty(values ...string) []string {
	var out []string

	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}

	return out
}

// OutputName is FileName made safe to use as a file name, with ext appended.
func OutputName(inv invoice.Invoice, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}

		return r
	}, FileName(inv))

	return name + "." + ext
}
