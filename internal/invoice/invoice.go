package invoice

import (
	"time"

	"github.com/google/uuid"
)

// DefaultNumber is the invoice number of a fresh document.
const DefaultNumber = "INV-0001"

// LineItem is a single billable row of an invoice.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Amount is the derived line total. It is never persisted.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.Rate
}

// Invoice is the whole editable document.
type Invoice struct {
	FromName    string `json:"fromName"`
	FromEmail   string `json:"fromEmail"`
	FromAddress string `json:"fromAddress"`
	FromPhone   string `json:"fromPhone"`

	ToName    string `json:"toName"`
	ToEmail   string `json:"toEmail"`
	ToAddress string `json:"toAddress"`

	BankBeneficiary string `json:"bankBeneficiary"`
	BankName        string `json:"bankName"`
	BankAccount     string `json:"bankAccount"`
	BankSwift       string `json:"bankSwift"`

	InvoiceNumber string  `json:"invoiceNumber"`
	IssueDate     string  `json:"issueDate"` // YYYY-MM-DD or empty
	DueDate       string  `json:"dueDate"`   // YYYY-MM-DD or empty
	Currency      string  `json:"currency"`
	VATRate       float64 `json:"vatRate"` // percentage points

	LineItems []LineItem `json:"lineItems"`
}

// NewLineItem returns a blank row with a fresh id.
func NewLineItem() LineItem {
	return LineItem{
		ID:       uuid.NewString(),
		Quantity: 1,
	}
}

// Default returns a fresh document dated on the local calendar day of now.
func Default(now time.Time) Invoice {
	return Invoice{
		InvoiceNumber: DefaultNumber,
		IssueDate:     now.Local().Format(time.DateOnly),
		Currency:      DefaultCurrency,
		LineItems:     []LineItem{NewLineItem()},
	}
}

// Subtotal sums quantity * rate over all line items.
func (inv Invoice) Subtotal() float64 {
	var sum float64
	for _, item := range inv.LineItems {
		sum += item.Amount()
	}

	return sum
}

// Total equals the subtotal; the VAT rate is informational only.
func (inv Invoice) Total() float64 {
	return inv.Subtotal()
}

// Clone returns a copy that shares no line-item storage with inv.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.LineItems != nil {
		out.LineItems = make([]LineItem, len(inv.LineItems))
		copy(out.LineItems, inv.LineItems)
	}

	return out
}

// Item returns the line item with the given id.
func (inv Invoice) Item(id string) (LineItem, bool) {
	for _, item := range inv.LineItems {
		if item.ID == id {
			return item, true
		}
	}

	return LineItem{}, false
}

// HasBankDetails reports whether any payment detail is filled in.
func (inv Invoice) HasBankDetails() bool {
	return inv.BankBeneficiary != "" || inv.BankName != "" || inv.BankAccount != "" || inv.BankSwift != ""
}
