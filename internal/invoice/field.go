package invoice

import "strconv"

// Field names a scalar invoice field. Names match the JSON and query-string keys.
type Field string

const (
	FieldFromName        Field = "fromName"
	FieldFromEmail       Field = "fromEmail"
	FieldFromAddress     Field = "fromAddress"
	FieldFromPhone       Field = "fromPhone"
	FieldToName          Field = "toName"
	FieldToEmail         Field = "toEmail"
	FieldToAddress       Field = "toAddress"
	FieldBankBeneficiary Field = "bankBeneficiary"
	FieldBankName        Field = "bankName"
	FieldBankAccount     Field = "bankAccount"
	FieldBankSwift       Field = "bankSwift"
	FieldInvoiceNumber   Field = "invoiceNumber"
	FieldIssueDate       Field = "issueDate"
	FieldDueDate         Field = "dueDate"
	FieldCurrency        Field = "currency"
	FieldVATRate         Field = "vatRate"
)

// Fields lists every scalar field in display order. Line items are not a scalar field.
var Fields = []Field{
	FieldFromName,
	FieldFromEmail,
	FieldFromAddress,
	FieldFromPhone,
	FieldToName,
	FieldToEmail,
	FieldToAddress,
	FieldBankBeneficiary,
	FieldBankName,
	FieldBankAccount,
	FieldBankSwift,
	FieldInvoiceNumber,
	FieldIssueDate,
	FieldDueDate,
	FieldCurrency,
	FieldVATRate,
}

// LookupField resolves a query or form key to a scalar field.
func LookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}

	return "", false
}

// Numeric reports whether the field holds a number rather than text.
func (f Field) Numeric() bool {
	return f == FieldVATRate
}

func (f Field) String() string { return string(f) }

// Get returns the string form of a scalar field. Numbers use their shortest decimal form.
func (inv Invoice) Get(f Field) string {
	if f == FieldVATRate {
		return FormatNumber(inv.VATRate)
	}

	if p := inv.text(f); p != nil {
		return *p
	}

	return ""
}

// With returns a copy of inv with field f set from its string form.
// Numeric fields are parsed with ParseNumber. It reports false for unknown fields.
func (inv Invoice) With(f Field, value string) (Invoice, bool) {
	out := inv.Clone()

	if f == FieldVATRate {
		out.VATRate = ParseNumber(value)
		return out, true
	}

	p := out.text(f)
	if p == nil {
		return inv, false
	}

	*p = value

	return out, true
}

func (inv *Invoice) text(f Field) *string {
	switch f {
	case FieldFromName:
		return &inv.FromName
	case FieldFromEmail:
		return &inv.FromEmail
	case FieldFromAddress:
		return &inv.FromAddress
	case FieldFromPhone:
		return &inv.FromPhone
	case FieldToName:
		return &inv.ToName
	case FieldToEmail:
		return &inv.ToEmail
	case FieldToAddress:
		return &inv.ToAddress
	case FieldBankBeneficiary:
		return &inv.BankBeneficiary
	case FieldBankName:
		return &inv.BankName
	case FieldBankAccount:
		return &inv.BankAccount
	case FieldBankSwift:
		return &inv.BankSwift
	case FieldInvoiceNumber:
		return &inv.InvoiceNumber
	case FieldIssueDate:
		return &inv.IssueDate
	case FieldDueDate:
		return &inv.DueDate
	case FieldCurrency:
		return &inv.Currency
	}

	return nil
}

// ItemField names an editable line-item column.
type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemRate        ItemField = "rate"
)

// Get returns the string form of a line-item column.
func (li LineItem) Get(f ItemField) string {
	switch f {
	case ItemDescription:
		return li.Description
	case ItemQuantity:
		return FormatNumber(li.Quantity)
	case ItemRate:
		return FormatNumber(li.Rate)
	}

	return ""
}

// With returns a copy of li with column f set from its string form.
func (li LineItem) With(f ItemField, value string) (LineItem, bool) {
	switch f {
	case ItemDescription:
		li.Description = value
	case ItemQuantity:
		li.Quantity = ParseNumber(value)
	case ItemRate:
		li.Rate = ParseNumber(value)
	default:
		return li, false
	}

	return li, true
}

// FormatNumber renders v in its shortest decimal form, e.g. 20 or 7.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
