package urlstate_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoi/internal/invoice"
	"github.com/MrJamesThe3rd/invoi/internal/urlstate"
)

func defaults() invoice.Invoice {
	return invoice.Default(time.Date(2026, 1, 5, 12, 0, 0, 0, time.Local))
}

func TestEncode(t *testing.T) {
	type testCase struct {
		name    string
		edit    func(inv *invoice.Invoice)
		current url.Values
		want    url.Values
	}

	tests := []testCase{
		{
			name: "Defaults Encode Nothing",
			edit: func(*invoice.Invoice) {},
			want: url.Values{},
		},
		{
			name: "Changed Number",
			edit: func(inv *invoice.Invoice) { inv.InvoiceNumber = "INV-777" },
			want: url.Values{"invoiceNumber": {"INV-777"}},
		},
		{
			name: "VAT Rate",
			edit: func(inv *invoice.Invoice) { inv.VATRate = 20 },
			want: url.Values{"vatRate": {"20"}},
		},
		{
			name: "Emptied Field Is Removed",
			edit: func(inv *invoice.Invoice) { inv.InvoiceNumber = "" },
			current: url.Values{
				"invoiceNumber": {"INV-5"},
			},
			want: url.Values{},
		},
		{
			name: "Back To Default Is Removed",
			edit: func(*invoice.Invoice) {},
			current: url.Values{
				"currency": {"EUR"},
				"toName":   {"Acme"},
			},
			want: url.Values{},
		},
		{
			name: "Foreign Params Preserved",
			edit: func(inv *invoice.Invoice) { inv.FromName = "Jane Doe" },
			current: url.Values{
				"print": {"true"},
			},
			want: url.Values{
				"print":    {"true"},
				"fromName": {"Jane Doe"},
			},
		},
		{
			name: "Line Items Never Encoded",
			edit: func(inv *invoice.Invoice) {
				inv.LineItems = append(inv.LineItems, invoice.LineItem{ID: "x", Quantity: 2, Rate: 9})
			},
			want: url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := defaults()
			tt.edit(&inv)

			got := urlstate.Encode(inv, defaults(), tt.current)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_DoesNotMutateInput(t *testing.T) {
	current := url.Values{"print": {"true"}, "toName": {"Old"}}

	inv := defaults()
	inv.ToName = "New"

	_ = urlstate.Encode(inv, defaults(), current)

	assert.Equal(t, url.Values{"print": {"true"}, "toName": {"Old"}}, current)
}

func TestDecode(t *testing.T) {
	type testCase struct {
		name   string
		query  string
		verify func(t *testing.T, inv invoice.Invoice)
	}

	tests := []testCase{
		{
			name:  "Scalar Override",
			query: "invoiceNumber=INV-777&toName=Acme%20Ltd",
			verify: func(t *testing.T, inv invoice.Invoice) {
				assert.Equal(t, "INV-777", inv.InvoiceNumber)
				assert.Equal(t, "Acme Ltd", inv.ToName)
			},
		},
		{
			name:  "Numeric",
			query: "vatRate=7.5",
			verify: func(t *testing.T, inv invoice.Invoice) {
				assert.Equal(t, 7.5, inv.VATRate)
			},
		},
		{
			name:  "Numeric Parse Failure",
			query: "vatRate=lots",
			verify: func(t *testing.T, inv invoice.Invoice) {
				assert.Zero(t, inv.VATRate)
			},
		},
		{
			name:  "Unknown And Line Items Ignored",
			query: "print=true&lineItems=%5B%5D&id=1",
			verify: func(t *testing.T, inv invoice.Invoice) {
				assert.Equal(t, defaults().InvoiceNumber, inv.InvoiceNumber)
				assert.Len(t, inv.LineItems, 1)
			},
		},
		{
			name:  "Unsupported Currency Kept",
			query: "currency=ZZZ",
			verify: func(t *testing.T, inv invoice.Invoice) {
				assert.Equal(t, "ZZZ", inv.Currency)
			},
		},
		{
			name:  "First Value Wins",
			query: "toName=A&toName=B",
			verify: func(t *testing.T, inv invoice.Invoice) {
				assert.Equal(t, "A", inv.ToName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			base := defaults()
			got := urlstate.Decode(params, base)

			assert.Equal(t, base.LineItems, got.LineItems)
			tt.verify(t, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inv := defaults()
	inv.InvoiceNumber = "INV-777"
	inv.FromName = "Jane & Sons"
	inv.FromAddress = "1 Main St\nSpringfield"
	inv.BankSwift = "DEUTDEFF"
	inv.Currency = "EUR"
	inv.VATRate = 19
	inv.DueDate = "2026-02-05"

	q := urlstate.Encode(inv, defaults(), nil)

	// Travel through a real link.
	parsed, err := url.Parse(urlstate.ShareURL("https://invoi.xyz/", q))
	require.NoError(t, err)

	got := urlstate.Decode(parsed.Query(), defaults())

	for _, f := range invoice.Fields {
		assert.Equal(t, inv.Get(f), got.Get(f), f)
	}
}

func TestParse(t *testing.T) {
	o := urlstate.Parse(url.Values{"toName": {"Acme"}, "print": {"true"}, "empty": {}})

	assert.Equal(t, 1, o.Len())
}

func TestShareURL(t *testing.T) {
	assert.Equal(t, "https://invoi.xyz/", urlstate.ShareURL("https://invoi.xyz/", url.Values{}))
	assert.Equal(t,
		"https://invoi.xyz/?invoiceNumber=INV-777",
		urlstate.ShareURL("https://invoi.xyz/", url.Values{"invoiceNumber": {"INV-777"}}),
	)
	assert.Equal(t,
		"https://invoi.xyz/?toName=A",
		urlstate.ShareURL("https://invoi.xyz/?stale=1", url.Values{"toName": {"A"}}),
	)
}
