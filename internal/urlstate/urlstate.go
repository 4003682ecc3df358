// Package urlstate maps the scalar fields of an invoice to and from query parameters
// so a document can be shared as a link. Line items are never part of a link.
package urlstate

import (
	"net/url"

	"github.com/MrJamesThe3rd/invoi/internal/invoice"
)

// Encode returns current with every scalar field of inv set or removed. A field is
// set only when it differs from defaults and is neither empty nor zero. Parameters
// that are not invoice fields are kept as they are. current is not modified.
func Encode(inv, defaults invoice.Invoice, current url.Values) url.Values {
	out := make(url.Values, len(current)+len(invoice.Fields))
	for k, v := range current {
		out[k] = append([]string(nil), v...)
	}

	for _, f := range invoice.Fields {
		if omit(inv, defaults, f) {
			out.Del(string(f))
			continue
		}

		out.Set(string(f), inv.Get(f))
	}

	return out
}

func omit(inv, defaults invoice.Invoice, f invoice.Field) bool {
	if f.Numeric() {
		return inv.VATRate == 0 || inv.VATRate == defaults.VATRate
	}

	v := inv.Get(f)

	return v == "" || v == defaults.Get(f)
}

// Overrides holds the field values recovered from a link, in field order.
type Overrides struct {
	values map[invoice.Field]string
}

// Parse extracts overrides from params. Unknown parameters are ignored; a
// repeated parameter contributes its first value.
func Parse(params url.Values) Overrides {
	o := Overrides{values: make(map[invoice.Field]string)}

	for name, vals := range params {
		f, ok := invoice.LookupField(name)
		if !ok || len(vals) == 0 {
			continue
		}

		o.values[f] = vals[0]
	}

	return o
}

// Len is the number of fields the link sets.
func (o Overrides) Len() int {
	return len(o.values)
}

// Apply returns a copy of inv with the overrides on top. Line items are untouched.
func (o Overrides) Apply(inv invoice.Invoice) invoice.Invoice {
	out := inv.Clone()

	for _, f := range invoice.Fields {
		v, ok := o.values[f]
		if !ok {
			continue
		}

		out, _ = out.With(f, v)
	}

	return out
}

// Decode applies the invoice fields found in params to base.
func Decode(params url.Values, base invoice.Invoice) invoice.Invoice {
	return Parse(params).Apply(base)
}

// ShareURL joins base and the encoded query. An empty query leaves base unchanged.
func ShareURL(base string, q url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		if len(q) == 0 {
			return base
		}

		return base + "?" + q.Encode()
	}

	u.RawQuery = q.Encode()
	u.ForceQuery = false

	return u.String()
}
