package report

import (
	"strings"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/format"
)

const csvHeader = "Date,Type,Amount,Category,Description"

// placeholder row emitted for a record too malformed to render.
const csvErrorRow = `,,,,"invalid record"`

// renderCSV writes one row per record. Expense amounts carry a minus sign,
// dates are DD-MM-YYYY, and descriptions are sanitized, truncated and
// quote-escaped (internal quotes doubled).
func (f *Formatter) renderCSV(records []Record) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, r := range records {
		if !r.valid() {
			b.WriteString(csvErrorRow)
			b.WriteByte('\n')
			continue
		}
		r = r.coerce()

		desc := format.SanitizeDescription(r.Description, f.DescriptionLimit)

		b.WriteString(format.Date(r.Date))
		b.WriteByte(',')
		b.WriteString(string(r.Kind))
		b.WriteByte(',')
		// amounts, categories and descriptions may contain commas or
		// quotes, so those fields are always quoted
		writeQuoted(&b, format.SignedAmount(r.Amount, r.Kind))
		b.WriteByte(',')
		writeQuoted(&b, r.Category)
		b.WriteByte(',')
		writeQuoted(&b, desc)
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// writeQuoted wraps a field in quotes, doubling internal quotes.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}
