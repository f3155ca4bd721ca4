// Package report renders transaction exports in CSV, JSON and PDF form.
// All three paths share the formatting rules in internal/format so amounts
// and dates look identical regardless of output kind.
package report

import (
	"fmt"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/format"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

var ErrUnsupportedFormat = fmt.Errorf("unsupported export format")

// DefaultDescriptionLimit caps description fields in exports.
const DefaultDescriptionLimit = 60

// Period is the requested date range, encoded into the filename.
type Period struct {
	From core.Date
	To   core.Date
}

// Record is one export row. Records arrive already coerced at the storage
// boundary, but the formatter still defends against bad fields so a single
// malformed record never aborts the batch.
type Record struct {
	ID          int64
	Date        core.Date
	Kind        core.Kind
	Amount      core.Money
	Category    string
	Description string
	CreatedAt   time.Time
}

// Export is a rendered payload plus delivery metadata.
type Export struct {
	Payload     []byte
	Filename    string
	ContentType string
}

// Formatter renders exports. DescriptionLimit is the caller-specified
// maximum description length (ellipsis-truncated).
type Formatter struct {
	DescriptionLimit int
}

func NewFormatter() *Formatter {
	return &Formatter{DescriptionLimit: DefaultDescriptionLimit}
}

// Export renders the records in the requested format.
func (f *Formatter) Export(records []Record, period Period, kind Format) (Export, error) {
	switch kind {
	case FormatCSV:
		return Export{
			Payload:     f.renderCSV(records),
			Filename:    filename(period, "csv"),
			ContentType: "text/csv",
		}, nil
	case FormatJSON:
		payload, err := f.renderJSON(records, period)
		if err != nil {
			return Export{}, fmt.Errorf("render json export: %w", err)
		}
		return Export{
			Payload:     payload,
			Filename:    filename(period, "json"),
			ContentType: "application/json",
		}, nil
	case FormatPDF:
		payload, err := f.renderPDF(records, period)
		if err != nil {
			return Export{}, fmt.Errorf("render pdf export: %w", err)
		}
		return Export{
			Payload:     payload,
			Filename:    filename(period, "pdf"),
			ContentType: "application/pdf",
		}, nil
	default:
		return Export{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}
}

// valid reports whether a record is well-formed enough to render; anything
// else becomes a placeholder row.
func (r Record) valid() bool {
	return r.Kind == core.Income || r.Kind == core.Expense
}

// coerce fills defaults for salvageable fields.
func (r Record) coerce() Record {
	if r.Amount.Units < 0 {
		r.Amount.Units = 0
	}
	if r.Category == "" {
		r.Category = "uncategorized"
	}
	return r
}

func filename(p Period, ext string) string {
	return fmt.Sprintf("transactions_%s_%s.%s", format.Date(p.From), format.Date(p.To), ext)
}
