package report

import (
	"encoding/json"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/format"
)

type jsonEnvelope struct {
	ExportedAt time.Time         `json:"exported_at"`
	Period     jsonPeriod        `json:"period"`
	TotalCount int               `json:"total_count"`
	Items      []jsonTransaction `json:"transactions"`
}

type jsonPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type jsonTransaction struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Kind        string    `json:"kind"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Error       string    `json:"error,omitempty"`
}

// renderJSON wraps the records in an envelope carrying the export timestamp,
// the requested period and the total row count.
func (f *Formatter) renderJSON(records []Record, period Period) ([]byte, error) {
	env := jsonEnvelope{
		ExportedAt: time.Now().UTC(),
		Period: jsonPeriod{
			From: format.Date(period.From),
			To:   format.Date(period.To),
		},
		TotalCount: len(records),
		Items:      make([]jsonTransaction, 0, len(records)),
	}

	for _, r := range records {
		if !r.valid() {
			env.Items = append(env.Items, jsonTransaction{
				ID:    r.ID,
				Error: "invalid record",
			})
			continue
		}
		r = r.coerce()
		env.Items = append(env.Items, jsonTransaction{
			ID:          r.ID,
			Date:        format.Date(r.Date),
			Kind:        string(r.Kind),
			Amount:      r.Amount.Units,
			Category:    r.Category,
			Description: format.SanitizeDescription(r.Description, f.DescriptionLimit),
			CreatedAt:   r.CreatedAt,
		})
	}

	return json.MarshalIndent(env, "", "  ")
}
