package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

func samplePeriod() Period {
	return Period{
		From: core.NewDate(2024, 1, 1),
		To:   core.NewDate(2024, 1, 31),
	}
}

func sampleRecords() []Record {
	return []Record{
		{
			ID:          1,
			Date:        core.NewDate(2024, 1, 5),
			Kind:        core.Income,
			Amount:      core.Money{Units: 2000},
			Category:    "Salary",
			Description: "January salary",
			CreatedAt:   time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Date:        core.NewDate(2024, 1, 10),
			Kind:        core.Expense,
			Amount:      core.Money{Units: 500},
			Category:    "Food",
			Description: `He said "hi"`,
			CreatedAt:   time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportCSV(t *testing.T) {
	f := NewFormatter()
	out, err := f.Export(sampleRecords(), samplePeriod(), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "transactions_01-01-2024_31-01-2024.csv", out.Filename)
	assert.Equal(t, "text/csv", out.ContentType)

	lines := strings.Split(strings.TrimRight(string(out.Payload), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Type,Amount,Category,Description", lines[0])
	assert.Equal(t, `05-01-2024,income,"2,000 FCFA","Salary","January salary"`, lines[1])
	assert.Equal(t, `10-01-2024,expense,"-500 FCFA","Food","He said ""hi"""`, lines[2])
}

func TestExportCSVEscapesCategory(t *testing.T) {
	f := NewFormatter()
	records := []Record{{
		ID:       1,
		Date:     core.NewDate(2024, 1, 5),
		Kind:     core.Expense,
		Amount:   core.Money{Units: 100},
		Category: `Food, "Drink"`,
	}}

	out, err := f.Export(records, samplePeriod(), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out.Payload), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `05-01-2024,expense,"-100 FCFA","Food, ""Drink""",""`, lines[1])

	reader := csv.NewReader(strings.NewReader(string(out.Payload)))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], 5)
	assert.Equal(t, `Food, "Drink"`, rows[1][3])
}

func TestExportCSVTruncatesDescription(t *testing.T) {
	f := &Formatter{DescriptionLimit: 10}
	records := []Record{{
		ID:          1,
		Date:        core.NewDate(2024, 1, 5),
		Kind:        core.Expense,
		Amount:      core.Money{Units: 100},
		Category:    "Misc",
		Description: strings.Repeat("a", 40),
	}}

	out, err := f.Export(records, samplePeriod(), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out.Payload), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"aaaaaaa..."`)
}

func TestExportCSVInvalidRecordPlaceholder(t *testing.T) {
	f := NewFormatter()
	records := append(sampleRecords(), Record{ID: 3, Kind: core.Kind("transfer")})

	out, err := f.Export(records, samplePeriod(), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out.Payload), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `,,,,"invalid record"`, lines[3])
}

func TestExportCSVCoercesSalvageableFields(t *testing.T) {
	f := NewFormatter()
	records := []Record{{
		ID:     1,
		Date:   core.NewDate(2024, 1, 5),
		Kind:   core.Expense,
		Amount: core.Money{Units: -10},
	}}

	out, err := f.Export(records, samplePeriod(), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out.Payload), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `05-01-2024,expense,"-0 FCFA","uncategorized",""`, lines[1])
}

func TestExportJSON(t *testing.T) {
	f := NewFormatter()
	records := append(sampleRecords(), Record{ID: 3})

	out, err := f.Export(records, samplePeriod(), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "transactions_01-01-2024_31-01-2024.json", out.Filename)
	assert.Equal(t, "application/json", out.ContentType)

	var env struct {
		ExportedAt time.Time `json:"exported_at"`
		Period     struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"period"`
		TotalCount int `json:"total_count"`
		Items      []struct {
			ID       int64  `json:"id"`
			Kind     string `json:"kind"`
			Amount   int64  `json:"amount"`
			Category string `json:"category"`
			Error    string `json:"error"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(out.Payload, &env))

	assert.False(t, env.ExportedAt.IsZero())
	assert.Equal(t, "01-01-2024", env.Period.From)
	assert.Equal(t, "31-01-2024", env.Period.To)
	assert.Equal(t, 3, env.TotalCount)
	require.Len(t, env.Items, 3)
	assert.Equal(t, "income", env.Items[0].Kind)
	assert.Equal(t, int64(2000), env.Items[0].Amount)
	assert.Equal(t, "invalid record", env.Items[2].Error)
}

func TestExportPDF(t *testing.T) {
	f := NewFormatter()
	out, err := f.Export(sampleRecords(), samplePeriod(), FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "transactions_01-01-2024_31-01-2024.pdf", out.Filename)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.True(t, strings.HasPrefix(string(out.Payload), "%PDF"))
}

func TestExportPDFManyRecordsPaginates(t *testing.T) {
	f := NewFormatter()
	records := make([]Record, 0, 120)
	for i := 0; i < 120; i++ {
		records = append(records, Record{
			ID:       int64(i + 1),
			Date:     core.NewDate(2024, 1, 1+i%28),
			Kind:     core.Expense,
			Amount:   core.Money{Units: int64(100 + i)},
			Category: "Food",
		})
	}

	out, err := f.Export(records, samplePeriod(), FormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out.Payload), "%PDF"))
}

func TestExportUnsupportedFormat(t *testing.T) {
	f := NewFormatter()
	_, err := f.Export(nil, samplePeriod(), Format("xlsx"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
