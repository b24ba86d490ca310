package view

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/shortdash/internal/models"
)

func TestExportCSV_SingleRecord(t *testing.T) {
	r := models.LinkRecord{
		ID:          "1",
		OriginalURL: "https://example.com/product",
		ShortURL:    "http://sho.rt/abc",
		CreatedAt:   time.Date(2024, 1, 15, 9, 5, 3, 0, time.UTC),
		Tags:        []string{"demo", "product", "sale"},
		Clicks:      42,
		Password:    "secret",
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []models.LinkRecord{r}, nil))

	expected := "Original URL,Short URL,Created At,Expires At,Clicks,Tags\n" +
		"https://example.com/product,http://sho.rt/abc,2024-01-15 09:05:03,,42,\"demo, product, sale\"\n"
	assert.Equal(t, expected, buf.String())
	assert.NotContains(t, buf.String(), "secret")

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1][3])
	assert.Equal(t, "demo, product, sale", rows[1][5])
}

func TestExportCSV_RoundTrip(t *testing.T) {
	records := ComputeView(sampleRecords(), queryWith(func(q *Query) {
		q.Filter.ShowPrivate = false
	}))

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, records, time.UTC))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, ExportHeader, rows[0])

	for i, r := range records {
		row := rows[i+1]
		assert.Equal(t, r.OriginalURL, row[0])
		assert.Equal(t, r.ShortURL, row[1])
		assert.Equal(t, r.CreatedAt.Format(ExportTimeLayout), row[2])
		if r.ExpiresAt != nil {
			assert.Equal(t, r.ExpiresAt.Format(ExportTimeLayout), row[3])
		} else {
			assert.Empty(t, row[3])
		}
		assert.Equal(t, strings.Join(r.Tags, ", "), row[5])
	}
}

func TestExportCSV_Reproducible(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, ExportCSV(&first, sampleRecords(), time.UTC))
	require.NoError(t, ExportCSV(&second, sampleRecords(), time.UTC))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestExportCSV_Location(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	r := link("1", "https://example.com", 1, time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []models.LinkRecord{r}, loc))
	assert.Contains(t, buf.String(), "2024-01-16 01:30:00")
}

func TestExportCSV_OnlyHeaderForEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, nil, nil))
	assert.Equal(t, "Original URL,Short URL,Created At,Expires At,Clicks,Tags\n", buf.String())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "urls-export-2024-03-09.csv", ExportFilename(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)))
}
