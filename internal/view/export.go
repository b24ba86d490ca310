package view

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tempizhere/shortdash/internal/models"
)

// ExportTimeLayout формат дат в выгрузке (yyyy-MM-dd HH:mm:ss)
const ExportTimeLayout = "2006-01-02 15:04:05"

// ExportHeader первая строка выгрузки
var ExportHeader = []string{"Original URL", "Short URL", "Created At", "Expires At", "Clicks", "Tags"}

// ExportCSV пишет ссылки в CSV. Даты выводятся в зоне loc (UTC, если loc равен nil).
// Пароли в выгрузку не попадают.
func ExportCSV(w io.Writer, records []models.LinkRecord, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, r := range records {
		expires := ""
		if r.ExpiresAt != nil {
			expires = r.ExpiresAt.In(loc).Format(ExportTimeLayout)
		}
		row := []string{
			r.OriginalURL,
			r.ShortURL,
			r.CreatedAt.In(loc).Format(ExportTimeLayout),
			expires,
			strconv.FormatInt(r.Clicks, 10),
			strings.Join(r.Tags, ", "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename возвращает имя файла выгрузки для даты now
func ExportFilename(now time.Time) string {
	return "urls-export-" + now.Format("2006-01-02") + ".csv"
}
