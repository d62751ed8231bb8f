// Package export renders the feedback ledger into downloadable text encodings.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

// Supported export formats.
const (
	FormatCSV = "csv"
	FormatTXT = "txt"
)

// utf8BOM marks the CSV output as UTF-8 so spreadsheet imports keep the
// accented level names intact.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// header matches the admin view's column labels.
var header = []string{"ID", "Nível de Satisfação", "Data", "Hora"}

// Encode serializes feedbacks into the requested format. today is the calendar
// date stamped into the suggested filename.
func Encode(feedbacks []domain.Feedback, format string, today time.Time) (*domain.ExportFile, error) {
	switch format {
	case FormatCSV:
		data, err := encode(feedbacks, ';', utf8BOM)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{
			Filename:    fmt.Sprintf("feedback-%s.csv", today.Format(time.DateOnly)),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case FormatTXT:
		data, err := encode(feedbacks, '\t', nil)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{
			Filename:    fmt.Sprintf("feedback-%s.txt", today.Format(time.DateOnly)),
			ContentType: "text/plain; charset=utf-8",
			Data:        data,
		}, nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}

func encode(feedbacks []domain.Feedback, delimiter rune, prefix []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(prefix)

	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, fb := range feedbacks {
		record := []string{
			strconv.FormatInt(fb.ID, 10),
			fb.Level,
			fb.CreatedAt.Format("02/01/2006"),
			fb.CreatedAt.Format("15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	return buf.Bytes(), nil
}
