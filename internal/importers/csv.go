package importers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/bookshelf/internal/services"
)

// ErrMissingHeader is returned when a required column is absent.
var ErrMissingHeader = errors.New("missing required header")

var requiredHeaders = []string{"title", "author", "genre"}

// Record is one parsed data row and the file line it starts on.
type Record struct {
	Line int
	Form services.BookForm
}

// LineError is a problem tied to a file line.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("Line %d: %v", e.Line, e.Err)
}

// ParseBooksCSV parses a CSV with a title,author,genre header. Column order
// is free and extra columns are ignored. Malformed records are reported in the
// returned line errors and skipped.
func ParseBooksCSV(r io.Reader) ([]Record, []LineError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: empty file", ErrMissingHeader)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingHeader, h)
		}
	}

	var records []Record
	var lineErrors []LineError

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, nil, fmt.Errorf("failed to read csv: %w", err)
			}
			lineErrors = append(lineErrors, LineError{Line: parseErr.StartLine, Err: parseErr.Err})
			continue
		}

		line, _ := reader.FieldPos(0)
		records = append(records, Record{
			Line: line,
			Form: services.BookForm{
				Title:  csvValue(record, headerIndex, "title"),
				Author: csvValue(record, headerIndex, "author"),
				Genre:  csvValue(record, headerIndex, "genre"),
			},
		})
	}

	return records, lineErrors, nil
}

func csvValue(record []string, headerIndex map[string]int, key string) string {
	idx, ok := headerIndex[key]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
