package importers

import (
	"io"
	"sort"

	"github.com/mrlokans/bookshelf/internal/services"
)

// Submitter accepts batches of book forms.
type Submitter interface {
	SubmitAll(forms []services.BookForm, origin services.Origin) services.BatchResult
}

// ImportResult summarizes one import.
type ImportResult struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// Pipeline parses CSV input and submits every row.
type Pipeline struct {
	submitter Submitter
}

func NewPipeline(submitter Submitter) *Pipeline {
	return &Pipeline{submitter: submitter}
}

// ImportCSV parses r and submits the rows in file order. Errors name the
// file line each rejected record starts on and are ordered by line.
func (p *Pipeline) ImportCSV(r io.Reader, origin services.Origin) (ImportResult, error) {
	records, lineErrors, err := ParseBooksCSV(r)
	if err != nil {
		return ImportResult{}, err
	}

	forms := make([]services.BookForm, len(records))
	for i, record := range records {
		forms[i] = record.Form
	}
	batch := p.submitter.SubmitAll(forms, origin)

	failures := append([]LineError(nil), lineErrors...)
	for _, rowErr := range batch.Errors {
		failures = append(failures, LineError{Line: records[rowErr.Row-1].Line, Err: rowErr.Err})
	}
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Line < failures[j].Line
	})

	result := ImportResult{
		Accepted: batch.Accepted,
		Rejected: batch.Rejected + len(lineErrors),
	}
	for _, failure := range failures {
		result.Errors = append(result.Errors, failure.Error())
	}
	return result, nil
}
