package demo

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/services"
)

//go:embed assets/books.csv
var sampleBooks []byte

// SampleCSV returns the embedded sample catalog.
func SampleCSV() []byte {
	return bytes.Clone(sampleBooks)
}

// Seed submits the sample books through the regular submission path.
func Seed(submitter importers.Submitter) (importers.ImportResult, error) {
	result, err := importers.NewPipeline(submitter).ImportCSV(bytes.NewReader(sampleBooks), services.Origin{
		RequestID: "demo-seed",
		UserAgent: "demo",
	})
	if err != nil {
		return result, fmt.Errorf("seed demo catalog: %w", err)
	}
	return result, nil
}
