// Package importers reads books from external formats and feeds them through
// the same submission path as the web form.
//
// The flow is:
//
//	CSV → ParseBooksCSV → []Record → Pipeline → SubmissionService → Catalog
//
// Records that fail parsing or validation are skipped and reported by the
// file line they start on; they never stop an import.
package importers
