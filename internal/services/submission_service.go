package services

import (
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookForm is the raw add-book input: three free-text fields.
type BookForm struct {
	Title  string `form:"title" json:"title" validate:"required"`
	Author string `form:"author" json:"author" validate:"required"`
	Genre  string `form:"genre" json:"genre" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f BookForm) Trimmed() BookForm {
	return BookForm{
		Title:  strings.TrimSpace(f.Title),
		Author: strings.TrimSpace(f.Author),
		Genre:  strings.TrimSpace(f.Genre),
	}
}

// Origin describes where a submission came from, for the audit trail.
type Origin struct {
	RequestID string
	IPAddress string
	UserAgent string
}

// BookAdder is the write side of the catalog.
type BookAdder interface {
	AddBook(book entities.Book)
}

// Refresher is a presentation layer that re-reads the catalog when told.
type Refresher interface {
	NotifyDataSetChanged()
}

// SubmissionAuditor records the outcome of each submission.
type SubmissionAuditor interface {
	LogSubmission(origin Origin, book entities.Book, err error)
}

// SubmissionService validates add-book input, adds accepted books to the
// catalog and then refreshes the presentation layer.
type SubmissionService struct {
	store      BookAdder
	validator  *Validator
	refreshers []Refresher
	auditor    SubmissionAuditor
}

func NewSubmissionService(store BookAdder, refreshers ...Refresher) *SubmissionService {
	return &SubmissionService{
		store:      store,
		validator:  NewValidator(),
		refreshers: refreshers,
	}
}

// SetAuditor enables audit logging of submissions.
func (s *SubmissionService) SetAuditor(auditor SubmissionAuditor) {
	s.auditor = auditor
}

// Submit adds the book described by form. When any field is blank after
// trimming nothing is added, no refresh happens, and a *ValidationError is
// returned.
func (s *SubmissionService) Submit(form BookForm, origin Origin) (entities.Book, error) {
	form = form.Trimmed()
	book := entities.NewBook(form.Title, form.Author, form.Genre)

	if err := s.validator.Validate(form); err != nil {
		s.audit(origin, book, err)
		return entities.Book{}, err
	}

	s.store.AddBook(book)
	for _, r := range s.refreshers {
		r.NotifyDataSetChanged()
	}

	s.audit(origin, book, nil)
	return book, nil
}

// RowError is a rejected row from a batch submission.
type RowError struct {
	Row int
	Err error
}

// BatchResult summarizes SubmitAll.
type BatchResult struct {
	Accepted int
	Rejected int
	Errors   []RowError
}

// SubmitAll submits each form in order. Invalid rows are skipped and reported;
// they do not stop the batch. Rows are numbered from 1.
func (s *SubmissionService) SubmitAll(forms []BookForm, origin Origin) BatchResult {
	var result BatchResult
	for i, form := range forms {
		if _, err := s.Submit(form, origin); err != nil {
			result.Rejected++
			result.Errors = append(result.Errors, RowError{Row: i + 1, Err: err})
			continue
		}
		result.Accepted++
	}
	return result
}

func (s *SubmissionService) audit(origin Origin, book entities.Book, err error) {
	if s.auditor != nil {
		s.auditor.LogSubmission(origin, book, err)
	}
}
