package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type countingRefresher struct {
	calls int
	// seen is the catalog size observed at each refresh
	seen   []int
	source catalog.Reader
}

func (r *countingRefresher) NotifyDataSetChanged() {
	r.calls++
	r.seen = append(r.seen, r.source.Len())
}

type recordingAuditor struct {
	books []entities.Book
	errs  []error
}

func (a *recordingAuditor) LogSubmission(_ Origin, book entities.Book, err error) {
	a.books = append(a.books, book)
	a.errs = append(a.errs, err)
}

func TestSubmissionService_Submit(t *testing.T) {
	t.Run("valid form adds book then refreshes", func(t *testing.T) {
		c := catalog.New()
		refresher := &countingRefresher{source: c}
		service := NewSubmissionService(c, refresher)

		book, err := service.Submit(BookForm{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"}, Origin{})
		require.NoError(t, err)

		assert.Equal(t, entities.NewBook("Dune", "Frank Herbert", "Sci-Fi"), book)
		assert.Equal(t, []entities.Book{book}, c.Books())
		assert.Equal(t, 1, refresher.calls)
		assert.Equal(t, []int{1}, refresher.seen, "refresh must run after the add")
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		c := catalog.New()
		service := NewSubmissionService(c)

		book, err := service.Submit(BookForm{Title: "  Dune ", Author: "\tFrank Herbert", Genre: "Sci-Fi\n"}, Origin{})
		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "Frank Herbert", book.Author)
		assert.Equal(t, "Sci-Fi", book.Genre)
	})

	tests := []struct {
		name   string
		form   BookForm
		fields []string
	}{
		{"empty title", BookForm{Author: "Frank Herbert", Genre: "Sci-Fi"}, []string{"title"}},
		{"blank author", BookForm{Title: "Dune", Author: "   ", Genre: "Sci-Fi"}, []string{"author"}},
		{"empty genre", BookForm{Title: "Dune", Author: "Frank Herbert"}, []string{"genre"}},
		{"all empty", BookForm{}, []string{"title", "author", "genre"}},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			c := catalog.New()
			refresher := &countingRefresher{source: c}
			service := NewSubmissionService(c, refresher)

			_, err := service.Submit(tt.form, Origin{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSubmission)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			for _, field := range tt.fields {
				assert.Equal(t, "is required", validationErr.Fields[field])
			}
			assert.Len(t, validationErr.Fields, len(tt.fields))

			assert.Zero(t, c.Len())
			assert.Zero(t, refresher.calls)
		})
	}

	t.Run("accepts long fields", func(t *testing.T) {
		c := catalog.New()
		service := NewSubmissionService(c)
		long := strings.Repeat("x", 600)

		book, err := service.Submit(BookForm{Title: long, Author: strings.Repeat("a", 300), Genre: strings.Repeat("g", 200)}, Origin{})
		require.NoError(t, err)
		assert.Equal(t, long, book.Title)
		assert.Equal(t, 1, c.Len())
	})
}

func TestSubmissionService_Auditor(t *testing.T) {
	c := catalog.New()
	auditor := &recordingAuditor{}
	service := NewSubmissionService(c)
	service.SetAuditor(auditor)

	_, err := service.Submit(BookForm{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"}, Origin{})
	require.NoError(t, err)
	_, err = service.Submit(BookForm{Title: "", Author: "Nobody", Genre: "None"}, Origin{})
	require.Error(t, err)

	require.Len(t, auditor.books, 2)
	assert.NoError(t, auditor.errs[0])
	assert.ErrorIs(t, auditor.errs[1], ErrInvalidSubmission)
	assert.Equal(t, "Nobody", auditor.books[1].Author)
}

func TestSubmissionService_SubmitAll(t *testing.T) {
	c := catalog.New()
	refresher := &countingRefresher{source: c}
	service := NewSubmissionService(c, refresher)

	result := service.SubmitAll([]BookForm{
		{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"},
		{Title: "", Author: "Frank Herbert", Genre: "Sci-Fi"},
		{Title: "Foundation", Author: "Isaac Asimov", Genre: "Sci-Fi"},
	}, Origin{})

	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 1, result.Rejected)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, refresher.calls)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": "is required", "genre": "is required"}}
	assert.Equal(t, "invalid submission: genre is required, title is required", err.Error())
}
