package dto

import (
	"encoding/base64"

	"github.com/booksfrog/booksfrog/internal/domain"
)

// BookRequest payload for creating and updating books. Content and cover
// travel base64-encoded.
type BookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Summary    string `json:"summary"`
	Content    []byte `json:"content,omitempty"`
	Cover      []byte `json:"cover,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`
	Premium    bool   `json:"premium"`
	TotalPages *int   `json:"total_pages,omitempty"`
}

// BookResponse is the metadata view of a book; content is served separately.
type BookResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Summary    string `json:"summary"`
	CoverImage string `json:"cover_image,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`
	Premium    bool   `json:"premium"`
	Views      int    `json:"views"`
	TotalPages *int   `json:"total_pages,omitempty"`
}

// FromBook maps the domain model to its public view, rendering the cover as a
// data URI.
func FromBook(book *domain.Book) BookResponse {
	resp := BookResponse{
		ID:         book.ID,
		Title:      book.Title,
		Author:     book.Author,
		Summary:    book.Summary,
		CategoryID: book.CategoryID,
		Premium:    book.Premium,
		Views:      book.Views,
		TotalPages: book.TotalPages,
	}
	if len(book.Cover) > 0 {
		resp.CoverImage = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(book.Cover)
	}
	return resp
}

// FromBooks maps a slice of books.
func FromBooks(books []domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, FromBook(&books[i]))
	}
	return out
}
