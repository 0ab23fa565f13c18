package dto

import "github.com/booksfrog/booksfrog/internal/domain"

// FavoriteIDResponse holds a bookmarked book id.
type FavoriteIDResponse struct {
	BookID int64 `json:"book_id"`
}

// FavoriteDetailResponse is a bookmark joined with book metadata.
type FavoriteDetailResponse struct {
	BookID     int64  `json:"book_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Summary    string `json:"summary"`
	CategoryID *int64 `json:"category_id,omitempty"`
	Views      int    `json:"views"`
}

// FromFavoriteIDs maps bookmarked book ids.
func FromFavoriteIDs(ids []int64) []FavoriteIDResponse {
	out := make([]FavoriteIDResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, FavoriteIDResponse{BookID: id})
	}
	return out
}

// FromFavoriteDetails maps bookmark details.
func FromFavoriteDetails(details []domain.FavoriteDetail) []FavoriteDetailResponse {
	out := make([]FavoriteDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, FavoriteDetailResponse{
			BookID:     d.BookID,
			Title:      d.Title,
			Author:     d.Author,
			Summary:    d.Summary,
			CategoryID: d.CategoryID,
			Views:      d.Views,
		})
	}
	return out
}
