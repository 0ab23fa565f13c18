package dto

import "github.com/booksfrog/booksfrog/internal/domain"

// CategoryRequest payload for creating and renaming categories.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromCategory maps the domain model.
func FromCategory(category *domain.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name}
}

// FromCategories maps a slice of categories.
func FromCategories(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, FromCategory(&categories[i]))
	}
	return out
}
