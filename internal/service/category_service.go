package service

import (
	"context"

	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/repository"
	apperrors "github.com/booksfrog/booksfrog/pkg/util"
)

// CategoryService covers catalog category operations.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Get returns the category by id.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Create stores a new category.
func (s *CategoryService) Create(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return apperrors.NewValidationError("name is mandatory", nil)
	}
	return s.categories.Create(ctx, category)
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return apperrors.NewValidationError("name is mandatory", nil)
	}
	return s.categories.Update(ctx, category)
}

// Delete removes a category; books keep existing with no category.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}
