package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/booksfrog/booksfrog/internal/api/dto"
	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/service"
)

// CategoriesHandler exposes category endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
	books      *service.BookService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService, books *service.BookService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, books: books}
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategories(categories)})
}

// Get handles GET /api/categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.categories.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategory(category)})
}

// Books handles GET /api/categories/:id/books.
func (h *CategoriesHandler) Books(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	books, err := h.books.ListByCategory(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromBooks(books)})
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	category := &domain.Category{Name: req.Name}
	if err := h.categories.Create(c.Context(), category); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromCategory(category)})
}

// Update handles PUT /api/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	category := &domain.Category{ID: id, Name: req.Name}
	if err := h.categories.Update(c.Context(), category); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategory(category)})
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categories.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
