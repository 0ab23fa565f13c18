package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/booksfrog/booksfrog/internal/api/dto"
	"github.com/booksfrog/booksfrog/internal/auth"
	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/service"
)

// BooksHandler exposes catalog endpoints.
type BooksHandler struct {
	books *service.BookService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(books *service.BookService) *BooksHandler {
	return &BooksHandler{books: books}
}

// Get handles GET /api/books/:id.
func (h *BooksHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	book, err := h.books.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromBook(book)})
}

// Create handles POST /api/books.
func (h *BooksHandler) Create(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	book := bookFromRequest(req)
	if err := h.books.Create(c.Context(), book); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromBook(book)})
}

// Update handles PUT /api/books/:id.
func (h *BooksHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	book := bookFromRequest(req)
	book.ID = id
	if err := h.books.Update(c.Context(), book); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromBook(book)})
}

// Delete handles DELETE /api/books/:id.
func (h *BooksHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.books.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Latest handles GET /api/books/latest.
func (h *BooksHandler) Latest(c *fiber.Ctx) error {
	books, err := h.books.Latest(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromBooks(books)})
}

// AssignCategory handles POST /api/books/:id/assign-category.
func (h *BooksHandler) AssignCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		CategoryID int64 `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.CategoryID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "category_id required")
	}

	if err := h.books.AssignCategory(c.Context(), id, req.CategoryID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"assigned": true}})
}

// Content handles GET /api/books/:id/content. Premium titles charge the
// configured read cost against the caller's ledger account.
func (h *BooksHandler) Content(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var readerID int64
	if identity, ok := auth.IdentityFromContext(c); ok {
		readerID = identity.UserID
	}

	content, err := h.books.Content(c.Context(), readerID, id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(content)
}

func bookFromRequest(req dto.BookRequest) *domain.Book {
	return &domain.Book{
		Title:      req.Title,
		Author:     req.Author,
		Summary:    req.Summary,
		Content:    req.Content,
		Cover:      req.Cover,
		CategoryID: req.CategoryID,
		Premium:    req.Premium,
		TotalPages: req.TotalPages,
	}
}
