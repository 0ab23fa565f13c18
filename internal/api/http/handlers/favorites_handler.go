package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/booksfrog/booksfrog/internal/api/dto"
	"github.com/booksfrog/booksfrog/internal/auth"
	"github.com/booksfrog/booksfrog/internal/service"
)

// FavoritesHandler exposes bookmark endpoints scoped to the caller.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// Add handles POST /api/favorites/:bookId.
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	if err := h.favorites.Add(c.Context(), identity.UserID, bookID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"book_id": bookID}})
}

// Remove handles DELETE /api/favorites/:bookId.
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	if err := h.favorites.Remove(c.Context(), identity.UserID, bookID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// BookIDs handles GET /api/favorites/book-ids.
func (h *FavoritesHandler) BookIDs(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	ids, err := h.favorites.BookIDs(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFavoriteIDs(ids)})
}

// Details handles GET /api/favorites/full-details.
func (h *FavoritesHandler) Details(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	details, err := h.favorites.Details(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFavoriteDetails(details)})
}
