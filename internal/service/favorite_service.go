package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/repository"
	apperrors "github.com/booksfrog/booksfrog/pkg/util"
)

// FavoriteService covers bookmark operations.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	users     repository.UserRepository
	books     repository.BookRepository
}

// NewFavoriteService builds the service.
func NewFavoriteService(favorites repository.FavoriteRepository, users repository.UserRepository, books repository.BookRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, users: users, books: books}
}

// Add bookmarks a book for a user.
func (s *FavoriteService) Add(ctx context.Context, userID, bookID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("book", map[string]any{"book_id": bookID})
		}
		return err
	}

	exists, err := s.favorites.Exists(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewConflict("book is already in favorites", nil)
	}

	return s.favorites.Create(ctx, &domain.Favorite{UserID: userID, BookID: bookID})
}

// Remove drops the bookmark.
func (s *FavoriteService) Remove(ctx context.Context, userID, bookID int64) error {
	err := s.favorites.Delete(ctx, userID, bookID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("favorite", nil)
	}
	return err
}

// BookIDs lists the bookmarked book ids for a user.
func (s *FavoriteService) BookIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.favorites.ListBookIDs(ctx, userID)
}

// Details lists bookmarked books with their metadata.
func (s *FavoriteService) Details(ctx context.Context, userID int64) ([]domain.FavoriteDetail, error) {
	return s.favorites.ListDetails(ctx, userID)
}
