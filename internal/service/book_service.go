package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/persistence"
	"github.com/booksfrog/booksfrog/internal/repository"
	apperrors "github.com/booksfrog/booksfrog/pkg/util"
)

const (
	latestBooksKey   = "books:latest"
	latestBooksCount = 12
	latestBooksTTL   = time.Minute
)

// BookService covers catalog operations. Premium book content is the
// credit-gated action: readers pay the configured cost through the ledger
// before the bytes are returned.
type BookService struct {
	books      repository.BookRepository
	categories repository.CategoryRepository
	ledger     *LedgerService
	cache      *persistence.Redis
	logger     *zap.Logger
	readCost   int
}

// NewBookService builds the service.
func NewBookService(books repository.BookRepository, categories repository.CategoryRepository, ledger *LedgerService, cache *persistence.Redis, logger *zap.Logger, readCost int) *BookService {
	return &BookService{
		books:      books,
		categories: categories,
		ledger:     ledger,
		cache:      cache,
		logger:     logger,
		readCost:   readCost,
	}
}

// Get returns book metadata.
func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// Create stores a new book and invalidates the latest-books cache.
func (s *BookService) Create(ctx context.Context, book *domain.Book) error {
	if book.Title == "" {
		return apperrors.NewValidationError("title is mandatory", nil)
	}
	if err := s.books.Create(ctx, book); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, latestBooksKey)
	return nil
}

// Update rewrites a book and invalidates the latest-books cache.
func (s *BookService) Update(ctx context.Context, book *domain.Book) error {
	if err := s.books.Update(ctx, book); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, latestBooksKey)
	return nil
}

// Delete removes a book.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, latestBooksKey)
	return nil
}

// Latest returns the newest titles, served from the redis cache when warm.
func (s *BookService) Latest(ctx context.Context) ([]domain.Book, error) {
	if raw, ok := s.cache.GetString(ctx, latestBooksKey); ok {
		var books []domain.Book
		if err := json.Unmarshal([]byte(raw), &books); err == nil {
			return books, nil
		}
		s.logger.Warn("discarding unreadable latest-books cache entry")
	}

	books, err := s.books.Latest(ctx, latestBooksCount)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(books); err == nil {
		s.cache.SetString(ctx, latestBooksKey, string(raw), latestBooksTTL)
	}
	return books, nil
}

// ListByCategory returns books in a category.
func (s *BookService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Book, error) {
	return s.books.ListByCategory(ctx, categoryID)
}

// AssignCategory attaches a category to a book that has none yet.
func (s *BookService) AssignCategory(ctx context.Context, bookID, categoryID int64) error {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("book", map[string]any{"book_id": bookID})
		}
		return err
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"category_id": categoryID})
		}
		return err
	}

	assigned, err := s.books.AssignCategory(ctx, bookID, categoryID)
	if err != nil {
		return err
	}
	if !assigned {
		return apperrors.NewConflict("book already has a category", map[string]any{"book_id": bookID})
	}
	return nil
}

// Content returns the stored document bytes. Premium titles charge the read
// cost against the reader's ledger account first; readerID zero means
// anonymous.
func (s *BookService) Content(ctx context.Context, readerID, bookID int64) ([]byte, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"book_id": bookID})
		}
		return nil, err
	}

	if book.Premium {
		if readerID == 0 {
			return nil, apperrors.NewUnauthorized("authentication required for premium content")
		}
		if err := s.ledger.Spend(ctx, readerID, s.readCost); err != nil {
			return nil, err
		}
	}

	content, err := s.books.GetContent(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.books.IncrementViews(ctx, bookID); err != nil {
		s.logger.Warn("failed to increment views", zap.Int64("book_id", bookID), zap.Error(err))
	}
	return content, nil
}
