package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/booksfrog/booksfrog/internal/domain"
)

// FavoriteRepository defines persistence access for bookmarked books.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	Exists(ctx context.Context, userID, bookID int64) (bool, error)
	Delete(ctx context.Context, userID, bookID int64) error
	ListBookIDs(ctx context.Context, userID int64) ([]int64, error)
	ListDetails(ctx context.Context, userID int64) ([]domain.FavoriteDetail, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository returns a Postgres-backed implementation.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (user_id, book_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, favorite.UserID, favorite.BookID).
		Scan(&favorite.ID, &favorite.CreatedAt)
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, bookID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id=$1 AND book_id=$2)`,
		userID, bookID).Scan(&exists)
	return exists, err
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, bookID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id=$1 AND book_id=$2`, userID, bookID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *favoriteRepository) ListBookIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT book_id FROM favorites WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *favoriteRepository) ListDetails(ctx context.Context, userID int64) ([]domain.FavoriteDetail, error) {
	const query = `
        SELECT b.id, b.title, b.author, b.summary, b.category_id, b.views
        FROM favorites f
        JOIN books b ON b.id = f.book_id
        WHERE f.user_id = $1
        ORDER BY f.created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []domain.FavoriteDetail{}
	for rows.Next() {
		var d domain.FavoriteDetail
		if err := rows.Scan(&d.BookID, &d.Title, &d.Author, &d.Summary, &d.CategoryID, &d.Views); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
