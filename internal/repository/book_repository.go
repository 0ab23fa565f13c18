package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/booksfrog/booksfrog/internal/domain"
)

// BookRepository defines persistence access for the book catalog.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetContent(ctx context.Context, id int64) ([]byte, error)
	Latest(ctx context.Context, limit int) ([]domain.Book, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Book, error)
	// AssignCategory sets the category only when none is assigned yet.
	AssignCategory(ctx context.Context, bookID, categoryID int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) error
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a Postgres-backed implementation.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (title, author, summary, content, cover, category_id, premium, total_pages)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, views, created_at`

	return r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.Summary,
		book.Content,
		book.Cover,
		book.CategoryID,
		book.Premium,
		book.TotalPages,
	).Scan(&book.ID, &book.Views, &book.CreatedAt)
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	const query = `
        UPDATE books
        SET title=$1, author=$2, summary=$3, content=$4, cover=$5, category_id=$6, premium=$7, total_pages=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		book.Title,
		book.Author,
		book.Summary,
		book.Content,
		book.Cover,
		book.CategoryID,
		book.Premium,
		book.TotalPages,
		book.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// metadata columns only; content bytes are fetched separately.
const bookColumns = `id, title, author, summary, cover, category_id, premium, views, total_pages, created_at`

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	var book domain.Book
	if err := r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id=$1`, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Summary,
		&book.Cover,
		&book.CategoryID,
		&book.Premium,
		&book.Views,
		&book.TotalPages,
		&book.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetContent(ctx context.Context, id int64) ([]byte, error) {
	var content []byte
	if err := r.pool.QueryRow(ctx, `SELECT content FROM books WHERE id=$1`, id).Scan(&content); err != nil {
		return nil, err
	}
	return content, nil
}

func (r *bookRepository) Latest(ctx context.Context, limit int) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *bookRepository) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookColumns+` FROM books WHERE category_id=$1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func scanBooks(rows pgx.Rows) ([]domain.Book, error) {
	books := []domain.Book{}
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Summary,
			&book.Cover,
			&book.CategoryID,
			&book.Premium,
			&book.Views,
			&book.TotalPages,
			&book.CreatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *bookRepository) AssignCategory(ctx context.Context, bookID, categoryID int64) (bool, error) {
	const query = `
        UPDATE books SET category_id=$2
        WHERE id=$1 AND category_id IS NULL`

	cmd, err := r.pool.Exec(ctx, query, bookID, categoryID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *bookRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE books SET views = views + 1 WHERE id=$1`, id)
	return err
}
