package domain

import "time"

// Favorite links a user to a bookmarked book.
type Favorite struct {
	ID        int64
	UserID    int64
	BookID    int64
	CreatedAt time.Time
}

// FavoriteDetail is a favorite joined with the book it points at.
type FavoriteDetail struct {
	BookID     int64
	Title      string
	Author     string
	Summary    string
	CategoryID *int64
	Views      int
}
