package domain

import "time"

// Book is the domain model for titles in the catalog. Content holds the raw
// uploaded document bytes; Premium marks titles whose content costs tokens.
type Book struct {
	ID         int64
	Title      string
	Author     string
	Summary    string
	Content    []byte
	Cover      []byte
	CategoryID *int64
	Premium    bool
	Views      int
	TotalPages *int
	CreatedAt  time.Time
}
