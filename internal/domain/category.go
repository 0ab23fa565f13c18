package domain

// Category groups books in the catalog.
type Category struct {
	ID   int64
	Name string
}
