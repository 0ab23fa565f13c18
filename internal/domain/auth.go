package domain

// Identity describes the authenticated caller for the duration of a request.
// It is resolved once by the auth middleware and never persisted.
type Identity struct {
	UserID   int64
	Username string
	Premium  bool
}
