package domain

import "time"

// TokenAccount is the per-user credit ledger row. Balance never goes negative;
// LastGrantAt is nil until the first daily grant lands.
type TokenAccount struct {
	UserID      int64
	Balance     int
	LastGrantAt *time.Time
}
