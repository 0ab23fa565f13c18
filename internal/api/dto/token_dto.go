package dto

// AmountRequest payload for credit and spend endpoints.
type AmountRequest struct {
	Amount int `json:"amount"`
}

// BalanceResponse reports the current ledger balance.
type BalanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int   `json:"balance"`
}

// TimeLeftResponse reports seconds until the next daily grant is due.
type TimeLeftResponse struct {
	UserID            int64 `json:"user_id"`
	TimeLeftInSeconds int64 `json:"time_left_in_seconds"`
}
