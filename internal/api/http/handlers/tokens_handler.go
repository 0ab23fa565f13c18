package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/booksfrog/booksfrog/internal/api/dto"
	"github.com/booksfrog/booksfrog/internal/auth"
	"github.com/booksfrog/booksfrog/internal/service"
)

// TokensHandler exposes the credit ledger endpoints.
type TokensHandler struct {
	ledger *service.LedgerService
}

// NewTokensHandler constructs handler.
func NewTokensHandler(ledger *service.LedgerService) *TokensHandler {
	return &TokensHandler{ledger: ledger}
}

// Grant handles POST /api/tokens/grant. Idempotent inside the 24h window.
func (h *TokensHandler) Grant(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	granted, err := h.ledger.GrantDaily(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user_id": identity.UserID,
			"granted": granted,
		},
	})
}

// TimeLeft handles GET /api/tokens/:userId/timeleft.
func (h *TokensHandler) TimeLeft(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	remaining, err := h.ledger.TimeUntilNextGrant(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.TimeLeftResponse{
			UserID:            userID,
			TimeLeftInSeconds: int64(remaining.Seconds()),
		},
	})
}

// Credit handles POST /api/tokens/amount, topping up the caller's account.
func (h *TokensHandler) Credit(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.ledger.Credit(c.Context(), identity.UserID, req.Amount); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user_id":      identity.UserID,
			"amount_added": req.Amount,
		},
	})
}

// Spend handles POST /api/tokens/spend, deducting from the caller's account.
func (h *TokensHandler) Spend(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.ledger.Spend(c.Context(), identity.UserID, req.Amount); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user_id":      identity.UserID,
			"amount_spent": req.Amount,
		},
	})
}

// Balance handles GET /api/tokens/:userId.
func (h *TokensHandler) Balance(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	balance, err := h.ledger.BalanceOf(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.BalanceResponse{UserID: userID, Balance: balance},
	})
}
