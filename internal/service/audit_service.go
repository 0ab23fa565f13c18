package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/booksfrog/booksfrog/internal/events"
)

// AuditService records ledger and registration activity from domain events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventTokensGranted, a.handleLedgerChange)
	a.dispatcher.Subscribe(events.EventTokensSpent, a.handleLedgerChange)
	a.dispatcher.Subscribe(events.EventTokensCredited, a.handleLedgerChange)
}

func (a *AuditService) handleUserRegistered(_ context.Context, event events.Event) error {
	a.logger.Info("user registered",
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLedgerChange(_ context.Context, event events.Event) error {
	a.logger.Info("ledger change",
		zap.String("event_type", string(event.Type)),
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	return nil
}
