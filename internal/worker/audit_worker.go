package worker

import (
	"github.com/booksfrog/booksfrog/internal/service"
)

// StartAuditWorker registers ledger audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
