package worker

import (
	"context"

	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/service"
)

// StartAuditWorker registers the audit log handlers and the auth event counter.
func StartAuditWorker(auditService *service.AuditService, dispatcher events.Dispatcher, metrics *observability.Metrics) {
	if auditService != nil {
		auditService.RegisterHandlers()
	}
	if dispatcher == nil || metrics == nil {
		return
	}
	dispatcher.Subscribe(func(_ context.Context, event events.Event) error {
		metrics.RecordAuthEvent(string(event.Type))
		return nil
	})
}
