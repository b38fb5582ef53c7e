package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/events"
)

// AuditService writes session events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to every session event. Login and refresh rejection
// log their payload as discrete fields.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(a.handle,
		events.EventLoginFailed,
		events.EventAccountLoggedOut,
		events.EventAccessTokenRefreshed,
		events.EventAccountRegistered,
		events.EventPasswordChanged,
	)
	a.dispatcher.Subscribe(events.Typed(a.loggedIn), events.EventAccountLoggedIn)
	a.dispatcher.Subscribe(events.Typed(a.refreshRejected), events.EventRefreshTokenRejected)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.write(event)
	return nil
}

func (a *AuditService) loggedIn(_ context.Context, event events.Event, p events.LoggedInPayload) error {
	a.write(event, zap.String("role_name", p.RoleName), zap.Int("permission_count", p.PermissionCount))
	return nil
}

func (a *AuditService) refreshRejected(_ context.Context, event events.Event, p events.RefreshRejectedPayload) error {
	a.write(event, zap.String("reason", p.Reason))
	return nil
}

func (a *AuditService) write(event events.Event, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Time("at", event.Timestamp),
	}
	if event.AccountID != "" {
		fields = append(fields, zap.String("account_id", event.AccountID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	fields = append(fields, extra...)

	switch event.Type {
	case events.EventLoginFailed, events.EventRefreshTokenRejected:
		a.logger.Warn("auth event", fields...)
	default:
		a.logger.Info("auth event", fields...)
	}
}
