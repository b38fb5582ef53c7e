package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/service"
)

func TestStartAuditWorker_LogsAndCounts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewSessionBus()
	metrics := observability.NewMetrics()

	StartAuditWorker(service.NewAuditService(dispatcher, zap.New(core)), dispatcher, metrics)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventAccountLoggedIn,
		AccountID: "acc-1",
		Payload:   events.LoggedInPayload{RoleName: "ADMIN", PermissionCount: 32},
	})
	assert.NoError(t, err)
	err = dispatcher.Publish(context.Background(), events.Event{Type: events.EventLoginFailed, Email: "x@y.z"})
	assert.NoError(t, err)

	assert.Equal(t, 2, logs.FilterMessage("auth event").Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("account_id", "acc-1")).Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("role_name", "ADMIN")).Len())
	assert.Equal(t, 1, logs.FilterField(zap.Int("permission_count", 32)).Len())

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `auth_events_total{type="login_failed"} 1`)
}

func TestStartAuditWorker_RefreshRejectionLogsReason(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewSessionBus()
	StartAuditWorker(service.NewAuditService(dispatcher, zap.New(core)), dispatcher, nil)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventRefreshTokenRejected,
		Payload: events.RefreshRejectedPayload{Reason: "token reused"},
	})
	assert.NoError(t, err)

	warned := logs.FilterLevelExact(zap.WarnLevel).FilterField(zap.String("reason", "token reused"))
	assert.Equal(t, 1, warned.Len())
}

func TestStartAuditWorker_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil, nil, nil) })
}
