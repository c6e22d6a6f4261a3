package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/recommendation-service/internal/config"
	"github.com/spec-kit/recommendation-service/internal/events"
)

func TestNotificationServiceHandlesRequestEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@ucsb.edu",
		WebhookURL: "https://hooks.example.com/recs",
	})
	svc.RegisterHandlers()

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{Type: events.EventRequestCreated, RequestID: 1})
	_ = dispatcher.Publish(ctx, events.Event{Type: events.EventRequestStatusChanged, RequestID: 1})
	_ = dispatcher.Publish(ctx, events.Event{Type: events.EventRequestDeleted, RequestID: 1})
	_ = dispatcher.Publish(ctx, events.Event{Type: events.EventRequestUpdated, RequestID: 1})

	assert.Equal(t, 1, logs.FilterMessage("RecommendationRequestCreated").Len())
	assert.Equal(t, 1, logs.FilterMessage("RecommendationRequestStatusChanged").Len())
	assert.Equal(t, 1, logs.FilterMessage("RecommendationRequestDeleted").Len())
	assert.Equal(t, 2, logs.FilterMessage("sendEmailNotificationStub").Len())
	assert.Equal(t, 3, logs.FilterMessage("sendWebhookNotificationStub").Len())
}

func TestNotificationServiceSkipsUnconfiguredChannels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{}).RegisterHandlers()

	_ = dispatcher.Publish(context.Background(), events.Event{Type: events.EventRequestCreated, RequestID: 2})

	assert.Equal(t, 1, logs.Len())
}
