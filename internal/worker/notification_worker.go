package worker

import (
	"context"

	"github.com/spec-kit/recommendation-service/internal/events"
	"github.com/spec-kit/recommendation-service/internal/observability"
	"github.com/spec-kit/recommendation-service/internal/service"
)

var mutationActions = map[events.EventType]string{
	events.EventRequestCreated: "create",
	events.EventRequestUpdated: "update",
	events.EventRequestDeleted: "delete",
}

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartMetricsWorker counts request mutations as they are published.
func StartMetricsWorker(dispatcher events.Dispatcher, metrics *observability.Metrics) {
	if dispatcher == nil || metrics == nil {
		return
	}
	for eventType, action := range mutationActions {
		action := action
		dispatcher.Subscribe(eventType, func(context.Context, events.Event) error {
			metrics.RecordMutation(action)
			return nil
		})
	}
}
