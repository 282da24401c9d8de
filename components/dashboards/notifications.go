package dashboards

import "context"

// Notifier surfaces the outcome of a user-triggered action. Every failed
// action emits exactly one error notification; nothing propagates to the
// rendering layer uncaught.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

type noopNotifier struct{}

func (noopNotifier) Success(context.Context, string) {}
func (noopNotifier) Error(context.Context, string)   {}

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// NotificationsClient is the minimal interface needed from an external
// notifications transport (toast bus, websocket push, or similar).
type NotificationsClient interface {
	PublishNotification(ctx context.Context, level, message string) error
}

// ClientNotifier forwards notifications to an external client. Publish
// failures are dropped; a broken toast bus must not fail the action itself.
type ClientNotifier struct {
	Client NotificationsClient
}

// Success publishes a success-level notification.
func (n *ClientNotifier) Success(ctx context.Context, message string) {
	if n == nil || n.Client == nil {
		return
	}
	_ = n.Client.PublishNotification(ctx, "success", message)
}

// Error publishes an error-level notification.
func (n *ClientNotifier) Error(ctx context.Context, message string) {
	if n == nil || n.Client == nil {
		return
	}
	_ = n.Client.PublishNotification(ctx, "error", message)
}
