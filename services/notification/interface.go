package notification

import "context"

// NotificationService delivers best-effort pushes to patients. Delivery is
// fire-and-forget: callers log failures and move on, they never roll back
// on one.
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
}
