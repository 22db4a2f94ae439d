package notification

import (
	"context"

	"aarogya/utils"

	"go.uber.org/zap"
)

// LogNotificationService writes pushes to the log instead of delivering
// them. Used when Firebase credentials are not configured, and in tests.
type LogNotificationService struct{}

func (s *LogNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("push notification (log only)",
		zap.String("userID", userID),
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}
