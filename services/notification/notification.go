// Package notification delivers push messages to donor devices over FCM.
package notification

import (
	"context"
	"time"

	"hemovida/models"
	"hemovida/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends a notification to a single user device.
type NotificationService interface {
	SendToUser(user *models.User, n models.Notification) error
}

// FCMNotificationService delivers via Firebase Cloud Messaging. When the FCM
// client is not configured (local development) sends are logged and skipped.
type FCMNotificationService struct{}

// NewFCMNotificationService creates the FCM-backed notification service.
func NewFCMNotificationService() NotificationService {
	return &FCMNotificationService{}
}

func (s *FCMNotificationService) SendToUser(user *models.User, n models.Notification) error {
	logger := utils.GetLogger()

	if utils.FCMClient == nil || user.DeviceToken == "" {
		logger.Debug("push skipped",
			zap.String("userId", user.ID),
			zap.String("type", n.Type),
			zap.Bool("fcmConfigured", utils.FCMClient != nil))
		return nil
	}

	msg := &messaging.Message{
		Token: user.DeviceToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: n.Data,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		logger.Warn("push delivery failed",
			zap.String("userId", user.ID),
			zap.String("type", n.Type),
			zap.Error(err))
		return err
	}
	return nil
}
