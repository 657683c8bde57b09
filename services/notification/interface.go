package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	notificationRepo "revamp/database/repository/notification"
	"revamp/models"
	"revamp/utils"

	"go.uber.org/zap"
)

var (
	ErrNotificationNotFound = models.NewDomainError(models.KindNotFound, "NOTIFICATION_NOT_FOUND", "notification not found")
	ErrRecipientRequired    = models.NewDomainError(models.KindValidation, "RECIPIENT_REQUIRED", "notification recipient is required")
)

// Notifier delivers one notification. Callers treat delivery as best effort.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// NotificationService is the staffing-side inbox: delivery plus the read side.
type NotificationService interface {
	Notifier
	List(ctx context.Context, recipientID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// DefaultNotificationService stores every notification and, when a pusher is configured,
// mirrors it to the recipient's FCM topic.
type DefaultNotificationService struct {
	repo   notificationRepo.NotificationRepository
	pusher Pusher
	logger *zap.Logger
}

// NewDefaultNotificationService wires the store and an optional pusher (nil disables push).
func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, pusher Pusher, logger *zap.Logger) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{repo: repo, pusher: pusher, logger: utils.LoggerOr(logger)}, nil
}

func (s *DefaultNotificationService) Notify(ctx context.Context, n models.Notification) error {
	if strings.TrimSpace(n.RecipientID) == "" {
		return ErrRecipientRequired
	}
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	n.IsRead = false

	if err := s.repo.Create(ctx, &n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	s.logger.Debug("notification stored",
		zap.String("notificationId", n.ID), zap.String("recipientId", n.RecipientID), zap.String("title", n.Title))

	if s.pusher == nil {
		return nil
	}
	if _, err := s.pusher.Send(ctx, pushMessage(n)); err != nil {
		// The stored copy is the record of truth; a failed push only loses the device alert.
		s.logger.Warn("push notification failed", zap.String("recipientId", n.RecipientID), zap.Error(err))
	}
	return nil
}

func (s *DefaultNotificationService) List(ctx context.Context, recipientID string, unreadOnly bool) ([]models.Notification, error) {
	if strings.TrimSpace(recipientID) == "" {
		return nil, ErrRecipientRequired
	}
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id string) error {
	err := s.repo.MarkRead(ctx, id)
	if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
