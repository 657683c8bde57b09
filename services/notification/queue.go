package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"revamp/models"
	"revamp/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeDeliverNotification = "notification:deliver"

// Enqueuer is the part of *asynq.Client used to queue deliveries.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewDeliverTask wraps a notification into a queue task.
func NewDeliverTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDeliverNotification, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	return task, opts, nil
}

// QueuedNotifier hands notifications to the worker queue so request paths never wait on
// storage or push. If the queue is unreachable it delivers inline through Fallback.
type QueuedNotifier struct {
	Queue    Enqueuer
	Fallback Notifier
	Logger   *zap.Logger
}

func (q *QueuedNotifier) Notify(ctx context.Context, n models.Notification) error {
	if strings.TrimSpace(n.RecipientID) == "" {
		return ErrRecipientRequired
	}
	task, opts, err := NewDeliverTask(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if _, err := q.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		utils.LoggerOr(q.Logger).Warn("notification queue unavailable, delivering inline",
			zap.String("recipientId", n.RecipientID), zap.Error(err))
		if q.Fallback == nil {
			return fmt.Errorf("enqueue notification: %w", err)
		}
		return q.Fallback.Notify(ctx, n)
	}
	return nil
}

// HandleDeliverTask is the worker side of TypeDeliverNotification.
func HandleDeliverTask(target Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n models.Notification
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			// A payload that cannot be decoded will never succeed.
			return fmt.Errorf("invalid notification payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := target.Notify(ctx, n); err != nil {
			if errors.Is(err, ErrRecipientRequired) {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return err
		}
		return nil
	}
}
