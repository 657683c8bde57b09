package cron

import (
	"context"
	"time"

	"revamp/services/notification"
	"revamp/services/tasks"
	"revamp/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewMux routes queued work to its handlers. Reminder handling is registered only when a task service is given.
func NewMux(notifier notification.Notifier, taskSvc tasks.TaskService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeDeliverNotification, notification.HandleDeliverTask(notifier))
	if taskSvc != nil {
		mux.HandleFunc(tasks.TypeTaskDueReminder, tasks.HandleDueReminder(taskSvc))
	}
	return mux
}

// InitNotificationWorker runs the async worker in background until ctx is done.
func InitNotificationWorker(ctx context.Context, redisOpt asynq.RedisClientOpt, notifier notification.Notifier, taskSvc tasks.TaskService) *asynq.Server {
	logger := utils.GetLogger().Named("worker")

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("queued job failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)
	mux := NewMux(notifier, taskSvc)

	go func() {
		logger.Info("starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if ctx.Err() != nil {
				return
			}
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("worker failed to start", zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("worker giving up; queued notifications will wait for the next start")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	return srv
}
