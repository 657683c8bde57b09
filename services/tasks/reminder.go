package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"revamp/models"
	"revamp/services/notification"
	"revamp/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeTaskDueReminder = "task:due-reminder"

// reminderLead is how long before the due time the assignee is reminded.
const reminderLead = time.Hour

type DueReminderPayload struct {
	TaskID string `json:"taskId"`
}

// ReminderScheduler queues a reminder for a task's due time.
type ReminderScheduler interface {
	ScheduleDueReminder(ctx context.Context, task *models.Task) error
}

func NewDueReminderTask(taskID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(DueReminderPayload{TaskID: taskID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTaskDueReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}
	return task, opts, nil
}

// QueueReminderScheduler schedules reminders on the asynq queue.
type QueueReminderScheduler struct {
	Queue notification.Enqueuer
	Now   func() time.Time
}

func (q *QueueReminderScheduler) ScheduleDueReminder(ctx context.Context, task *models.Task) error {
	if task.DueDate == nil {
		return nil
	}
	now := time.Now
	if q.Now != nil {
		now = q.Now
	}
	fireAt := task.DueDate.Add(-reminderLead)
	if !fireAt.After(now()) {
		return nil
	}
	t, opts, err := NewDueReminderTask(task.ID, fireAt)
	if err != nil {
		return err
	}
	if _, err := q.Queue.EnqueueContext(ctx, t, opts...); err != nil {
		return fmt.Errorf("schedule due reminder: %w", err)
	}
	return nil
}

func (s *DefaultTaskService) scheduleReminder(ctx context.Context, task *models.Task) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleDueReminder(ctx, task); err != nil {
		utils.LoggerOr(s.Logger).Warn("due reminder not scheduled", zap.String("taskId", task.ID), zap.Error(err))
	}
}

// SendDueReminder reminds the current holder of an unfinished task. Finished or unheld tasks are skipped.
func (s *DefaultTaskService) SendDueReminder(ctx context.Context, taskID string) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	switch task.Status {
	case models.TaskCompleted, models.TaskDelivered:
		return nil
	}
	if task.AssignedEmployeeID == "" {
		return nil
	}
	due := ""
	if task.DueDate != nil {
		due = task.DueDate.Format(models.ClockLayout)
	}
	s.notify(ctx, models.Notification{
		RecipientID: task.AssignedEmployeeID,
		SenderID:    task.AssignedAdminID,
		Type:        models.NotificationWarning,
		Title:       "Task Due Soon",
		Message:     fmt.Sprintf("%s's %s is due at %s", task.CustomerName, task.ServiceType, due),
		TaskID:      task.ID,
	})
	return nil
}

// HandleDueReminder is the worker side of TypeTaskDueReminder.
func HandleDueReminder(svc TaskService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p DueReminderPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}
		err := svc.SendDueReminder(ctx, p.TaskID)
		if _, ok := models.AsDomainError(err); ok {
			// The task is gone; retrying will not bring it back.
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
}
