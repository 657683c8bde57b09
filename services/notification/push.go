package notification

import (
	"context"

	"revamp/models"

	"firebase.google.com/go/v4/messaging"
)

// Pusher is the part of the FCM client used here; *messaging.Client satisfies it.
type Pusher interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// TopicFor is the FCM topic a recipient's devices subscribe to.
func TopicFor(recipientID string) string {
	return "recipient-" + recipientID
}

func pushMessage(n models.Notification) *messaging.Message {
	data := map[string]string{
		"notificationId": n.ID,
		"type":           n.Type,
	}
	if n.TaskID != "" {
		data["taskId"] = n.TaskID
	}
	for k, v := range n.Metadata {
		data[k] = v
	}

	msg := &messaging.Message{
		Topic: TopicFor(n.RecipientID),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: data,
	}
	if n.Type == models.NotificationWarning {
		msg.Android = &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		}
		msg.APNS = &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		}
	}
	return msg
}
