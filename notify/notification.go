package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is one user-visible message.
type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// New returns a notification stamped with a fresh id and the current time.
func New(level Level, message string) Notification {
	return Notification{ID: uuid.NewString(), Level: level, Message: message, Time: time.Now()}
}

// Notifier shows notifications to the user. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Nop discards notifications.
var Nop Notifier = NotifierFunc(func(context.Context, Notification) {})

// Multi sends each notification to every notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		for _, nt := range notifiers {
			nt.Notify(ctx, n)
		}
	})
}
