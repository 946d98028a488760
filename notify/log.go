package notify

import (
	"context"

	"github.com/kbukum/storefront/logger"
)

// LogNotifier writes notifications to a logger; errors at error level,
// everything else at info.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier returns a LogNotifier. A nil logger uses the global one.
func NewLogNotifier(l *logger.Logger) *LogNotifier {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &LogNotifier{log: l.WithComponent("notify")}
}

func (n *LogNotifier) Notify(ctx context.Context, note Notification) {
	fields := logger.Fields("notification_id", note.ID, "level", string(note.Level))
	log := n.log.WithContext(ctx)
	if note.Level == LevelError {
		log.Error(note.Message, fields)
		return
	}
	log.Info(note.Message, fields)
}
