package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	LevelInfo = "INFO"
	LevelWarn = "WARN"
	LevelCrit = "CRIT"
)

type Entry struct {
	GuildID   string
	UserID    string
	Level     string
	Event     string
	Details   string
	CreatedAt time.Time
}

// Summary is the single line mirrored to the audit channel.
func (e Entry) Summary() string {
	line := fmt.Sprintf("[%s] %s", e.Level, e.Event)
	if e.UserID != "" {
		line += fmt.Sprintf(" <@%s>", e.UserID)
	}
	if e.Details != "" {
		line += ": " + e.Details
	}
	return line
}

type Logger struct {
	logger *zap.Logger
	now    func() time.Time
	notify func(context.Context, Entry)
}

func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger, now: time.Now}
}

func (l *Logger) SetNotifier(notify func(context.Context, Entry)) {
	l.notify = notify
}

func (l *Logger) Log(ctx context.Context, level, guildID, userID, event, details string) {
	entry := Entry{
		GuildID:   guildID,
		UserID:    userID,
		Level:     level,
		Event:     event,
		Details:   details,
		CreatedAt: l.now(),
	}
	if l.notify != nil {
		l.notify(ctx, entry)
	}
	fields := []zap.Field{
		zap.String("level", level),
		zap.String("guild_id", guildID),
		zap.String("user_id", userID),
		zap.String("event", event),
		zap.String("details", details),
	}
	if level == LevelCrit {
		l.logger.Warn("audit", fields...)
		return
	}
	l.logger.Info("audit", fields...)
}
