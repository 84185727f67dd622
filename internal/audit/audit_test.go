package audit

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogWritesEntryAndNotifies(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewLogger(zap.New(core))

	var got []Entry
	logger.SetNotifier(func(ctx context.Context, entry Entry) {
		got = append(got, entry)
	})

	logger.Log(context.Background(), LevelWarn, "g1", "u1", "ban", "spam links")

	if len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if got[0].GuildID != "g1" || got[0].Event != "ban" || got[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected entry %+v", got[0])
	}
	entries := logs.FilterMessage("audit").All()
	if len(entries) != 1 {
		t.Fatalf("expected one audit log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event"] != "ban" || fields["user_id"] != "u1" {
		t.Fatalf("unexpected log fields %v", fields)
	}
}

func TestLogWithoutNotifier(t *testing.T) {
	logger := NewLogger(nil)
	logger.Log(context.Background(), LevelInfo, "g1", "", "listbans_denied", "")
}

func TestEntrySummary(t *testing.T) {
	entry := Entry{Level: LevelInfo, Event: "ban", UserID: "42", Details: "target=7 reason=None"}
	if got := entry.Summary(); got != "[INFO] ban <@42>: target=7 reason=None" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := (Entry{Level: LevelWarn, Event: "listbans_denied"}).Summary(); got != "[WARN] listbans_denied" {
		t.Fatalf("unexpected summary %q", got)
	}
}
