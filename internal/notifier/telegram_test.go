package notifier

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/repowatch/internal/report"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func TestTelegramSend(t *testing.T) {
	bot := &fakeBot{}
	tg := &Telegram{bot: bot, chatID: 42}

	if err := tg.Send(context.Background(), testReport()); err != nil {
		t.Fatal(err)
	}

	if len(bot.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(bot.sent))
	}
	if bot.sent[0].ChatID != 42 {
		t.Errorf("unexpected chat ID %d", bot.sent[0].ChatID)
	}
	if !strings.Contains(bot.sent[0].Text, "c") {
		t.Errorf("expected content in message, got %q", bot.sent[0].Text)
	}
}

func TestTelegramSendChunked(t *testing.T) {
	bot := &fakeBot{}
	tg := &Telegram{bot: bot, chatID: 42}

	rep := &report.Report{Title: "t", Content: strings.Repeat("x", maxTelegramMessage+100)}
	if err := tg.Send(context.Background(), rep); err != nil {
		t.Fatal(err)
	}

	if len(bot.sent) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(bot.sent))
	}
	for _, msg := range bot.sent {
		if len(msg.Text) > maxTelegramMessage {
			t.Errorf("chunk exceeds limit: %d chars", len(msg.Text))
		}
	}
}

func TestSplitMessageShort(t *testing.T) {
	parts := splitMessage("hello")
	if len(parts) != 1 || parts[0] != "hello" {
		t.Errorf("unexpected parts: %v", parts)
	}
}

func TestSplitMessageRuneBoundary(t *testing.T) {
	// Three-byte runes never divide 4096 evenly, so a byte-indexed split
	// would cut one in half at the first boundary.
	text := strings.Repeat("世", maxTelegramMessage)
	parts := splitMessage(text)

	if len(parts) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(parts))
	}
	var rejoined strings.Builder
	for _, part := range parts {
		if !utf8.ValidString(part) {
			t.Errorf("chunk is not valid UTF-8: %q...", part[:12])
		}
		if len(part) > maxTelegramMessage {
			t.Errorf("chunk exceeds limit: %d bytes", len(part))
		}
		rejoined.WriteString(part)
	}
	if rejoined.String() != text {
		t.Error("chunks do not rejoin to the original text")
	}
}
