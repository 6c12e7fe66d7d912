package dashboard

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/matchsight/matchsight/internal/pkg/models"
)

// Min interval between Telegram messages to the same chat to avoid 429 Too
// Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// TelegramNotifier sends a Telegram message when a new prediction is saved.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a notifier, or nil when the bot cannot be
// reached (the dashboard keeps working without notifications).
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}

	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyNewPrediction sends the new-prediction message. Sends are throttled
// and failures are logged, never propagated: notification loss must not break
// a save.
func (n *TelegramNotifier) NotifyNewPrediction(p models.MatchPrediction) {
	if n == nil {
		return
	}

	n.mu.Lock()
	if wait := telegramSendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, formatPredictionMessage(p))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send prediction notification",
			"home", p.Match.HomeTeam, "away", p.Match.AwayTeam, "error", err)
	}
}

func formatPredictionMessage(p models.MatchPrediction) string {
	var b strings.Builder

	b.WriteString("🔮 <b>New prediction saved</b>\n\n")
	fmt.Fprintf(&b, "⚽ %s vs %s\n", p.Match.HomeTeam, p.Match.AwayTeam)
	fmt.Fprintf(&b, "📊 Result: %s (%.0f%%)\n", resultLabel(p.PredictedResult), p.ConfidenceLevel*100)
	fmt.Fprintf(&b, "🥅 Expected score: %.1f : %.1f\n", p.PredictedScore.Home, p.PredictedScore.Away)

	if len(p.Patterns) > 0 {
		b.WriteString("\n📈 Patterns:\n")
		for _, pat := range p.Patterns {
			fmt.Fprintf(&b, "  • %s\n", pat.Type)
		}
	}

	return b.String()
}

func resultLabel(r models.PredictedResult) string {
	switch r {
	case models.ResultHomeWin:
		return "home win"
	case models.ResultAwayWin:
		return "away win"
	default:
		return "draw"
	}
}
