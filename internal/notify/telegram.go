// Package notify pushes classification highlights to Telegram.
package notify

import (
	"fmt"
	"math"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/model"
)

// Notifier sends run results to a single Telegram chat.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// New creates a Notifier for the given bot token and chat.
func New(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// SendTopControlledRisk sends the best gain-to-risk entries of a tier as one
// message.
func (n *Notifier) SendTopControlledRisk(records []model.ClassifiedRecord, threshold float64, limit int) error {
	if len(records) == 0 {
		n.logger.Info().Msg("No tier entries, nothing to send")
		return nil
	}
	if limit > len(records) {
		limit = len(records)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Top %d posts with >%.0f%% gain and controlled risk:\n\n", limit, threshold)
	for _, r := range records[:limit] {
		ratio := "inf"
		if !math.IsInf(r.GainRiskRatio, 1) {
			ratio = fmt.Sprintf("%.2f", r.GainRiskRatio)
		}
		fmt.Fprintf(&sb, "%s: %s\nGain: %.2f%%, Min: %.2f%%, Ratio: %s\n\n",
			r.Protocol, r.Title, r.PercentGain, r.PercentLoss, ratio)
	}

	msg := tgbotapi.NewMessage(n.chatID, sb.String())
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	n.logger.Info().Int("entries", limit).Msg("Tier summary sent")
	return nil
}
