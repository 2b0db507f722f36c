// Package telegram delivers persona digests via the Telegram Bot API.
// It formats an analyzed profile and its influence warnings into a
// human-readable message and handles delivery with retry logic.
//
// The client uses MarkdownV2 formatting and includes error handling for
// common Telegram API issues like rate limiting and network failures.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

// Client handles Telegram digest delivery
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendDigest sends a persona digest with influence warnings
func (c *Client) SendDigest(profile *models.Profile, report *models.InfluenceReport) error {
	message := formatDigest(profile, report)

	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2" // Use MarkdownV2 for better escaping support

	// Send with retry
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatDigest formats a profile and influence report into a Telegram message
func formatDigest(profile *models.Profile, report *models.InfluenceReport) string {
	message := "🪞 *Persona Digest*\n\n"
	message += fmt.Sprintf("📅 Generated: %s\n",
		escapeMarkdownV2(time.Now().UTC().Format("2006-01-02 15:04:05")))
	message += fmt.Sprintf("📊 Records analyzed: %s\n\n",
		escapeMarkdownV2(strconv.Itoa(profile.TotalRecords)))

	if profile.Narrative != "" {
		message += fmt.Sprintf("%s\n\n", escapeMarkdownV2(profile.Narrative))
	}

	if top := taxonomy.Top(profile.Topics, 5); len(top) > 0 {
		message += "🔎 *Top interests*\n"
		for i, tc := range top {
			message += fmt.Sprintf("%d\\. %s \\(%d\\)\n", i+1,
				escapeMarkdownV2(tc.Topic), tc.Count)
		}
		message += "\n"
	}

	if len(profile.Traits) > 0 {
		message += "🧩 *Traits*: "
		for i, trait := range profile.Traits {
			if i > 0 {
				message += ", "
			}
			message += escapeMarkdownV2(trait)
		}
		message += "\n\n"
	}

	if report != nil {
		warnings := 0
		for _, chamber := range report.Patterns.EchoChambers {
			message += fmt.Sprintf("⚠️ %s\n", escapeMarkdownV2(chamber.Warning))
			warnings++
		}
		for _, bias := range report.Patterns.PlatformBias {
			message += fmt.Sprintf("⚠️ %s\n", escapeMarkdownV2(bias.Warning))
			warnings++
		}
		if report.Patterns.SentimentManipulation {
			message += "⚠️ Unusual sentiment swings detected in your recent feed\n"
			warnings++
		}
		if warnings == 0 {
			message += "✅ No algorithmic influence warnings this period\n"
		}
	}

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	// Note: We escape all of them with \ prefix

	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
