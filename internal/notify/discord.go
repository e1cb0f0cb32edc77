package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed colors.
const (
	colorPurple = 0xA855F7
)

// DiscordNotifier отправляет уведомления через Discord webhook.
type DiscordNotifier struct {
	session      *discordgo.Session
	webhookID    string
	webhookToken string
}

// NewDiscordNotifier создаёт DiscordNotifier.
// Для webhook токен бота не нужен, сессия используется только как HTTP-клиент.
func NewDiscordNotifier(webhookID, webhookToken string) (*DiscordNotifier, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Client.Timeout = 10 * time.Second

	return &DiscordNotifier{
		session:      session,
		webhookID:    webhookID,
		webhookToken: webhookToken,
	}, nil
}

// NotifySongAdded реализует Notifier.
func (n *DiscordNotifier) NotifySongAdded(ctx context.Context, s SongAdded) error {
	params := &discordgo.WebhookParams{
		Username: "Karaoke",
		Embeds:   []*discordgo.MessageEmbed{songAddedEmbed(s, time.Now())},
	}

	_, err := n.session.WebhookExecute(n.webhookID, n.webhookToken, false, params,
		discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("execute webhook: %w", err)
	}
	return nil
}

// songAddedEmbed строит embed уведомления.
func songAddedEmbed(s SongAdded, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: "🎤 New song in the queue",
		},
		Title:       s.Title,
		Description: fmt.Sprintf("%s — %s", s.Singer, s.Title),
		Color:       colorPurple,
		Timestamp:   now.UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Artist",
				Value:  s.Artist,
				Inline: true,
			},
		},
	}

	if s.Position > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Position",
			Value:  fmt.Sprintf("%d of %d", s.Position, s.QueueLength),
			Inline: true,
		})
	}

	if s.Description != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Note",
			Value: "📝 " + s.Description,
		})
	}

	return embed
}

var _ Notifier = (*DiscordNotifier)(nil)
