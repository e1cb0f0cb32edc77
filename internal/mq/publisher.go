package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shaiso/Karaoke/internal/domain"
)

// Publisher публикует события в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — вид изменения.
	Type domain.ChangeKind `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// SongAddedPayload — payload события о новой заявке.
type SongAddedPayload struct {
	SongID      uuid.UUID `json:"song_id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Singer      string    `json:"singer"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SongRemovedPayload — payload события об удалении заявки.
type SongRemovedPayload struct {
	SongID uuid.UUID `json:"song_id"`
}

// ConfigUpdatedPayload — payload события об изменении лимита.
type ConfigUpdatedPayload struct {
	TurnLimit int `json:"turn_limit"`
}

// NewMessage создаёт сообщение с новым ID.
func NewMessage(kind domain.ChangeKind, payload any) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Type:      kind,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Publish публикует сообщение в exchange событий. Routing key совпадает с типом.
func (p *Publisher) Publish(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	routingKey := RoutingKey(msg.Type)

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeEvents), // exchange
			string(routingKey),     // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeEvents, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", ExchangeEvents,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishSongAdded публикует событие о новой заявке.
// Потребитель: Board.
func (p *Publisher) PublishSongAdded(ctx context.Context, song *domain.Song) error {
	return p.Publish(ctx, NewMessage(domain.ChangeSongAdded, SongAddedPayloadFrom(song)))
}

// PublishSongRemoved публикует событие об удалении заявки.
// Потребитель: Board.
func (p *Publisher) PublishSongRemoved(ctx context.Context, songID uuid.UUID) error {
	return p.Publish(ctx, NewMessage(domain.ChangeSongRemoved, SongRemovedPayload{SongID: songID}))
}

// PublishConfigUpdated публикует событие об изменении лимита.
// Потребитель: Board.
func (p *Publisher) PublishConfigUpdated(ctx context.Context, turnLimit int) error {
	return p.Publish(ctx, NewMessage(domain.ChangeConfigUpdated, ConfigUpdatedPayload{TurnLimit: turnLimit}))
}

// SongAddedPayloadFrom строит payload из заявки.
func SongAddedPayloadFrom(song *domain.Song) SongAddedPayload {
	return SongAddedPayload{
		SongID:      song.ID,
		Title:       song.Title,
		Artist:      song.Artist,
		Singer:      song.SingerName(),
		Description: song.Description,
		CreatedAt:   song.CreatedAt,
	}
}
