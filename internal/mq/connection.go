package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Задержки переподключения.
const (
	reconnectMinDelay = time.Second
	reconnectMaxDelay = 30 * time.Second
)

// ErrNoChannel — канал недоступен (нет соединения или оно закрыто).
var ErrNoChannel = errors.New("no channel available")

// Connection — обёртка над AMQP соединением с автоматическим reconnect.
//
// Один канал на соединение: API только публикует, board только потребляет
// одну очередь, отдельные каналы не нужны.
type Connection struct {
	url    string
	logger *slog.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool

	done        chan struct{}
	reconnectCh chan struct{}
}

// NewConnection подключается к RabbitMQ и запускает наблюдение за соединением.
func NewConnection(url string, logger *slog.Logger) (*Connection, error) {
	c := &Connection{
		url:         url,
		logger:      logger,
		done:        make(chan struct{}),
		reconnectCh: make(chan struct{}, 1),
	}

	notifyClose, err := c.dial()
	if err != nil {
		return nil, err
	}

	go c.watch(notifyClose)

	return c, nil
}

// dial открывает соединение и канал и подписывается на их закрытие.
func (c *Connection) dial() (chan *amqp.Error, error) {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = ch
	c.mu.Unlock()

	c.logger.Info("connected to RabbitMQ")

	return conn.NotifyClose(make(chan *amqp.Error, 1)), nil
}

// watch ждёт разрыва соединения и переподключается.
func (c *Connection) watch(notifyClose chan *amqp.Error) {
	for {
		select {
		case <-c.done:
			return
		case err, ok := <-notifyClose:
			if c.isClosed() {
				return
			}
			if ok && err != nil {
				c.logger.Warn("connection lost", "error", err)
			}

			next, reconnected := c.reconnect()
			if !reconnected {
				return
			}
			notifyClose = next
		}
	}
}

// reconnect пытается переподключиться с экспоненциальной задержкой.
// Возвращает false, если соединение закрыли во время ожидания.
func (c *Connection) reconnect() (chan *amqp.Error, bool) {
	delay := reconnectMinDelay

	for {
		c.logger.Info("attempting to reconnect", "delay", delay)

		select {
		case <-c.done:
			return nil, false
		case <-time.After(delay):
		}

		notifyClose, err := c.dial()
		if err != nil {
			c.logger.Warn("reconnect failed", "error", err)
			delay = min(delay*2, reconnectMaxDelay)
			continue
		}

		// Consumer ждёт этого сигнала, чтобы заново подписаться на очередь
		select {
		case c.reconnectCh <- struct{}{}:
		default:
		}

		return notifyClose, true
	}
}

func (c *Connection) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Channel возвращает текущий AMQP канал.
func (c *Connection) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

// ReconnectNotify возвращает канал для уведомлений о переподключении.
func (c *Connection) ReconnectNotify() <-chan struct{} {
	return c.reconnectCh
}

// IsConnected проверяет, установлено ли соединение.
func (c *Connection) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && !c.conn.IsClosed()
}

// WithChannel выполняет функцию с текущим каналом.
func (c *Connection) WithChannel(ctx context.Context, fn func(ch *amqp.Channel) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch := c.Channel()
	if ch == nil || ch.IsClosed() {
		return ErrNoChannel
	}
	return fn(ch)
}

// Close закрывает канал и соединение. Повторный вызов ничего не делает.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)

	var errs []error
	if c.channel != nil && !c.channel.IsClosed() {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}

	c.logger.Info("connection closed")
	return errors.Join(errs...)
}
