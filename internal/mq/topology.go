package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	ExchangeEvents Exchange = "karaoke.events"
	ExchangeDLQ    Exchange = "karaoke.dlq"
)

// Queues — имена очередей.
const (
	QueueBoardChanges Queue = "board.changes"
	QueueDLQChanges   Queue = "dlq.changes"
)

// Routing keys.
const (
	RoutingKeySongAdded     RoutingKey = "song.added"
	RoutingKeySongRemoved   RoutingKey = "song.removed"
	RoutingKeyConfigUpdated RoutingKey = "config.updated"
	RoutingKeyDLQChanges    RoutingKey = "changes"
)

// SetupTopology объявляет exchanges, очереди и привязки. Идемпотентна.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		if err := declareExchanges(ch); err != nil {
			return err
		}
		if err := declareQueues(ch); err != nil {
			return err
		}
		return bindQueues(ch)
	})
}

// declareExchanges создаёт обменники.
func declareExchanges(ch *amqp.Channel) error {
	for _, name := range []Exchange{ExchangeEvents, ExchangeDLQ} {
		err := ch.ExchangeDeclare(
			string(name), // name
			"direct",     // type
			true,         // durable
			false,        // auto-deleted
			false,        // internal
			false,        // no-wait
			nil,          // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", name, err)
		}
	}
	return nil
}

// declareQueues создаёт очереди.
func declareQueues(ch *amqp.Channel) error {
	queues := []struct {
		name Queue
		args amqp.Table
	}{
		// board.changes — битые сообщения уходят в DLQ
		{QueueBoardChanges, amqp.Table{
			"x-dead-letter-exchange":    string(ExchangeDLQ),
			"x-dead-letter-routing-key": string(RoutingKeyDLQChanges),
		}},
		{QueueDLQChanges, nil},
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			string(q.name), // name
			true,           // durable
			false,          // delete when unused
			false,          // exclusive
			false,          // no-wait
			q.args,         // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", q.name, err)
		}
	}
	return nil
}

// Bindings возвращает привязки очередей к обменникам.
func Bindings() []Binding {
	return []Binding{
		{QueueBoardChanges, RoutingKeySongAdded, ExchangeEvents},
		{QueueBoardChanges, RoutingKeySongRemoved, ExchangeEvents},
		{QueueBoardChanges, RoutingKeyConfigUpdated, ExchangeEvents},
		{QueueDLQChanges, RoutingKeyDLQChanges, ExchangeDLQ},
	}
}

// Binding — привязка очереди к обменнику.
type Binding struct {
	Queue      Queue
	RoutingKey RoutingKey
	Exchange   Exchange
}

// bindQueues привязывает очереди к обменникам.
func bindQueues(ch *amqp.Channel) error {
	for _, b := range Bindings() {
		err := ch.QueueBind(
			string(b.Queue),      // queue name
			string(b.RoutingKey), // routing key
			string(b.Exchange),   // exchange
			false,                // no-wait
			nil,                  // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.Queue, b.Exchange, err)
		}
	}
	return nil
}
