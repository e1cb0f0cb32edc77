// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Через брокер передаются события об изменении данных. Получив событие,
// board заново читает снимок и пересчитывает очередь исполнения.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация событий
//   - consumer.go   — потребление событий
//
// Типы сообщений:
//   - song.added      — новая заявка
//   - song.removed    — заявка удалена (песня исполнена)
//   - config.updated  — изменён лимит песен за ход
//
// Exchanges:
//   - karaoke.events  — события изменений
//   - karaoke.dlq     — dead letter queue
package mq
