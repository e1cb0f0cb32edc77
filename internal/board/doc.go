// Package board поддерживает актуальную очередь исполнения.
//
// # Обзор
//
// Board — вызывающая сторона для queue.Lineup. Сам порядок board не хранит
// и не вычисляет инкрементально: на каждое изменение он читает полный снимок
// (заявки + лимит) и пересчитывает очередь с нуля.
//
// Источники пересчёта:
//   - события из RabbitMQ (song.added, song.removed, config.updated)
//   - периодический resync по cron-выражению (на случай потерянных событий)
//
// # Last-write-wins
//
// Каждый пересчёт получает номер поколения до чтения снимка. Результат
// сохраняется, только если его поколение новее сохранённого, поэтому
// запоздавший пересчёт со старым снимком не перетирает свежий.
//
// # Ошибки
//
// Неверный лимит (queue.ErrInvalidConfiguration) логируется как ERROR,
// учитывается в метриках, а предыдущая очередь остаётся в силе.
package board
