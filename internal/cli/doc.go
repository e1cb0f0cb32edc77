// Package cli реализует инструмент командной строки Karaoke.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Karaoke API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// Участник оставляет заявку, оператор смотрит очередь, отмечает
// исполненные песни и меняет лимит песен за ход.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Karaoke API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ErrorResponse) и обработку ошибок.
// Пароль оператора передаётся в Authorization: Bearer.
//
//	client := cli.NewClient("http://localhost:8080", password)
//	lineup, err := client.Queue()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: karaoke queue --json | jq .
//
// ## Commands
//
//   - song: request, list, show, done
//   - queue
//   - turns: show, set
//   - login
//
// Каждая группа создаётся через фабричную функцию (NewSongCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
