// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go        — Handler с DI (хранилища, publisher, logger)
//   - routes.go         — регистрация маршрутов
//   - middleware.go     — middleware (logging, recovery, metrics)
//   - auth.go           — проверка пароля оператора (bcrypt)
//   - response.go       — унифицированные JSON-ответы и обработка ошибок
//   - dto.go            — Data Transfer Objects (request/response)
//   - song_handler.go   — обработчики для /songs и /songs/{id}
//   - queue_handler.go  — обработчик для /queue
//   - config_handler.go — обработчики для /config
//
// Форма заявки публичная, остальные маршруты доступны только оператору.
package api
