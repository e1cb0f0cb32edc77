// Package queue вычисляет порядок исполнения заявок.
//
// # Обзор
//
// Organize — чистая функция: на вход полный набор текущих заявок и лимит
// песен за ход, на выход — порядок исполнения. Состояния между вызовами нет,
// ввода-вывода нет. Вызывающая сторона (API, board) пересчитывает очередь
// заново при каждом изменении данных.
//
// # Алгоритм
//
// Заявки раскладываются по участникам (ключ domain.Song.RequesterKey), внутри
// участника — по времени подачи. Дальше очередь строится раундами:
//
//  1. В начале раунда участники с оставшимися заявками сортируются по
//     времени самой ранней из оставшихся заявок (дольше ждёт — раньше поёт).
//  2. Каждый участник по порядку отдаёт не больше turnLimit заявок.
//  3. Раунд закрывается, участники без заявок выбывают.
//
// Пример (turnLimit = 1): Alice/A@t1, Alice/B@t2, Bob/C@t3 → A, C, B.
// При turnLimit = 2 тот же набор даёт A, B, C.
//
// # Детерминированность
//
// Заявки сравниваются по CreatedAt, при равенстве — по ID. Участники
// сравниваются по своей первой оставшейся заявке. Результат зависит только
// от набора заявок и лимита, но не от порядка во входном срезе.
//
// # Ошибки
//
// turnLimit < 1 — ошибка конфигурации (ErrInvalidConfiguration).
// Значение не подрезается до 1: неверный лимит должен быть виден оператору.
package queue
