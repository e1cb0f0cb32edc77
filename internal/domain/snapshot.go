package domain

import "time"

// Snapshot — согласованный срез состояния: все текущие заявки и лимит.
//
// Заявки и лимит читаются в одной транзакции, чтобы лимит не
// расходился с набором заявок, к которому он применяется.
type Snapshot struct {
	Songs     []Song
	TurnLimit int
	TakenAt   time.Time
}
