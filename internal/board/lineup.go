package board

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Karaoke/internal/queue"
)

// Lineup — вычисленная очередь вместе с параметрами расчёта.
type Lineup struct {
	// Generation — номер поколения пересчёта.
	Generation uint64 `json:"generation"`

	// TurnLimit — лимит, с которым построена очередь.
	TurnLimit int `json:"turn_limit"`

	// Entries — заявки в порядке исполнения.
	Entries []queue.Entry `json:"entries"`

	// SnapshotAt — момент чтения снимка.
	SnapshotAt time.Time `json:"snapshot_at"`

	// ComputedAt — момент завершения пересчёта.
	ComputedAt time.Time `json:"computed_at"`
}

// Rounds возвращает количество раундов.
func (l *Lineup) Rounds() int {
	if len(l.Entries) == 0 {
		return 0
	}
	return l.Entries[len(l.Entries)-1].Round
}

// Requesters возвращает количество разных участников.
func (l *Lineup) Requesters() int {
	seen := make(map[string]struct{})
	for i := range l.Entries {
		seen[l.Entries[i].Song.RequesterKey()] = struct{}{}
	}
	return len(seen)
}

// Find возвращает позицию заявки по ID.
func (l *Lineup) Find(songID uuid.UUID) (queue.Entry, bool) {
	for _, e := range l.Entries {
		if e.Song.ID == songID {
			return e, true
		}
	}
	return queue.Entry{}, false
}
