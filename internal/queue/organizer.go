package queue

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/shaiso/Karaoke/internal/domain"
)

// Entry — заявка на своей позиции в очереди.
type Entry struct {
	// Position — позиция в очереди, начиная с 1.
	Position int `json:"position"`

	// Round — номер раунда, начиная с 1.
	Round int `json:"round"`

	// Song — сама заявка.
	Song domain.Song `json:"song"`
}

// Organize возвращает заявки в порядке исполнения.
//
// Результат — перестановка входного набора. Входной срез не изменяется.
// Пустой набор даёт пустой (не nil) срез.
func Organize(songs []domain.Song, turnLimit int) ([]domain.Song, error) {
	entries, err := Lineup(songs, turnLimit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Song, len(entries))
	for i := range entries {
		result[i] = entries[i].Song
	}
	return result, nil
}

// Lineup работает как Organize, но дополнительно возвращает позицию
// и номер раунда каждой заявки.
func Lineup(songs []domain.Song, turnLimit int) ([]Entry, error) {
	if turnLimit < 1 {
		return nil, &ConfigError{TurnLimit: turnLimit}
	}

	lanes := buildLanes(songs)
	entries := make([]Entry, 0, len(songs))

	for round := 1; len(lanes) > 0; round++ {
		// Дольше всех ждущий участник идёт первым
		slices.SortFunc(lanes, compareLanes)

		// Фильтрация на месте: next пишет не дальше текущего индекса
		next := lanes[:0]
		for _, l := range lanes {
			for _, song := range l.take(turnLimit) {
				entries = append(entries, Entry{
					Position: len(entries) + 1,
					Round:    round,
					Song:     song,
				})
			}
			if l.remaining() > 0 {
				next = append(next, l)
			}
		}
		lanes = next
	}

	return entries, nil
}

// lane — оставшиеся заявки одного участника в порядке подачи.
type lane struct {
	key    string
	songs  []domain.Song
	cursor int
}

func (l *lane) head() *domain.Song {
	return &l.songs[l.cursor]
}

func (l *lane) remaining() int {
	return len(l.songs) - l.cursor
}

// take забирает до n заявок из начала.
func (l *lane) take(n int) []domain.Song {
	n = min(n, l.remaining())
	taken := l.songs[l.cursor : l.cursor+n]
	l.cursor += n
	return taken
}

// buildLanes сортирует заявки и раскладывает их по участникам.
func buildLanes(songs []domain.Song) []*lane {
	sorted := slices.Clone(songs)
	slices.SortStableFunc(sorted, compareSongs)

	byKey := make(map[string]*lane)
	var lanes []*lane

	for _, song := range sorted {
		key := song.RequesterKey()
		l, ok := byKey[key]
		if !ok {
			l = &lane{key: key}
			byKey[key] = l
			lanes = append(lanes, l)
		}
		l.songs = append(l.songs, song)
	}

	return lanes
}

// compareSongs: CreatedAt по возрастанию, при равенстве — ID.
func compareSongs(a, b domain.Song) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

func compareLanes(a, b *lane) int {
	if c := compareSongs(*a.head(), *b.head()); c != 0 {
		return c
	}
	// Равные головы возможны только при дублях ID
	return cmp.Compare(a.key, b.key)
}
