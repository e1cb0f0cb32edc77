package domain

// ChangeKind — вид изменения данных, после которого очередь пересчитывается.
type ChangeKind string

const (
	// ChangeSongAdded — участник подал новую заявку.
	ChangeSongAdded ChangeKind = "song.added"

	// ChangeSongRemoved — заявка удалена (песня исполнена).
	ChangeSongRemoved ChangeKind = "song.removed"

	// ChangeConfigUpdated — оператор изменил лимит песен за ход.
	ChangeConfigUpdated ChangeKind = "config.updated"
)

// String возвращает строковое представление ChangeKind.
func (k ChangeKind) String() string {
	return string(k)
}

// IsValid проверяет, что вид изменения известен.
func (k ChangeKind) IsValid() bool {
	switch k {
	case ChangeSongAdded, ChangeSongRemoved, ChangeConfigUpdated:
		return true
	default:
		return false
	}
}
