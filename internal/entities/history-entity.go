package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ActionType — вид действия над концентратором.
type ActionType string

const (
	ActionReceive  ActionType = "receive"
	ActionOrder    ActionType = "order_to_region"
	ActionInstall  ActionType = "install"
	ActionRemove   ActionType = "remove"
	ActionTestPass ActionType = "test_pass"
	ActionTestFail ActionType = "test_fail"
	ActionImport   ActionType = "import"
)

// HistoryEntry — запись аудита одного перехода. Создаётся только сервисом
// переходов, в той же транзакции, что и сама мутация. Никогда не меняется.
type HistoryEntry struct {
	ID             uint64      `db:"id"`
	ConcentratorID uint64      `db:"concentrator_id"`
	UserID         null.Uint64 `db:"user_id"`
	Action         ActionType  `db:"action"`
	OldState       string      `db:"old_state"`
	NewState       string      `db:"new_state"`
	OldLocation    string      `db:"old_location"`
	NewLocation    string      `db:"new_location"`
	PostCode       string      `db:"post_code"`
	Comment        string      `db:"comment"`
	CreatedAt      time.Time   `db:"created_at"`
}
