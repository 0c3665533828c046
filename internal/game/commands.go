package game

// ActionKind enumerates the betting actions a seated player may take on
// their turn. Unknown wire strings fail parsing and never reach the state
// machine.
type ActionKind string

const (
	ActionFold  ActionKind = "FOLD"
	ActionCheck ActionKind = "CHECK"
	ActionCall  ActionKind = "CALL"
	ActionRaise ActionKind = "RAISE"
)

func ParseActionKind(s string) (ActionKind, bool) {
	switch kind := ActionKind(s); kind {
	case ActionFold, ActionCheck, ActionCall, ActionRaise:
		return kind, true
	default:
		return "", false
	}
}

// AdminKind enumerates banker operations.
type AdminKind string

const (
	AdminStartRound AdminKind = "START_ROUND"
	AdminWinner     AdminKind = "WINNER"
	AdminAddChips   AdminKind = "ADD_CHIPS"
	AdminAddAll     AdminKind = "ADD_ALL"
	AdminMovePlayer AdminKind = "MOVE_PLAYER"
	AdminReset      AdminKind = "RESET"
)

func ParseAdminKind(s string) (AdminKind, bool) {
	switch kind := AdminKind(s); kind {
	case AdminStartRound, AdminWinner, AdminAddChips, AdminAddAll, AdminMovePlayer, AdminReset:
		return kind, true
	default:
		return "", false
	}
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "UP"
	MoveDown MoveDirection = "DOWN"
)

// AdminCommand is a decoded banker operation. Only the fields relevant to
// Kind are read.
type AdminCommand struct {
	Kind      AdminKind
	Ante      float64
	Token     string
	Amount    float64
	Direction MoveDirection
}
