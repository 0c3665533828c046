package game

type Phase string

const (
	PhaseWaiting Phase = "WAITING"
	PhaseBetting Phase = "BETTING"
)

// Player is one seated participant. Identity is the client-minted token,
// which survives reconnects; the connection id only routes messages and is
// replaced on every (re)join.
type Player struct {
	Token        string
	ConnectionID string
	DisplayName  string
	Chips        float64
	BuyInTotal   float64
	BetInRound   float64
	Folded       bool
}

// PlayerState is the broadcast view of a seated player.
type PlayerState struct {
	Token        string  `json:"token"`
	ConnectionID string  `json:"connectionId"`
	DisplayName  string  `json:"displayName"`
	Chips        float64 `json:"chips"`
	BuyInTotal   float64 `json:"buyInTotal"`
	BetInRound   float64 `json:"betInRound"`
	Folded       bool    `json:"folded"`
	IsAdmin      bool    `json:"isAdmin"`
}

// RoomState is the full room snapshot handed to the transport layer after
// every accepted mutation. Seating order doubles as turn order.
type RoomState struct {
	RoomCode    string        `json:"roomCode"`
	Players     []PlayerState `json:"players"`
	Pot         float64       `json:"pot"`
	CurrentBet  float64       `json:"currentBet"`
	TurnIndex   int           `json:"turnIndex"`
	Phase       Phase         `json:"phase"`
	DealerToken string        `json:"dealerToken"`
}

type OutgoingMessage struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq"`
	Data interface{} `json:"data"`
}

type NoticeData struct {
	Text string `json:"text"`
}
