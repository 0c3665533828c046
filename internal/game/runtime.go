package game

import (
	"fmt"
	"sync"

	apperr "github.com/antonelli94/Pinguino/pkg/errors"
	"github.com/antonelli94/Pinguino/pkg/logger"
	"github.com/antonelli94/Pinguino/pkg/money"

	"go.uber.org/zap"
)

// Policy carries the table knobs injected from config.
type Policy struct {
	// ReservedAdminName, when non-empty, lets a join with exactly this
	// display name seize banker authority regardless of the prior holder.
	ReservedAdminName string
	// DefaultAnte is used when a START_ROUND command carries no ante.
	DefaultAnte float64
}

// RoomRuntime owns all state for one room. Every exported method takes the
// room mutex, so commands addressed to the same room serialize while
// commands for different rooms proceed independently. Nothing here touches
// I/O; all operations complete synchronously in memory.
type RoomRuntime struct {
	roomCode string
	policy   Policy

	players     []*Player
	pot         float64
	currentBet  float64
	turnIndex   int
	phase       Phase
	adminToken  string
	dealerToken string

	subscribers map[string]chan OutgoingMessage
	seq         int64

	mu sync.Mutex
}

func newRoomRuntime(roomCode string, policy Policy) *RoomRuntime {
	return &RoomRuntime{
		roomCode:    roomCode,
		policy:      policy,
		phase:       PhaseWaiting,
		subscribers: make(map[string]chan OutgoingMessage),
	}
}

// Subscribe registers a transport connection for snapshot broadcasts and
// immediately pushes the current state to it.
func (rt *RoomRuntime) Subscribe(connID string) chan OutgoingMessage {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	ch := make(chan OutgoingMessage, 8)
	rt.subscribers[connID] = ch
	ch <- OutgoingMessage{Type: "state", Seq: rt.nextSeqLocked(), Data: rt.exportStateLocked()}
	return ch
}

func (rt *RoomRuntime) Unsubscribe(connID string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if ch, ok := rt.subscribers[connID]; ok {
		delete(rt.subscribers, connID)
		close(ch)
	}
}

// Join seats a new player or re-binds an existing token to a fresh
// connection. It never fails: a reconnect keeps all money and round state
// and only refreshes the routing id and the shown name.
func (rt *RoomRuntime) Join(displayName, token, connID string) RoomState {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	player := rt.findPlayerLocked(token)
	if player != nil {
		player.ConnectionID = connID
		player.DisplayName = displayName
	} else {
		player = &Player{
			Token:        token,
			ConnectionID: connID,
			DisplayName:  displayName,
		}
		rt.players = append(rt.players, player)
		rt.broadcastNoticeLocked(fmt.Sprintf("%s sat down.", displayName))
	}

	rt.resolveAdminLocked(player)
	rt.broadcastStateLocked()
	return rt.exportStateLocked()
}

// resolveAdminLocked applies the admin assignment policy on every join: the
// reserved display name always seizes authority; otherwise authority moves
// to the joiner only when the current holder is no longer seated.
func (rt *RoomRuntime) resolveAdminLocked(joining *Player) {
	if rt.policy.ReservedAdminName != "" && joining.DisplayName == rt.policy.ReservedAdminName {
		rt.adminToken = joining.Token
		return
	}
	if rt.findPlayerLocked(rt.adminToken) == nil {
		rt.adminToken = joining.Token
	}
}

// Leave removes the token's seat. Disconnects never call this; only an
// explicit leave forfeits a seat, so transient drops keep the stake.
func (rt *RoomRuntime) Leave(token string) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	idx := indexOfToken(rt.players, token)
	if idx == -1 {
		return apperr.ErrPlayerNotFound
	}
	leaving := rt.players[idx]
	rt.players = append(rt.players[:idx], rt.players[idx+1:]...)

	if rt.adminToken == token {
		rt.adminToken = successorToken(rt.players)
	}
	if rt.turnIndex >= len(rt.players) {
		// Deliberate simplification: the cursor wraps to the first seat,
		// which may skip or repeat a turn.
		rt.turnIndex = 0
	}

	logger.Log.Info("player left room",
		zap.String("roomCode", rt.roomCode),
		zap.String("token", token),
	)
	rt.broadcastNoticeLocked(fmt.Sprintf("%s left the table.", leaving.DisplayName))
	rt.broadcastStateLocked()
	return nil
}

// HandleAction applies a betting action for the player identified by token.
// Turn ownership is enforced by identity, not by connection, so a reconnect
// mid-round cannot desynchronize whose turn it is. Rejections leave state
// untouched and produce no broadcast.
func (rt *RoomRuntime) HandleAction(token string, kind ActionKind, amount float64) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.phase != PhaseBetting {
		return apperr.ErrWrongPhase
	}
	idx := indexOfToken(rt.players, token)
	if idx == -1 {
		return apperr.ErrPlayerNotFound
	}
	if idx != rt.turnIndex {
		return apperr.ErrNotYourTurn
	}
	player := rt.players[idx]

	switch kind {
	case ActionFold:
		player.Folded = true
		rt.broadcastNoticeLocked(fmt.Sprintf("%s folds.", player.DisplayName))

	case ActionCheck:
		if player.BetInRound != rt.currentBet {
			return fmt.Errorf("%w: cannot check while owing %v", apperr.ErrIllegalAction,
				money.Sub(rt.currentBet, player.BetInRound))
		}
		rt.broadcastNoticeLocked(fmt.Sprintf("%s checks.", player.DisplayName))

	case ActionCall:
		toCall := money.Sub(rt.currentBet, player.BetInRound)
		if player.Chips < toCall {
			// No partial all-in call: a short stack cannot call at all.
			return apperr.ErrInsufficientChips
		}
		rt.commitLocked(player, toCall)
		rt.broadcastNoticeLocked(fmt.Sprintf("%s calls %v.", player.DisplayName, toCall))

	case ActionRaise:
		// amount is the new total committed for the round, not an increment.
		target := money.Round(amount)
		if target <= rt.currentBet {
			return apperr.ErrRaiseTooLow
		}
		diff := money.Sub(target, player.BetInRound)
		if player.Chips < diff {
			return apperr.ErrInsufficientChips
		}
		if maxReach, ok := effectiveStackCap(rt.players, idx); ok && target > maxReach {
			return apperr.ErrEffectiveStackExceeded
		}
		rt.commitLocked(player, diff)
		rt.currentBet = target
		rt.broadcastNoticeLocked(fmt.Sprintf("%s raises to %v!", player.DisplayName, target))

	default:
		return fmt.Errorf("%w: unknown action %q", apperr.ErrIllegalAction, kind)
	}

	// The cursor always advances, even onto the sole unfolded seat; ending
	// the hand is an explicit admin operation, never automatic.
	rt.turnIndex = nextUnfoldedIndex(rt.players, rt.turnIndex)
	rt.broadcastStateLocked()
	return nil
}

// commitLocked moves amount out of the player's stack into their round
// commitment and the pot as one step, so no chip is ever lost in between.
func (rt *RoomRuntime) commitLocked(p *Player, amount float64) {
	p.Chips = money.Sub(p.Chips, amount)
	p.BetInRound = money.Add(p.BetInRound, amount)
	rt.pot = money.Add(rt.pot, amount)
}

// HandleAdmin applies a banker operation. The caller must hold the room's
// admin token and still be seated.
func (rt *RoomRuntime) HandleAdmin(token string, cmd AdminCommand) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if token != rt.adminToken || rt.findPlayerLocked(token) == nil {
		return apperr.ErrUnauthorized
	}

	switch cmd.Kind {
	case AdminStartRound:
		if err := rt.startRoundLocked(cmd.Ante); err != nil {
			return err
		}

	case AdminWinner:
		winner := rt.findPlayerLocked(cmd.Token)
		if winner == nil {
			return apperr.ErrPlayerNotFound
		}
		rt.broadcastNoticeLocked(fmt.Sprintf("%s wins %v!", winner.DisplayName, rt.pot))
		winner.Chips = money.Add(winner.Chips, rt.pot)
		rt.pot = 0
		rt.currentBet = 0
		rt.phase = PhaseWaiting

	case AdminAddChips:
		p := rt.findPlayerLocked(cmd.Token)
		if p == nil {
			return apperr.ErrPlayerNotFound
		}
		amount := money.Round(cmd.Amount)
		if money.Add(p.Chips, amount) < 0 {
			return fmt.Errorf("%w: correction would overdraw %s", apperr.ErrIllegalAction, p.DisplayName)
		}
		rt.creditLocked(p, amount)

	case AdminAddAll:
		amount := money.Round(cmd.Amount)
		for _, p := range rt.players {
			if money.Add(p.Chips, amount) < 0 {
				return fmt.Errorf("%w: correction would overdraw %s", apperr.ErrIllegalAction, p.DisplayName)
			}
		}
		for _, p := range rt.players {
			rt.creditLocked(p, amount)
		}
		if amount > 0 {
			rt.broadcastNoticeLocked(fmt.Sprintf("The bank added %v to every stack.", amount))
		}

	case AdminMovePlayer:
		if err := rt.movePlayerLocked(cmd.Token, cmd.Direction); err != nil {
			return err
		}

	case AdminReset:
		rt.resetLocked()
		rt.broadcastNoticeLocked("The table was reset.")

	default:
		return fmt.Errorf("%w: unknown admin command %q", apperr.ErrIllegalAction, cmd.Kind)
	}

	rt.broadcastStateLocked()
	return nil
}

func (rt *RoomRuntime) startRoundLocked(ante float64) error {
	ante = money.Round(ante)
	if ante < 0 {
		return fmt.Errorf("%w: negative ante", apperr.ErrIllegalAction)
	}

	rt.pot = 0
	rt.currentBet = 0
	rt.phase = PhaseBetting

	dealerIdx := nextDealerIndex(rt.players, rt.dealerToken)
	rt.dealerToken = rt.players[dealerIdx].Token
	rt.turnIndex = (dealerIdx + 1) % len(rt.players)

	for _, p := range rt.players {
		p.Folded = false
		p.BetInRound = 0
		if p.Chips >= ante {
			// Soft ante: a short stack skips payment instead of folding.
			p.Chips = money.Sub(p.Chips, ante)
			rt.pot = money.Add(rt.pot, ante)
		}
	}

	rt.broadcastNoticeLocked(fmt.Sprintf("New hand! Ante: %v", ante))
	return nil
}

// creditLocked adjusts a stack. Positive credits count as real money
// entering the game and accrue to the buy-in total; corrections do not.
func (rt *RoomRuntime) creditLocked(p *Player, amount float64) {
	p.Chips = money.Add(p.Chips, amount)
	if amount > 0 {
		p.BuyInTotal = money.Add(p.BuyInTotal, amount)
	}
}

func (rt *RoomRuntime) movePlayerLocked(token string, dir MoveDirection) error {
	idx := indexOfToken(rt.players, token)
	if idx == -1 {
		return apperr.ErrPlayerNotFound
	}

	var swap int
	switch dir {
	case MoveUp:
		swap = idx - 1
	case MoveDown:
		swap = idx + 1
	default:
		return fmt.Errorf("%w: unknown direction %q", apperr.ErrIllegalAction, dir)
	}
	if swap < 0 || swap >= len(rt.players) {
		// No wraparound at the table edges.
		return nil
	}
	rt.players[idx], rt.players[swap] = rt.players[swap], rt.players[idx]
	return nil
}

func (rt *RoomRuntime) resetLocked() {
	for _, p := range rt.players {
		p.Chips = 0
		p.BetInRound = 0
		p.BuyInTotal = 0
		p.Folded = false
	}
	rt.pot = 0
	rt.currentBet = 0
	rt.turnIndex = 0
	rt.phase = PhaseWaiting
}

// Snapshot returns the current room state outside of a mutation.
func (rt *RoomRuntime) Snapshot() RoomState {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.exportStateLocked()
}

func (rt *RoomRuntime) findPlayerLocked(token string) *Player {
	if idx := indexOfToken(rt.players, token); idx != -1 {
		return rt.players[idx]
	}
	return nil
}

func (rt *RoomRuntime) exportStateLocked() RoomState {
	players := make([]PlayerState, len(rt.players))
	for i, p := range rt.players {
		players[i] = PlayerState{
			Token:        p.Token,
			ConnectionID: p.ConnectionID,
			DisplayName:  p.DisplayName,
			Chips:        p.Chips,
			BuyInTotal:   p.BuyInTotal,
			BetInRound:   p.BetInRound,
			Folded:       p.Folded,
			IsAdmin:      p.Token == rt.adminToken,
		}
	}
	return RoomState{
		RoomCode:    rt.roomCode,
		Players:     players,
		Pot:         rt.pot,
		CurrentBet:  rt.currentBet,
		TurnIndex:   rt.turnIndex,
		Phase:       rt.phase,
		DealerToken: rt.dealerToken,
	}
}

func (rt *RoomRuntime) nextSeqLocked() int64 {
	rt.seq++
	return rt.seq
}

func (rt *RoomRuntime) broadcastStateLocked() {
	state := rt.exportStateLocked()
	seq := rt.nextSeqLocked()
	for connID, ch := range rt.subscribers {
		select {
		case ch <- OutgoingMessage{Type: "state", Seq: seq, Data: state}:
		default:
			logger.Log.Warn("subscriber channel full, dropping state",
				zap.String("connID", connID),
				zap.String("roomCode", rt.roomCode),
			)
		}
	}
}

func (rt *RoomRuntime) broadcastNoticeLocked(text string) {
	seq := rt.nextSeqLocked()
	for connID, ch := range rt.subscribers {
		select {
		case ch <- OutgoingMessage{Type: "notice", Seq: seq, Data: NoticeData{Text: text}}:
		default:
			logger.Log.Warn("subscriber channel full, dropping notice",
				zap.String("connID", connID),
				zap.String("roomCode", rt.roomCode),
			)
		}
	}
}
