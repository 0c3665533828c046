package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPlayers(chips ...float64) []*Player {
	players := make([]*Player, len(chips))
	for i, c := range chips {
		players[i] = &Player{Token: string(rune('a' + i)), Chips: c}
	}
	return players
}

func TestNextUnfoldedIndex(t *testing.T) {
	players := testPlayers(10, 10, 10, 10)

	assert.Equal(t, 1, nextUnfoldedIndex(players, 0))
	assert.Equal(t, 0, nextUnfoldedIndex(players, 3)) // wraparound

	players[1].Folded = true
	players[2].Folded = true
	assert.Equal(t, 3, nextUnfoldedIndex(players, 0))

	// With a single unfolded seat the cursor settles there, from anywhere.
	players[0].Folded = true
	assert.Equal(t, 3, nextUnfoldedIndex(players, 3))
	assert.Equal(t, 3, nextUnfoldedIndex(players, 1))
}

func TestNextUnfoldedIndexAllFolded(t *testing.T) {
	players := testPlayers(10, 10)
	players[0].Folded = true
	players[1].Folded = true

	// Deterministic even when nobody is left standing.
	assert.Equal(t, 1, nextUnfoldedIndex(players, 0))
	assert.Equal(t, 0, nextUnfoldedIndex(players, 1))
}

func TestEffectiveStackCap(t *testing.T) {
	players := testPlayers(10, 7, 3)
	players[1].BetInRound = 2

	cap, ok := effectiveStackCap(players, 0)
	assert.True(t, ok)
	assert.Equal(t, 3.0, cap)

	// A folded short stack no longer bounds the raise.
	players[2].Folded = true
	cap, ok = effectiveStackCap(players, 0)
	assert.True(t, ok)
	assert.Equal(t, 9.0, cap) // 7 chips + 2 already committed

	// Heads-up against a folded field: no cap at all.
	players[1].Folded = true
	_, ok = effectiveStackCap(players, 0)
	assert.False(t, ok)
}

func TestNextDealerIndex(t *testing.T) {
	players := testPlayers(10, 10, 10)

	assert.Equal(t, 0, nextDealerIndex(players, ""))        // no previous dealer
	assert.Equal(t, 0, nextDealerIndex(players, "ghost"))   // dealer left
	assert.Equal(t, 1, nextDealerIndex(players, players[0].Token))
	assert.Equal(t, 0, nextDealerIndex(players, players[2].Token)) // wraparound
}

func TestSuccessorToken(t *testing.T) {
	assert.Equal(t, "", successorToken(nil))

	players := testPlayers(10, 10)
	assert.Equal(t, players[0].Token, successorToken(players))
}
