package game

// Pure seat arithmetic. Correctness of these resolvers is what keeps the
// table honest, so they stay free of locks and side effects.

func indexOfToken(players []*Player, token string) int {
	if token == "" {
		return -1
	}
	for i, p := range players {
		if p.Token == token {
			return i
		}
	}
	return -1
}

// nextUnfoldedIndex returns the next seat after from in seating order,
// wrapping around and skipping folded players. When every other player has
// folded the cursor still lands deterministically on the sole unfolded
// seat; with everyone folded it settles one seat past from.
func nextUnfoldedIndex(players []*Player, from int) int {
	n := len(players)
	if n == 0 {
		return 0
	}
	idx := (from + 1) % n
	for hops := 0; players[idx].Folded && hops < n; hops++ {
		idx = (idx + 1) % n
	}
	return idx
}

// effectiveStackCap is the largest total a player at actorIdx may raise
// to: the smallest chips+betInRound among the other non-folded seats. No
// opponent could ever match more than that, even by going all the way in.
// ok is false when no unfolded opponent remains.
func effectiveStackCap(players []*Player, actorIdx int) (cap float64, ok bool) {
	for i, p := range players {
		if i == actorIdx || p.Folded {
			continue
		}
		reach := p.Chips + p.BetInRound
		if !ok || reach < cap {
			cap = reach
			ok = true
		}
	}
	return cap, ok
}

// nextDealerIndex advances the dealer marker one seat with wraparound. With
// no previous dealer (or a dealer who has left) the first seat takes it.
func nextDealerIndex(players []*Player, dealerToken string) int {
	cur := indexOfToken(players, dealerToken)
	if cur == -1 {
		return 0
	}
	return (cur + 1) % len(players)
}

// successorToken picks the admin successor when the current holder leaves:
// the first remaining player in seating order.
func successorToken(players []*Player) string {
	if len(players) == 0 {
		return ""
	}
	return players[0].Token
}
