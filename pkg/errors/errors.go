package errors

import "errors"

// Rejection sentinels for room commands. The state machine never mutates
// anything when returning one of these.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrWrongPhase     = errors.New("no betting round in progress")
	ErrUnauthorized   = errors.New("admin authority required")

	ErrIllegalAction          = errors.New("illegal action")
	ErrInsufficientChips      = errors.New("insufficient chips")
	ErrRaiseTooLow            = errors.New("raise must exceed the current bet")
	ErrEffectiveStackExceeded = errors.New("raise exceeds the smallest remaining stack")
)

// Silent reports whether a rejection should produce no notice at all.
// Wrong-sender and wrong-turn failures are benign races (a stale click
// delivered after the turn advanced) and the caller's own client is
// expected to prevent them; business-rule rejections carry clear player
// intent and get a notice.
func Silent(err error) bool {
	switch {
	case errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrUnauthorized):
		return true
	}
	return false
}
