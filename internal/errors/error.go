package errors

import "errors"

var (
	ErrSessionNotFound  = errors.New("session was not found")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrJoinGameFailed   = errors.New("join game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFull         = errors.New("game already has two players")
	ErrInternal         = errors.New("internal error")
	ErrBadUsername      = errors.New("username must be 1-32 characters")
)

// Отказы в ходе/действии: состояние партии при них не меняется.
var (
	ErrOccupied         = errors.New("occupied")
	ErrSuicide          = errors.New("suicide")
	ErrKo               = errors.New("ko")
	ErrNotYourTurn      = errors.New("not_your_turn")
	ErrWrongPhase       = errors.New("wrong_phase")
	ErrNoItemsLeft      = errors.New("no_items_left")
	ErrInvalidBid       = errors.New("invalid_bid")
	ErrAlreadySubmitted = errors.New("already_submitted")
	ErrBaseStoneLimit   = errors.New("base_stone_limit")
	ErrGameEnded        = errors.New("game_ended")
	ErrNotParticipant   = errors.New("not_participant")
	ErrUnknownAction    = errors.New("unknown_action")
	ErrInvalidPoint     = errors.New("invalid_point")
)

var rejections = []error{
	ErrOccupied, ErrSuicide, ErrKo, ErrNotYourTurn, ErrWrongPhase, ErrNoItemsLeft,
	ErrInvalidBid, ErrAlreadySubmitted, ErrBaseStoneLimit, ErrGameEnded,
	ErrNotParticipant, ErrUnknownAction, ErrInvalidPoint,
}

// Code возвращает код отказа для клиента, "internal" для всего остального.
func Code(err error) string {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return r.Error()
		}
	}
	return "internal"
}

// IsRejection: ошибка бизнес-уровня, а не сбой инфраструктуры.
func IsRejection(err error) bool {
	return Code(err) != "internal"
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}
