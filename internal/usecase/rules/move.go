package rules

import (
	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
)

type MoveOptions struct {
	// IgnoreSuicide используется для пробных постановок, которые не трогают партию.
	IgnoreSuicide bool
}

type MoveResult struct {
	Valid    bool
	Board    game.Board
	Captured []game.Point
	Ko       *game.KoState
	// Reason: одна из ошибок errors.ErrOccupied, errors.ErrSuicide, errors.ErrKo.
	Reason error
}

// ProcessMove проверяет ход и возвращает новую доску. Входная доска не меняется.
// historyLen: длина истории ходов до этого хода.
func ProcessMove(board game.Board, move game.Move, ko *game.KoState, historyLen int, opts MoveOptions) MoveResult {
	p := move.Point
	if !board.InBounds(p) || !move.Player.IsPlayer() {
		return MoveResult{Reason: errors.ErrOccupied}
	}
	if board.At(p) != game.Empty {
		return MoveResult{Reason: errors.ErrOccupied}
	}
	if ko != nil && ko.Point == p && ko.TurnIndex == historyLen {
		return MoveResult{Reason: errors.ErrKo}
	}

	next := board.Clone()
	next.Set(p, move.Player)

	opponent := move.Player.Opponent()
	checked := make(map[game.Point]bool)
	var captured []game.Point
	for _, n := range p.Neighbors() {
		if !next.InBounds(n) || next.At(n) != opponent || checked[n] {
			continue
		}
		g, _ := FindGroup(next, n, opponent)
		for _, s := range g.Stones {
			checked[s] = true
		}
		if g.LibertyCount == 0 {
			captured = append(captured, g.Stones...)
		}
	}
	for _, s := range captured {
		next.Remove(s)
	}

	own, _ := FindGroup(next, p, move.Player)
	if own.LibertyCount == 0 && !opts.IgnoreSuicide {
		return MoveResult{Reason: errors.ErrSuicide}
	}

	var newKo *game.KoState
	if len(captured) == 1 && len(own.Stones) == 1 && own.LibertyCount == 1 {
		newKo = &game.KoState{Point: captured[0], TurnIndex: historyLen + 1}
	}

	return MoveResult{
		Valid:    true,
		Board:    next,
		Captured: captured,
		Ko:       newKo,
	}
}

// IsLegal: короткая форма ProcessMove для перебора кандидатов.
func IsLegal(board game.Board, move game.Move, ko *game.KoState, historyLen int) bool {
	return ProcessMove(board, move, ko, historyLen, MoveOptions{}).Valid
}
