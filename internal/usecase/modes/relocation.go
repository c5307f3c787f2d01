package modes

import (
	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
)

func NewRelocation(settings game.Settings) *game.RelocationState {
	return &game.RelocationState{
		MissilesLeft: game.PerColor[int]{Black: settings.Missiles, White: settings.Missiles},
	}
}

// SlideTarget находит клетку, где остановится камень из from, если толкнуть
// его в направлении dir: он едет до края доски или до первого камня.
// Стоящий вплотную к препятствию камень запустить нельзя.
func SlideTarget(board game.Board, from game.Point, dir game.Direction) (game.Point, error) {
	dx, dy, ok := dir.Delta()
	if !ok {
		return game.Point{}, errors.ErrInvalidPoint
	}
	cur := from
	for {
		next := game.Point{X: cur.X + dx, Y: cur.Y + dy}
		if !board.InBounds(next) || !board.IsEmpty(next) {
			break
		}
		cur = next
	}
	if cur == from {
		return game.Point{}, errors.ErrInvalidPoint
	}
	return cur, nil
}

// Blocker возвращает камень, о который остановилась ракета, если он есть.
func Blocker(board game.Board, dest game.Point, dir game.Direction) (game.Point, bool) {
	dx, dy, _ := dir.Delta()
	next := game.Point{X: dest.X + dx, Y: dest.Y + dy}
	if board.InBounds(next) && !board.IsEmpty(next) {
		return next, true
	}
	return game.Point{}, false
}
