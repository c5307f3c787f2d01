package modes

import (
	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
	"baduk_arena/internal/usecase/rules"
)

// MaxPlacementAttempts: сколько случайных точек пробуем на один камень,
// прежде чем перейти к обходу доски по порядку.
const MaxPlacementAttempts = 100

func NewBasePlacement(settings game.Settings) *game.BasePlacementState {
	value := settings.BaseStoneValue
	if value <= 0 {
		value = 1
	}
	return &game.BasePlacementState{
		PerPlayer:  settings.BaseStonesPerSide,
		StoneValue: value,
		Round:      1,
	}
}

// PlacementColor: цвет, которым камни участника стоят на доске до аукциона.
// Настоящие цвета становятся известны только после разрешения ставок.
func PlacementColor(slot int) game.Color {
	if slot == 0 {
		return game.Black
	}
	return game.White
}

// PlaceBaseStone добавляет камень в секретный список участника.
// Совпадения с камнями соперника здесь не видны и разрешаются при очистке.
func PlaceBaseStone(b *game.BasePlacementState, boardSize, slot int, p game.Point) error {
	if p.X < 0 || p.Y < 0 || p.X >= boardSize || p.Y >= boardSize {
		return errors.ErrInvalidPoint
	}
	if len(b.Stones[slot]) >= b.PerPlayer {
		return errors.ErrBaseStoneLimit
	}
	for _, own := range b.Stones[slot] {
		if own == p {
			return errors.ErrOccupied
		}
	}
	b.Stones[slot] = append(b.Stones[slot], p)
	return nil
}

func PlacementDone(b *game.BasePlacementState, slot int) bool {
	return len(b.Stones[slot]) >= b.PerPlayer
}

func PlacementComplete(b *game.BasePlacementState) bool {
	return PlacementDone(b, 0) && PlacementDone(b, 1)
}

// MixedBoard собирает камни обоих участников на одной доске. Точки,
// выбранные обоими, не ставятся: очистка их всё равно удалит.
func MixedBoard(b *game.BasePlacementState, boardSize int) game.Board {
	board := game.NewBoard(boardSize)
	overlap := overlapping(b)
	for slot := range b.Stones {
		for _, p := range b.Stones[slot] {
			if _, ok := overlap[p]; ok {
				continue
			}
			board.Set(p, PlacementColor(slot))
		}
	}
	return board
}

// FillRandom дозаполняет список участника случайными точками. Кандидат
// отбрасывается, если у его группы нет дамэ или соперник может снять её
// одним ходом. После MaxPlacementAttempts неудач точка берётся обходом
// доски, и тогда опасные точки допускаются.
func FillRandom(b *game.BasePlacementState, boardSize, slot int, rng Rand) (added int, usedScan bool) {
	color := PlacementColor(slot)
	for len(b.Stones[slot]) < b.PerPlayer {
		board := MixedBoard(b, boardSize)
		placed := false
		for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
			p := game.Point{X: rng.Intn(boardSize), Y: rng.Intn(boardSize)}
			if !board.IsEmpty(p) || claimed(b, p) || !safeBaseStone(board, p, color) {
				continue
			}
			b.Stones[slot] = append(b.Stones[slot], p)
			placed = true
			break
		}
		if !placed {
			p, ok := firstFree(b, board)
			if !ok {
				return added, usedScan
			}
			b.Stones[slot] = append(b.Stones[slot], p)
			usedScan = true
		}
		added++
	}
	return added, usedScan
}

// Sanitize удаляет совпавшие точки и затем за один проход все камни,
// у групп которых на общей доске не осталось дамэ. Повторного прохода
// после удаления нет.
func Sanitize(b *game.BasePlacementState, boardSize int) []game.Point {
	overlap := overlapping(b)
	var removed []game.Point
	for _, p := range b.Stones[0] {
		if _, ok := overlap[p]; ok {
			removed = append(removed, p)
		}
	}
	for slot := range b.Stones {
		b.Stones[slot] = filterPoints(b.Stones[slot], overlap)
	}

	board := MixedBoard(b, boardSize)
	dead := make(map[game.Point]struct{})
	for slot := range b.Stones {
		for _, p := range b.Stones[slot] {
			g, ok := rules.FindGroup(board, p, PlacementColor(slot))
			if ok && g.LibertyCount == 0 {
				dead[p] = struct{}{}
				removed = append(removed, p)
			}
		}
	}
	for slot := range b.Stones {
		b.Stones[slot] = filterPoints(b.Stones[slot], dead)
		b.Initial[slot] = append([]game.Point(nil), b.Stones[slot]...)
	}
	b.Sanitized = true
	return removed
}

// ApplyBaseStones ставит базовые камни на доску настоящими цветами игроков.
func ApplyBaseStones(b *game.BasePlacementState, players [2]game.Player, board *game.Board) {
	for slot := range b.Stones {
		for _, p := range b.Stones[slot] {
			board.Set(p, players[slot].Color)
		}
	}
}

func baseStoneValue(s *game.Session, p game.Point, owner game.Color) (int, bool) {
	b := s.Ext.Base
	if b == nil {
		return 0, false
	}
	for slot := range b.Stones {
		if s.Players[slot].Color != owner {
			continue
		}
		for _, bp := range b.Stones[slot] {
			if bp == p {
				return b.StoneValue, true
			}
		}
	}
	return 0, false
}

func forgetBaseStones(b *game.BasePlacementState, captured []game.Point) {
	gone := make(map[game.Point]struct{}, len(captured))
	for _, p := range captured {
		gone[p] = struct{}{}
	}
	for slot := range b.Stones {
		b.Stones[slot] = filterPoints(b.Stones[slot], gone)
	}
}

// safeBaseStone: просмотр на один ход вперёд для случайной расстановки.
func safeBaseStone(board game.Board, p game.Point, color game.Color) bool {
	sim := board.Clone()
	sim.Set(p, color)
	g, _ := rules.FindGroup(sim, p, color)
	if g.LibertyCount == 0 {
		return false
	}
	lib, ok := g.SoleLiberty()
	if !ok {
		return true
	}
	reply := rules.ProcessMove(sim, game.Move{Point: lib, Player: color.Opponent()}, nil, 0, rules.MoveOptions{})
	if !reply.Valid {
		return true
	}
	for _, c := range reply.Captured {
		if c == p {
			return false
		}
	}
	return true
}

func firstFree(b *game.BasePlacementState, board game.Board) (game.Point, bool) {
	for _, p := range board.Points() {
		if board.IsEmpty(p) && !claimed(b, p) {
			return p, true
		}
	}
	return game.Point{}, false
}

func claimed(b *game.BasePlacementState, p game.Point) bool {
	for slot := range b.Stones {
		for _, bp := range b.Stones[slot] {
			if bp == p {
				return true
			}
		}
	}
	return false
}

func overlapping(b *game.BasePlacementState) map[game.Point]struct{} {
	first := make(map[game.Point]struct{}, len(b.Stones[0]))
	for _, p := range b.Stones[0] {
		first[p] = struct{}{}
	}
	overlap := make(map[game.Point]struct{})
	for _, p := range b.Stones[1] {
		if _, ok := first[p]; ok {
			overlap[p] = struct{}{}
		}
	}
	return overlap
}

func filterPoints(points []game.Point, drop map[game.Point]struct{}) []game.Point {
	if len(drop) == 0 {
		return points
	}
	kept := points[:0]
	for _, p := range points {
		if _, ok := drop[p]; !ok {
			kept = append(kept, p)
		}
	}
	return kept
}
