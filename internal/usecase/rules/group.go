package rules

import "baduk_arena/internal/domain/game"

// Group: связная группа камней одного цвета и её дамэ.
type Group struct {
	Color         game.Color
	Stones        []game.Point
	LibertyPoints map[game.Point]struct{}
	LibertyCount  int
}

func (g Group) Contains(p game.Point) bool {
	for _, s := range g.Stones {
		if s == p {
			return true
		}
	}
	return false
}

// SoleLiberty возвращает единственное дамэ группы в атари.
func (g Group) SoleLiberty() (game.Point, bool) {
	if g.LibertyCount != 1 {
		return game.PassPoint, false
	}
	for p := range g.LibertyPoints {
		return p, true
	}
	return game.PassPoint, false
}

// FindGroup обходит доску в ширину от seed по четырём направлениям.
// false, если в seed нет камня цвета color.
func FindGroup(board game.Board, seed game.Point, color game.Color) (Group, bool) {
	if !board.InBounds(seed) || board.At(seed) != color || !color.IsPlayer() {
		return Group{}, false
	}
	return findGroup(board, seed, color, make(map[game.Point]bool)), true
}

func findGroup(board game.Board, seed game.Point, color game.Color, seen map[game.Point]bool) Group {
	g := Group{
		Color:         color,
		LibertyPoints: make(map[game.Point]struct{}),
	}
	queue := []game.Point{seed}
	seen[seed] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		g.Stones = append(g.Stones, cur)
		for _, n := range cur.Neighbors() {
			if !board.InBounds(n) {
				continue
			}
			switch board.At(n) {
			case game.Empty:
				g.LibertyPoints[n] = struct{}{}
			case color:
				if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	g.LibertyCount = len(g.LibertyPoints)
	return g
}

// GetAllGroups разбивает все камни цвета на группы в порядке сканирования.
func GetAllGroups(board game.Board, color game.Color) []Group {
	var groups []Group
	seen := make(map[game.Point]bool)
	for _, p := range board.Points() {
		if board.At(p) != color || seen[p] {
			continue
		}
		groups = append(groups, findGroup(board, p, color, seen))
	}
	return groups
}

func GetAllLiberties(board game.Board, color game.Color) map[game.Point]struct{} {
	libs := make(map[game.Point]struct{})
	for _, g := range GetAllGroups(board, color) {
		for p := range g.LibertyPoints {
			libs[p] = struct{}{}
		}
	}
	return libs
}
