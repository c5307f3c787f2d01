package rules

import "baduk_arena/internal/domain/game"

// Score считает камни на доске, территорию и пленных.
// Область пустых пунктов, граничащая с обоими цветами, не засчитывается.
func Score(board game.Board, captures game.Captures) game.PerColor[int] {
	var total game.PerColor[int]
	visited := make(map[game.Point]bool)

	for _, p := range board.Points() {
		switch c := board.At(p); c {
		case game.Black, game.White:
			total.Set(c, total.Get(c)+1)
		case game.Empty:
			if visited[p] {
				continue
			}
			size, touchesBlack, touchesWhite := floodEmpty(board, p, visited)
			switch {
			case touchesBlack && !touchesWhite:
				total.Black += size
			case touchesWhite && !touchesBlack:
				total.White += size
			}
		}
	}

	total.Black += captures.Black
	total.White += captures.White
	return total
}

func floodEmpty(board game.Board, seed game.Point, visited map[game.Point]bool) (size int, touchesBlack, touchesWhite bool) {
	queue := []game.Point{seed}
	visited[seed] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		size++
		for _, n := range cur.Neighbors() {
			if !board.InBounds(n) {
				continue
			}
			switch board.At(n) {
			case game.Black:
				touchesBlack = true
			case game.White:
				touchesWhite = true
			case game.Empty:
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	return size, touchesBlack, touchesWhite
}
