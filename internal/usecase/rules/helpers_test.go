package rules

import (
	"testing"

	"baduk_arena/internal/domain/game"
)

// boardFromRows строит доску из строк: 'X' чёрный, 'O' белый, '.' пусто.
func boardFromRows(t *testing.T, rows ...string) game.Board {
	t.Helper()
	b := game.NewBoard(len(rows))
	for y, row := range rows {
		if len(row) != len(rows) {
			t.Fatalf("row %d has length %d, want %d", y, len(row), len(rows))
		}
		for x, ch := range row {
			switch ch {
			case 'X':
				b.Set(game.Point{X: x, Y: y}, game.Black)
			case 'O':
				b.Set(game.Point{X: x, Y: y}, game.White)
			case '.':
			default:
				t.Fatalf("unexpected cell %q", ch)
			}
		}
	}
	return b
}

func pt(x, y int) game.Point {
	return game.Point{X: x, Y: y}
}
