package modes

import "baduk_arena/internal/domain/game"

// seqRand отдаёт заранее заданную последовательность.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func pt(x, y int) game.Point {
	return game.Point{X: x, Y: y}
}
