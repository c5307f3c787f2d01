package game

type Move struct {
	Point  Point `json:"point" bson:"point"`
	Player Color `json:"player" bson:"player"`
	Hidden bool  `json:"hidden,omitempty" bson:"hidden,omitempty"`
}

func (m Move) IsPass() bool {
	return m.Point.IsPass()
}

// KoState действует только на ход с номером TurnIndex.
type KoState struct {
	Point     Point `json:"point" bson:"point"`
	TurnIndex int   `json:"turn_index" bson:"turn_index"`
}

// PerColor хранит пару значений для чёрных и белых.
type PerColor[T any] struct {
	Black T `json:"black" bson:"black"`
	White T `json:"white" bson:"white"`
}

func (p PerColor[T]) Get(c Color) T {
	if c == White {
		return p.White
	}
	return p.Black
}

func (p *PerColor[T]) Set(c Color, v T) {
	if c == White {
		p.White = v
		return
	}
	p.Black = v
}

type Captures = PerColor[int]

// ConsecutivePasses считает пасы в хвосте истории.
func ConsecutivePasses(moves []Move) int {
	count := 0
	for i := len(moves) - 1; i >= 0 && moves[i].IsPass(); i-- {
		count++
	}
	return count
}
