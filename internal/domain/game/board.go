package game

import "fmt"

type Color int

const (
	Empty Color = iota
	Black
	White
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) IsPlayer() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// ParseColor принимает "black"/"white" и SGF-вариант "B"/"W".
func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "B", "b":
		return Black, nil
	case "white", "W", "w":
		return White, nil
	}
	return Empty, fmt.Errorf("unknown color %q", s)
}

type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// PassPoint обозначает пас в истории ходов.
var PassPoint = Point{X: -1, Y: -1}

func (p Point) IsPass() bool {
	return p == PassPoint
}

func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{X: p.X, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
	}
}

func (p Point) String() string {
	if p.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Board хранится построчно: Cells[y*Size+x].
type Board struct {
	Size  int     `json:"size" bson:"size"`
	Cells []Color `json:"cells" bson:"cells"`
}

func NewBoard(size int) Board {
	return Board{
		Size:  size,
		Cells: make([]Color, size*size),
	}
}

func (b Board) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Size && p.Y < b.Size
}

func (b Board) At(p Point) Color {
	return b.Cells[b.index(p)]
}

func (b *Board) Set(p Point, c Color) {
	b.Cells[b.index(p)] = c
}

func (b *Board) Remove(p Point) {
	b.Cells[b.index(p)] = Empty
}

func (b Board) IsEmpty(p Point) bool {
	return b.InBounds(p) && b.At(p) == Empty
}

func (b Board) Clone() Board {
	clone := Board{Size: b.Size, Cells: make([]Color, len(b.Cells))}
	copy(clone.Cells, b.Cells)
	return clone
}

func (b Board) CountStones(c Color) int {
	count := 0
	for _, cell := range b.Cells {
		if cell == c {
			count++
		}
	}
	return count
}

// Points перечисляет все точки доски в порядке сканирования (по строкам).
func (b Board) Points() []Point {
	points := make([]Point, 0, len(b.Cells))
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}

func (b Board) index(p Point) int {
	return p.Y*b.Size + p.X
}
