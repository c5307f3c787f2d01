package rules

import (
	"reflect"
	"testing"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
)

type replay struct {
	board   game.Board
	ko      *game.KoState
	history []game.Move
}

func (r *replay) play(t *testing.T, player game.Color, p game.Point) MoveResult {
	t.Helper()
	res := ProcessMove(r.board, game.Move{Point: p, Player: player}, r.ko, len(r.history), MoveOptions{})
	if !res.Valid {
		t.Fatalf("move %v by %v rejected: %v", p, player, res.Reason)
	}
	r.board = res.Board
	r.ko = res.Ko
	r.history = append(r.history, game.Move{Point: p, Player: player})
	return res
}

func TestProcessMoveIsPure(t *testing.T) {
	board := boardFromRows(t,
		".O...",
		"OX...",
		".O...",
		".....",
		".....",
	)
	before := board.Clone()
	move := game.Move{Point: pt(2, 1), Player: game.White}

	first := ProcessMove(board, move, nil, 3, MoveOptions{})
	second := ProcessMove(board, move, nil, 3, MoveOptions{})

	if !reflect.DeepEqual(board, before) {
		t.Fatalf("input board was mutated")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if !first.Valid || len(first.Captured) != 1 || first.Captured[0] != pt(1, 1) {
		t.Fatalf("expected capture of (1,1), got %+v", first)
	}
	if first.Board.At(pt(1, 1)) != game.Empty {
		t.Fatalf("captured cell must be empty on the returned board")
	}
}

func TestProcessMoveOccupied(t *testing.T) {
	board := boardFromRows(t,
		"X....",
		".O...",
		".....",
		".....",
		".....",
	)
	tests := []struct {
		name string
		move game.Move
	}{
		{name: "own stone", move: game.Move{Point: pt(0, 0), Player: game.Black}},
		{name: "opponent stone", move: game.Move{Point: pt(1, 1), Player: game.Black}},
		{name: "out of bounds", move: game.Move{Point: pt(5, 0), Player: game.White}},
		{name: "negative coordinate", move: game.Move{Point: pt(-1, 2), Player: game.White}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ProcessMove(board, tt.move, nil, 0, MoveOptions{})
			if res.Valid || !errors.Is(res.Reason, errors.ErrOccupied) {
				t.Fatalf("expected occupied, got valid=%v reason=%v", res.Valid, res.Reason)
			}
		})
	}
}

func TestProcessMoveOccupiedBeatsKo(t *testing.T) {
	board := boardFromRows(t,
		"X....",
		".....",
		".....",
		".....",
		".....",
	)
	ko := &game.KoState{Point: pt(0, 0), TurnIndex: 4}
	res := ProcessMove(board, game.Move{Point: pt(0, 0), Player: game.White}, ko, 4, MoveOptions{})
	if !errors.Is(res.Reason, errors.ErrOccupied) {
		t.Fatalf("expected occupied to win over ko, got %v", res.Reason)
	}
}

func TestProcessMoveSuicide(t *testing.T) {
	board := boardFromRows(t,
		".O...",
		"O....",
		".....",
		".....",
		".....",
	)
	move := game.Move{Point: pt(0, 0), Player: game.Black}

	res := ProcessMove(board, move, nil, 0, MoveOptions{})
	if res.Valid || !errors.Is(res.Reason, errors.ErrSuicide) {
		t.Fatalf("expected suicide, got valid=%v reason=%v", res.Valid, res.Reason)
	}

	probe := ProcessMove(board, move, nil, 0, MoveOptions{IgnoreSuicide: true})
	if !probe.Valid || probe.Board.At(pt(0, 0)) != game.Black {
		t.Fatalf("expected probe placement to be accepted, got %+v", probe)
	}
	if board.At(pt(0, 0)) != game.Empty {
		t.Fatalf("probe must not touch the input board")
	}
}

func TestProcessMoveCaptureFreesLiberty(t *testing.T) {
	// пустой угол окружён белыми, у которых нет других дамэ
	board := boardFromRows(t,
		".OX..",
		"OX...",
		"X....",
		".....",
		".....",
	)
	res := ProcessMove(board, game.Move{Point: pt(0, 0), Player: game.Black}, nil, 0, MoveOptions{})
	if !res.Valid {
		t.Fatalf("expected capturing move to be legal, got %v", res.Reason)
	}
	if len(res.Captured) != 2 {
		t.Fatalf("expected both white stones captured, got %v", res.Captured)
	}
	for _, p := range []game.Point{pt(1, 0), pt(0, 1)} {
		if res.Board.At(p) != game.Empty {
			t.Errorf("expected %v to be empty after capture", p)
		}
	}
	if res.Ko != nil {
		t.Fatalf("two-stone capture must not create ko, got %+v", res.Ko)
	}
}

func TestProcessMoveCapturesNeighbourGroupOnce(t *testing.T) {
	// белая группа касается нового камня с двух сторон
	board := boardFromRows(t,
		"OOX..",
		"O.X..",
		"XX...",
		".....",
		".....",
	)
	res := ProcessMove(board, game.Move{Point: pt(1, 1), Player: game.Black}, nil, 0, MoveOptions{})
	if !res.Valid {
		t.Fatalf("expected capture, got %v", res.Reason)
	}
	if len(res.Captured) != 3 {
		t.Fatalf("expected each captured stone reported once, got %v", res.Captured)
	}
}

func koPosition(t *testing.T) *replay {
	t.Helper()
	return &replay{
		board: boardFromRows(t,
			".XO..",
			"XO.O.",
			".XO..",
			".....",
			".....",
		),
		history: make([]game.Move, 10),
	}
}

func TestKoForbidsImmediateRecapture(t *testing.T) {
	r := koPosition(t)
	res := r.play(t, game.Black, pt(2, 1))
	if len(res.Captured) != 1 || res.Captured[0] != pt(1, 1) {
		t.Fatalf("expected capture of (1,1), got %v", res.Captured)
	}
	if res.Ko == nil || res.Ko.Point != pt(1, 1) || res.Ko.TurnIndex != 11 {
		t.Fatalf("expected ko at (1,1) for turn 11, got %+v", res.Ko)
	}

	retake := ProcessMove(r.board, game.Move{Point: pt(1, 1), Player: game.White}, r.ko, len(r.history), MoveOptions{})
	if retake.Valid || !errors.Is(retake.Reason, errors.ErrKo) {
		t.Fatalf("expected ko rejection, got valid=%v reason=%v", retake.Valid, retake.Reason)
	}

	elsewhere := ProcessMove(r.board, game.Move{Point: pt(4, 4), Player: game.White}, r.ko, len(r.history), MoveOptions{})
	if !elsewhere.Valid {
		t.Fatalf("expected a move elsewhere to be legal, got %v", elsewhere.Reason)
	}
}

func TestKoLapsesAfterOnePly(t *testing.T) {
	r := koPosition(t)
	r.play(t, game.Black, pt(2, 1))
	r.play(t, game.White, pt(4, 4))
	r.play(t, game.Black, pt(4, 3))

	res := r.play(t, game.White, pt(1, 1))
	if len(res.Captured) != 1 || res.Captured[0] != pt(2, 1) {
		t.Fatalf("expected white to retake (2,1), got %v", res.Captured)
	}
	if res.Ko == nil || res.Ko.Point != pt(2, 1) || res.Ko.TurnIndex != len(r.history) {
		t.Fatalf("expected fresh ko at (2,1), got %+v", res.Ko)
	}
}

func TestCaptureScenarioOnEmptyBoard(t *testing.T) {
	r := &replay{board: game.NewBoard(9)}
	r.play(t, game.Black, pt(4, 4))
	r.play(t, game.White, pt(4, 3))
	r.play(t, game.Black, pt(3, 3))
	r.play(t, game.White, pt(0, 0))
	r.play(t, game.Black, pt(5, 3))
	r.play(t, game.White, pt(8, 8))

	res := r.play(t, game.Black, pt(4, 2))
	if !reflect.DeepEqual(res.Captured, []game.Point{pt(4, 3)}) {
		t.Fatalf("expected captured [(4,3)], got %v", res.Captured)
	}
	if res.Ko != nil {
		t.Fatalf("expected no ko, got %+v", res.Ko)
	}
	if r.board.At(pt(4, 3)) != game.Empty {
		t.Fatalf("expected (4,3) to be empty")
	}
}
