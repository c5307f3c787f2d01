package modes

import (
	"reflect"
	"testing"

	"baduk_arena/internal/domain/game"
)

func TestHiddenStoneVisibility(t *testing.T) {
	c := NewConcealment(game.Settings{HiddenStones: 1, Scans: 1})
	RecordHiddenStone(c, pt(2, 2), game.Black)

	if IsHiddenFrom(c, pt(2, 2), game.Black) {
		t.Fatalf("owner must see own hidden stone")
	}
	if !IsHiddenFrom(c, pt(2, 2), game.White) {
		t.Fatalf("opponent must not see the stone")
	}

	if Scan(c, game.Black, pt(2, 2)) {
		t.Fatalf("scanning own stone finds nothing")
	}
	if !Scan(c, game.White, pt(2, 2)) {
		t.Fatalf("expected scan hit")
	}
	if IsHiddenFrom(c, pt(2, 2), game.White) {
		t.Fatalf("scanned stone must be visible to the scanner")
	}
	if !IsHiddenFrom(c, pt(2, 2), game.Empty) {
		t.Fatalf("scan must not reveal the stone to spectators")
	}

	if !Reveal(c, pt(2, 2)) || Reveal(c, pt(2, 2)) {
		t.Fatalf("reveal must succeed exactly once")
	}
	if IsHiddenFrom(c, pt(2, 2), game.Empty) {
		t.Fatalf("revealed stone is public")
	}
}

func TestRevealAfterMove(t *testing.T) {
	c := NewConcealment(game.Settings{})
	RecordHiddenStone(c, pt(1, 0), game.Black)
	RecordHiddenStone(c, pt(3, 3), game.Black)
	RecordHiddenStone(c, pt(0, 2), game.White)

	if got := RevealAfterMove(c, game.Black, pt(0, 1), nil); got != nil {
		t.Fatalf("no captures, nothing to reveal, got %v", got)
	}

	got := RevealAfterMove(c, game.Black, pt(0, 1), []game.Point{pt(0, 0)})
	if want := []game.Point{pt(1, 0)}; !reflect.DeepEqual(got, want) {
		t.Fatalf("revealed = %v, want %v", got, want)
	}
	if c.Stones[1].Revealed || c.Stones[2].Revealed {
		t.Fatalf("unrelated stones must stay hidden")
	}
}

func TestVisibleBoardMasksHiddenStones(t *testing.T) {
	s := &game.Session{Board: game.NewBoard(5)}
	s.Board.Set(pt(1, 1), game.Black)
	s.Board.Set(pt(3, 3), game.White)
	s.Ext.Concealment = NewConcealment(game.Settings{})
	RecordHiddenStone(s.Ext.Concealment, pt(1, 1), game.Black)

	white := VisibleBoard(s, game.White)
	if white.At(pt(1, 1)) != game.Empty || white.At(pt(3, 3)) != game.White {
		t.Fatalf("white must not see the hidden black stone")
	}
	black := VisibleBoard(s, game.Black)
	if black.At(pt(1, 1)) != game.Black {
		t.Fatalf("black must see its own stone")
	}
	if s.Board.At(pt(1, 1)) != game.Black {
		t.Fatalf("masking must not touch the real board")
	}
}
