package game

import (
	"strings"
	"testing"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/usecase/modes"
)

func sgfFor(s game.Session, viewerID string) string {
	record := PrepareSgfFor(s, viewerID)
	return record.String()
}

func TestSgfHidesUnseenHiddenMoves(t *testing.T) {
	o := newOrchestrator()
	s := startSession(t, o, game.ModeHidden, smallSettings(game.ModeHidden, 9))

	s = act(t, o, s, "alice", game.Action{Type: game.ActionStartHidden}, t0)
	s = act(t, o, s, "alice", game.Action{Type: game.ActionPlaceHidden, Point: pt(2, 2)}, t0)

	for _, viewer := range []string{"bob", ""} {
		if record := sgfFor(s, viewer); strings.Contains(record, "B[cc]") {
			t.Fatalf("hidden move leaked to %q: %s", viewer, record)
		}
	}
	if record := sgfFor(s, "alice"); !strings.Contains(record, ";B[cc]C[hidden]") {
		t.Fatalf("owner must see own hidden move: %s", record)
	}

	s = act(t, o, s, "bob", game.Action{Type: game.ActionResign}, t0)
	if record := sgfFor(s, "bob"); !strings.Contains(record, ";B[cc]C[hidden]") {
		t.Fatalf("finished game must be recorded in full: %s", record)
	}
}

func TestSgfKeepsCapturedBaseStones(t *testing.T) {
	s := game.Session{
		Mode:      game.ModeBase,
		Status:    game.StatusPlaying,
		CreatedAt: t0,
		Settings:  game.Settings{BoardSize: 9},
		Players:   [2]game.Player{{ID: "alice", Color: game.White}, {ID: "bob", Color: game.Black}},
	}
	b := &game.BasePlacementState{}
	b.Stones = [2][]game.Point{{pt(0, 0), pt(4, 4)}, {pt(8, 8)}}
	modes.Sanitize(b, 9)
	s.Ext.Base = b

	modes.ForgetCaptured(&s, []game.Point{pt(0, 0)})
	if len(s.Ext.Base.Stones[0]) != 1 {
		t.Fatalf("captured base stone must leave the live list, got %v", s.Ext.Base.Stones[0])
	}

	record := sgfFor(s, "alice")
	if !strings.Contains(record, "AW[aa][ee]AB[ii]") {
		t.Fatalf("setup must keep the initial placement: %s", record)
	}
}
