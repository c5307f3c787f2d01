package rules

import (
	"testing"

	"baduk_arena/internal/domain/game"
)

func TestFindGroup(t *testing.T) {
	board := boardFromRows(t,
		".....",
		".XX..",
		".XO..",
		".....",
		".....",
	)

	tests := []struct {
		name        string
		seed        game.Point
		color       game.Color
		wantOK      bool
		wantStones  int
		wantLiberty int
	}{
		{name: "three stone black group", seed: pt(1, 1), color: game.Black, wantOK: true, wantStones: 3, wantLiberty: 6},
		{name: "single white stone", seed: pt(2, 2), color: game.White, wantOK: true, wantStones: 1, wantLiberty: 2},
		{name: "seed holds other color", seed: pt(2, 2), color: game.Black, wantOK: false},
		{name: "empty seed", seed: pt(0, 0), color: game.Black, wantOK: false},
		{name: "out of bounds seed", seed: pt(7, 7), color: game.Black, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := FindGroup(board, tt.seed, tt.color)
			if ok != tt.wantOK {
				t.Fatalf("FindGroup ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if len(g.Stones) != tt.wantStones {
				t.Errorf("stones = %d, want %d", len(g.Stones), tt.wantStones)
			}
			if g.LibertyCount != tt.wantLiberty || len(g.LibertyPoints) != tt.wantLiberty {
				t.Errorf("liberties = %d (%d points), want %d", g.LibertyCount, len(g.LibertyPoints), tt.wantLiberty)
			}
		})
	}
}

func TestFindGroupSharedLibertyCountedOnce(t *testing.T) {
	// (1,0) соседствует с тремя камнями группы
	board := boardFromRows(t,
		"O.O..",
		"OOO..",
		".....",
		".....",
		".....",
	)
	g, ok := FindGroup(board, pt(0, 0), game.White)
	if !ok {
		t.Fatalf("expected white group")
	}
	if len(g.Stones) != 5 {
		t.Fatalf("expected 5 stones, got %d", len(g.Stones))
	}
	if _, ok := g.LibertyPoints[pt(1, 0)]; !ok {
		t.Fatalf("expected (1,0) to be a liberty")
	}
	if g.LibertyCount != 6 {
		t.Fatalf("expected 6 distinct liberties, got %d", g.LibertyCount)
	}
}

func TestGetAllGroupsAndLiberties(t *testing.T) {
	board := boardFromRows(t,
		"X...X",
		".....",
		"..X..",
		".....",
		"X...X",
	)
	groups := GetAllGroups(board, game.Black)
	if len(groups) != 5 {
		t.Fatalf("expected 5 black groups, got %d", len(groups))
	}
	if groups[0].Stones[0] != pt(0, 0) {
		t.Fatalf("expected scan order to start at (0,0), got %v", groups[0].Stones[0])
	}
	libs := GetAllLiberties(board, game.Black)
	if len(libs) != 4*2+4 {
		t.Fatalf("expected 12 liberties in union, got %d", len(libs))
	}
	if len(GetAllGroups(board, game.White)) != 0 {
		t.Fatalf("expected no white groups")
	}
}
