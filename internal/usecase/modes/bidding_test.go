package modes

import (
	"testing"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
)

func bidPair(t *testing.T, b *game.BasePlacementState, first, second game.KomiBid) {
	t.Helper()
	if err := SubmitBid(b, 0, first, 50); err != nil {
		t.Fatalf("first bid: %v", err)
	}
	if err := SubmitBid(b, 1, second, 50); err != nil {
		t.Fatalf("second bid: %v", err)
	}
}

func TestSubmitBidValidation(t *testing.T) {
	b := newBase(1)
	tests := []struct {
		name string
		bid  game.KomiBid
		want error
	}{
		{name: "no color", bid: game.KomiBid{Color: game.Empty, Komi: 1}, want: errors.ErrInvalidBid},
		{name: "negative komi", bid: game.KomiBid{Color: game.Black, Komi: -1}, want: errors.ErrInvalidBid},
		{name: "above max", bid: game.KomiBid{Color: game.White, Komi: 51}, want: errors.ErrInvalidBid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SubmitBid(b, 0, tt.bid, 50); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if err := SubmitBid(b, 0, game.KomiBid{Color: game.Black, Komi: 3}, 50); err != nil {
		t.Fatalf("valid bid rejected: %v", err)
	}
	if err := SubmitBid(b, 0, game.KomiBid{Color: game.White, Komi: 3}, 50); !errors.Is(err, errors.ErrAlreadySubmitted) {
		t.Fatalf("expected write-once bids, got %v", err)
	}
}

func TestResolveBids(t *testing.T) {
	tests := []struct {
		name       string
		first      game.KomiBid
		second     game.KomiBid
		wantColors [2]game.Color
		wantKomi   float64
	}{
		{
			name:       "different colors keep base komi",
			first:      game.KomiBid{Color: game.White, Komi: 10},
			second:     game.KomiBid{Color: game.Black, Komi: 3},
			wantColors: [2]game.Color{game.White, game.Black},
			wantKomi:   6.5,
		},
		{
			name:       "higher bid for black pays komi",
			first:      game.KomiBid{Color: game.Black, Komi: 2},
			second:     game.KomiBid{Color: game.Black, Komi: 7},
			wantColors: [2]game.Color{game.White, game.Black},
			wantKomi:   13.5,
		},
		{
			name:       "higher bid for white concedes komi",
			first:      game.KomiBid{Color: game.White, Komi: 4},
			second:     game.KomiBid{Color: game.White, Komi: 1},
			wantColors: [2]game.Color{game.White, game.Black},
			wantKomi:   2.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBase(1)
			bidPair(t, b, tt.first, tt.second)

			out := ResolveBids(b, 6.5, &seqRand{})

			if out.Rebid {
				t.Fatalf("unexpected rebid")
			}
			if out.Colors != tt.wantColors || out.Komi != tt.wantKomi {
				t.Fatalf("got colors=%v komi=%v, want colors=%v komi=%v", out.Colors, out.Komi, tt.wantColors, tt.wantKomi)
			}
			if b.Round != 1 {
				t.Fatalf("round must stay 1, got %d", b.Round)
			}
		})
	}
}

func TestResolveBidsTieRebidsOnceThenFlips(t *testing.T) {
	b := newBase(1)
	tie := game.KomiBid{Color: game.Black, Komi: 5}
	bidPair(t, b, tie, tie)

	out := ResolveBids(b, 0.5, &seqRand{vals: []int{1}})
	if !out.Rebid || b.Round != 2 {
		t.Fatalf("expected a second round, got %+v round=%d", out, b.Round)
	}
	if b.Bids[0] != nil || b.Bids[1] != nil || b.PreviousBids[0] == nil {
		t.Fatalf("bids must be cleared and kept as previous")
	}

	second := game.KomiBid{Color: game.Black, Komi: 8}
	bidPair(t, b, second, second)
	out = ResolveBids(b, 0.5, &seqRand{vals: []int{1}})

	if out.Rebid || !out.CoinFlip || out.Winner != 1 {
		t.Fatalf("expected coin flip won by the second player, got %+v", out)
	}
	if out.Colors != [2]game.Color{game.White, game.Black} {
		t.Fatalf("colors = %v", out.Colors)
	}
	if out.Komi != 8.5 {
		t.Fatalf("komi must use the second round bid, got %v", out.Komi)
	}
}

func TestConfirm(t *testing.T) {
	b := newBase(1)
	if err := Confirm(b, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Confirm(b, 1); !errors.Is(err, errors.ErrAlreadySubmitted) {
		t.Fatalf("expected already submitted, got %v", err)
	}
	if BothConfirmed(b) {
		t.Fatalf("only one player confirmed")
	}
	_ = Confirm(b, 0)
	if !BothConfirmed(b) {
		t.Fatalf("expected both confirmed")
	}
}
