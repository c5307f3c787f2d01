package modes

import (
	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
)

// NeutralBid подставляется за участника, не сделавшего ставку вовремя.
var NeutralBid = game.KomiBid{Color: game.Black, Komi: 0}

// SubmitBid принимает ставку участника: желаемый цвет и доплату коми.
func SubmitBid(b *game.BasePlacementState, slot int, bid game.KomiBid, maxBid int) error {
	if b.Bids[slot] != nil {
		return errors.ErrAlreadySubmitted
	}
	if !bid.Color.IsPlayer() || bid.Komi < 0 || (maxBid > 0 && bid.Komi > maxBid) {
		return errors.ErrInvalidBid
	}
	b.Bids[slot] = &bid
	return nil
}

func BidsComplete(b *game.BasePlacementState) bool {
	return b.Bids[0] != nil && b.Bids[1] != nil
}

// BidOutcome: итог аукциона. При Rebid цвета не назначены, и начинается
// второй раунд ставок.
type BidOutcome struct {
	Rebid    bool
	Colors   [2]game.Color
	Komi     float64
	Winner   int
	CoinFlip bool
}

// ResolveBids разрешает ставки:
//   - разные цвета: каждый получает свой, коми базовое;
//   - один цвет: цвет получает большая ставка, и она сдвигает коми
//     в пользу соперника;
//   - равные ставки на один цвет: второй раунд, а в нём жребий.
func ResolveBids(b *game.BasePlacementState, baseKomi float64, rng Rand) BidOutcome {
	first, second := *b.Bids[0], *b.Bids[1]
	if first.Color != second.Color {
		return BidOutcome{
			Colors: [2]game.Color{first.Color, second.Color},
			Komi:   baseKomi,
			Winner: -1,
		}
	}

	winner := -1
	switch {
	case first.Komi > second.Komi:
		winner = 0
	case second.Komi > first.Komi:
		winner = 1
	case b.Round < 2:
		b.PreviousBids = b.Bids
		b.Bids = [2]*game.KomiBid{}
		b.Round = 2
		return BidOutcome{Rebid: true, Winner: -1}
	default:
		winner = rng.Intn(2)
		b.CoinFlip = true
	}

	won := *b.Bids[winner]
	out := BidOutcome{Winner: winner, CoinFlip: b.CoinFlip}
	out.Colors[winner] = won.Color
	out.Colors[1-winner] = won.Color.Opponent()
	if won.Color == game.Black {
		out.Komi = baseKomi + float64(won.Komi)
	} else {
		out.Komi = baseKomi - float64(won.Komi)
	}
	return out
}

func Confirm(b *game.BasePlacementState, slot int) error {
	if b.Confirmed[slot] {
		return errors.ErrAlreadySubmitted
	}
	b.Confirmed[slot] = true
	return nil
}

func BothConfirmed(b *game.BasePlacementState) bool {
	return b.Confirmed[0] && b.Confirmed[1]
}
