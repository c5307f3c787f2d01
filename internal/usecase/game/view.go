package game

import (
	"time"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/usecase/modes"
)

// BuildView готовит снимок для участника viewerID. Для зрителя viewerID
// пустой, и он видит только открытую информацию.
func BuildView(s game.Session, viewerID string, now time.Time) game.SessionView {
	slot, isPlayer := s.SlotOf(viewerID)
	you := game.Empty
	if isPlayer {
		you = s.Players[slot].Color
	}

	v := game.SessionView{
		ID:            s.ID,
		PublicKey:     s.PublicKey,
		Mode:          s.Mode,
		Status:        s.Status,
		Board:         modes.VisibleBoard(&s, you),
		CurrentPlayer: s.CurrentPlayer,
		You:           you,
		Players:       s.Players,
		Captures:      s.Captures,
		Komi:          s.Komi,
		MoveCount:     len(s.Moves),
		Ko:            s.Ko,
		ItemUse:       s.ItemUse,
		Result:        s.Result,
	}
	if s.PhaseDeadline != nil {
		ms := s.PhaseDeadline.UnixMilli()
		v.PhaseDeadline = &ms
	}

	if c := s.Ext.Clock; c != nil {
		clock := *c
		if s.Status == game.StatusPlaying || s.Status.IsItemUsage() {
			clock.Remaining = game.PerColor[time.Duration]{
				Black: modes.RemainingNow(c, game.Black, s.CurrentPlayer, now),
				White: modes.RemainingNow(c, game.White, s.CurrentPlayer, now),
			}
		}
		v.Clock = &clock
	}

	if isPlayer && you.IsPlayer() {
		items := make(map[string]int)
		if con := s.Ext.Concealment; con != nil {
			items["hidden"] = con.HiddenLeft.Get(you)
			items["scans"] = con.ScansLeft.Get(you)
		}
		if rel := s.Ext.Relocation; rel != nil {
			items["missiles"] = rel.MissilesLeft.Get(you)
		}
		if len(items) > 0 {
			v.Items = items
		}
	}

	if b := s.Ext.Base; b != nil {
		if isPlayer {
			v.BaseStones = append([]game.Point(nil), b.Stones[slot]...)
		}
		v.Bids = visibleBids(s, b, slot, isPlayer)
	}

	v.LastAction = visibleAction(s, you)
	return v
}

// visibleBids: до раскрытия участник видит только свою ставку.
func visibleBids(s game.Session, b *game.BasePlacementState, slot int, isPlayer bool) []*game.KomiBid {
	switch s.Status {
	case game.StatusBasePlacement, game.StatusWaitingOpponent:
		return nil
	case game.StatusKomiBidding:
		if !isPlayer || b.Bids[slot] == nil {
			return nil
		}
		bids := make([]*game.KomiBid, 2)
		own := *b.Bids[slot]
		bids[slot] = &own
		return bids
	}
	bids := make([]*game.KomiBid, 2)
	for i, bid := range b.Bids {
		if bid != nil {
			cp := *bid
			bids[i] = &cp
		}
	}
	return bids
}

func visibleAction(s game.Session, viewer game.Color) *game.ActionRecord {
	if s.LastAction == nil {
		return nil
	}
	rec := *s.LastAction
	if rec.Type == game.ActionPlaceHidden && rec.Player != viewer && modes.IsHiddenFrom(s.Ext.Concealment, rec.Point, viewer) {
		rec.Point = game.PassPoint
	}
	return &rec
}
