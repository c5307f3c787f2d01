package modes

import "baduk_arena/internal/domain/game"

func NewConcealment(settings game.Settings) *game.ConcealmentState {
	value := settings.HiddenStoneValue
	if value <= 0 {
		value = 1
	}
	return &game.ConcealmentState{
		HiddenLeft: game.PerColor[int]{Black: settings.HiddenStones, White: settings.HiddenStones},
		ScansLeft:  game.PerColor[int]{Black: settings.Scans, White: settings.Scans},
		StoneValue: value,
	}
}

func RecordHiddenStone(c *game.ConcealmentState, p game.Point, owner game.Color) {
	c.Stones = append(c.Stones, game.HiddenStone{Point: p, Owner: owner})
}

// IsHiddenFrom сообщает, что viewer не видит камень в точке p.
// Владелец видит свои скрытые камни всегда, соперник только после скана.
func IsHiddenFrom(c *game.ConcealmentState, p game.Point, viewer game.Color) bool {
	if c == nil {
		return false
	}
	idx := c.Find(p)
	if idx < 0 {
		return false
	}
	hs := c.Stones[idx]
	if hs.Revealed || hs.Owner == viewer {
		return false
	}
	return !hs.Scanned || !viewer.IsPlayer()
}

// Reveal раскрывает скрытый камень для всех. false, если раскрывать нечего.
func Reveal(c *game.ConcealmentState, p game.Point) bool {
	idx := c.Find(p)
	if idx < 0 || c.Stones[idx].Revealed {
		return false
	}
	c.Stones[idx].Revealed = true
	return true
}

// Scan проверяет точку; найденный камень соперника становится виден сканирующему.
func Scan(c *game.ConcealmentState, scanner game.Color, p game.Point) bool {
	idx := c.Find(p)
	if idx < 0 {
		return false
	}
	hs := &c.Stones[idx]
	if hs.Owner == scanner || hs.Revealed {
		return false
	}
	hs.Scanned = true
	return true
}

// RevealAfterMove раскрывает скрытые камни хода mover, участвовавшие в
// снятии: соседние со снятыми точками и сам поставленный камень.
func RevealAfterMove(c *game.ConcealmentState, mover game.Color, placed game.Point, captured []game.Point) []game.Point {
	if len(captured) == 0 {
		return nil
	}
	var revealed []game.Point
	try := func(p game.Point) {
		idx := c.Find(p)
		if idx < 0 || c.Stones[idx].Owner != mover {
			return
		}
		if Reveal(c, p) {
			revealed = append(revealed, p)
		}
	}
	try(placed)
	for _, cp := range captured {
		for _, n := range cp.Neighbors() {
			try(n)
		}
	}
	return revealed
}

// VisibleBoard: доска глазами viewer: чужие нераскрытые камни стёрты.
func VisibleBoard(s *game.Session, viewer game.Color) game.Board {
	board := s.Board.Clone()
	c := s.Ext.Concealment
	if c == nil {
		return board
	}
	for _, hs := range c.Stones {
		if IsHiddenFrom(c, hs.Point, viewer) {
			board.Remove(hs.Point)
		}
	}
	return board
}

func hiddenStoneValue(c *game.ConcealmentState, p game.Point, owner game.Color) (int, bool) {
	if c == nil {
		return 0, false
	}
	idx := c.Find(p)
	if idx < 0 || c.Stones[idx].Owner != owner {
		return 0, false
	}
	return c.StoneValue, true
}

func forgetHiddenStones(c *game.ConcealmentState, captured []game.Point) {
	if len(c.Stones) == 0 || len(captured) == 0 {
		return
	}
	gone := make(map[game.Point]struct{}, len(captured))
	for _, p := range captured {
		gone[p] = struct{}{}
	}
	kept := c.Stones[:0]
	for _, hs := range c.Stones {
		if _, ok := gone[hs.Point]; !ok {
			kept = append(kept, hs)
		}
	}
	c.Stones = kept
}
