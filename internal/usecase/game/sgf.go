package game

import (
	"fmt"
	"strconv"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/domain/sgf"
	"baduk_arena/internal/usecase/modes"
)

// PrepareSgf собирает полную запись партии. Базовые камни идут в корень как
// расстановка AB/AW, скрытые ходы помечаются комментарием.
func PrepareSgf(s game.Session) sgf.SGF {
	return prepareSgf(s, func(game.Move) bool { return true })
}

// PrepareSgfFor: запись глазами viewerID. Пока партия идёт, скрытые ходы,
// которых участник не видит, в запись не попадают.
func PrepareSgfFor(s game.Session, viewerID string) sgf.SGF {
	con := s.Ext.Concealment
	if s.Status.IsTerminal() || con == nil {
		return PrepareSgf(s)
	}
	you := game.Empty
	if slot, ok := s.SlotOf(viewerID); ok {
		you = s.Players[slot].Color
	}
	return prepareSgf(s, func(m game.Move) bool {
		return !m.Hidden || m.Player == you || !modes.IsHiddenFrom(con, m.Point, you)
	})
}

func prepareSgf(s game.Session, visible func(game.Move) bool) sgf.SGF {
	root := sgf.Node{}
	root.Add("FF", "4")
	root.Add("GM", "1")
	root.Add("SZ", strconv.Itoa(s.Settings.BoardSize))
	if p, ok := s.PlayerByColor(game.Black); ok {
		root.Add("PB", playerName(p))
	}
	if p, ok := s.PlayerByColor(game.White); ok {
		root.Add("PW", playerName(p))
	}
	root.Add("DT", s.CreatedAt.Format("2006-01-02"))
	root.Add("RE", sgfResult(s.Result))
	root.Add("KM", strconv.FormatFloat(s.Komi, 'f', 1, 64))
	root.Add("RU", "Chinese")
	root.Add("C", fmt.Sprintf("mode: %s", s.Mode))

	if b := s.Ext.Base; b != nil && s.Players[0].Color.IsPlayer() {
		for slot := range b.Initial {
			key := "A" + sgf.ColorKey(s.Players[slot].Color)
			for _, p := range b.Initial[slot] {
				root.Add(key, sgf.Coord(p))
			}
		}
	}

	tree := &sgf.GameTree{Nodes: []sgf.Node{root}}
	for _, m := range s.Moves {
		if !visible(m) {
			continue
		}
		node := sgf.Node{}
		node.Add(sgf.ColorKey(m.Player), sgf.Coord(m.Point))
		if m.Hidden {
			node.Add("C", "hidden")
		}
		tree.Nodes = append(tree.Nodes, node)
	}
	return sgf.SGF{Root: tree}
}

func playerName(p game.Player) string {
	if p.AI {
		return "AI"
	}
	return p.ID
}

func sgfResult(r *game.Result) string {
	if r == nil {
		return "?"
	}
	if r.Reason == game.ResultReasonAbandoned {
		return "Void"
	}
	if !r.Winner.IsPlayer() {
		return "0"
	}
	winner := sgf.ColorKey(r.Winner)
	switch r.Reason {
	case game.ResultReasonResign:
		return winner + "+R"
	case game.ResultReasonTimeout:
		return winner + "+T"
	case game.ResultReasonScore:
		if r.Score != nil {
			diff := r.Score.Black - r.Score.White
			if diff < 0 {
				diff = -diff
			}
			return winner + "+" + strconv.FormatFloat(diff, 'f', 1, 64)
		}
	}
	return winner + "+"
}
