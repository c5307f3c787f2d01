package game

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/usecase/modes"
	"baduk_arena/internal/usecase/rules"
)

// MoveProvider даёт ход за ИИ. game.PassPoint означает пас.
type MoveProvider interface {
	GenerateMove(ctx context.Context, s game.Session, player game.Color) (game.Point, error)
}

// RandomMoveProvider ходит в случайную легальную точку, не занимая
// собственные глаза. На пас соперника отвечает пасом.
type RandomMoveProvider struct{}

func (RandomMoveProvider) GenerateMove(_ context.Context, s game.Session, player game.Color) (game.Point, error) {
	return RandomMove(PositionFor(s, player)), nil
}

// PositionFor собирает позицию с точки зрения player.
func PositionFor(s game.Session, player game.Color) game.Position {
	pos := game.Position{
		Board:  modes.VisibleBoard(&s, player),
		Player: player,
		Turn:   len(s.Moves),
		Seed:   s.Seed,
	}
	if s.Ko != nil {
		ko := *s.Ko
		pos.Ko = &ko
	}
	if n := len(s.Moves); n > 0 && s.Moves[n-1].IsPass() && s.Moves[n-1].Player != player {
		pos.OpponentPassed = true
	}
	return pos
}

func RandomMove(pos game.Position) game.Point {
	if pos.OpponentPassed {
		return game.PassPoint
	}
	var candidates []game.Point
	for _, p := range pos.Board.Points() {
		if !pos.Board.IsEmpty(p) || ownEye(pos.Board, p, pos.Player) {
			continue
		}
		if rules.IsLegal(pos.Board, game.Move{Point: p, Player: pos.Player}, pos.Ko, pos.Turn) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return game.PassPoint
	}
	rng := rand.New(rand.NewSource(pos.Seed + int64(pos.Turn)))
	return candidates[rng.Intn(len(candidates))]
}

func ownEye(board game.Board, p game.Point, player game.Color) bool {
	for _, n := range p.Neighbors() {
		if board.InBounds(n) && board.At(n) != player {
			return false
		}
	}
	return true
}

// FallbackMoveProvider спрашивает основной источник и при ошибке
// переходит на запасной.
type FallbackMoveProvider struct {
	Primary  MoveProvider
	Fallback MoveProvider
	Log      *zap.SugaredLogger
}

func (f FallbackMoveProvider) GenerateMove(ctx context.Context, s game.Session, player game.Color) (game.Point, error) {
	if f.Primary != nil {
		p, err := f.Primary.GenerateMove(ctx, s, player)
		if err == nil {
			return p, nil
		}
		if f.Log != nil {
			f.Log.Warnf("session %s: bot move failed, using fallback: %v", s.ID, err)
		}
	}
	return f.Fallback.GenerateMove(ctx, s, player)
}
