package repo

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"baduk_arena/internal/domain/game"
	gameUC "baduk_arena/internal/usecase/game"
	moveRPC "baduk_arena/microservices/proto"
)

// BotRepository спрашивает ход ИИ у внешнего сервиса по gRPC.
type BotRepository struct {
	client moveRPC.MoveServiceClient
	log    *zap.SugaredLogger
}

func NewBotRepository(conn grpc.ClientConnInterface, log *zap.SugaredLogger) *BotRepository {
	return &BotRepository{
		client: moveRPC.NewMoveServiceClient(conn),
		log:    log,
	}
}

func (b *BotRepository) GenerateMove(ctx context.Context, s game.Session, player game.Color) (game.Point, error) {
	req, err := moveRPC.EncodePosition(gameUC.PositionFor(s, player))
	if err != nil {
		return game.PassPoint, fmt.Errorf("encode position: %w", err)
	}
	resp, err := b.client.GenerateMove(ctx, req)
	if err != nil {
		return game.PassPoint, fmt.Errorf("move service: %w", err)
	}
	move := moveRPC.DecodeMove(resp)
	if !move.IsPass() && !s.Board.InBounds(move) {
		return game.PassPoint, fmt.Errorf("move service returned %s outside the board", move)
	}
	b.log.Infof("session %s: bot move %s", s.ID, move)
	return move, nil
}
