package usecase

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	gameUC "baduk_arena/internal/usecase/game"
	moveRPC "baduk_arena/microservices/proto"
)

type MoveUseCase struct {
	log *zap.SugaredLogger
}

func NewMoveUseCase(log *zap.SugaredLogger) *MoveUseCase {
	return &MoveUseCase{log: log}
}

func (m *MoveUseCase) GenerateMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	// Преобразуем RPC-структуру в доменную модель
	pos, err := moveRPC.DecodePosition(in)
	if err != nil {
		m.log.Warnf("bad move request: %v", err)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err = ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	move := gameUC.RandomMove(pos)
	m.log.Infof("generated move %s for %s at turn %d", move, pos.Player, pos.Turn)
	return moveRPC.EncodeMove(move), nil
}
