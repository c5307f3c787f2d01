package proto

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"baduk_arena/internal/domain/game"
)

const (
	ServiceName        = "baduk.MoveService"
	GenerateMoveMethod = "/baduk.MoveService/GenerateMove"
)

// Сообщения сервиса передаются как google.protobuf.Struct, поэтому
// сгенерированный код не нужен: достаточно описания сервиса.

type MoveServiceServer interface {
	GenerateMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type MoveServiceClient interface {
	GenerateMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type moveServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMoveServiceClient(cc grpc.ClientConnInterface) MoveServiceClient {
	return &moveServiceClient{cc: cc}
}

func (c *moveServiceClient) GenerateMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GenerateMoveMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterMoveServiceServer(s grpc.ServiceRegistrar, srv MoveServiceServer) {
	s.RegisterService(&moveServiceDesc, srv)
}

var moveServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MoveServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateMove", Handler: generateMoveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "move_service.proto",
}

func generateMoveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MoveServiceServer).GenerateMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GenerateMoveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MoveServiceServer).GenerateMove(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func EncodePosition(pos game.Position) (*structpb.Struct, error) {
	cells := make([]any, len(pos.Board.Cells))
	for i, c := range pos.Board.Cells {
		cells[i] = int(c)
	}
	fields := map[string]any{
		"board_size":      pos.Board.Size,
		"cells":           cells,
		"player":          int(pos.Player),
		"turn":            pos.Turn,
		"opponent_passed": pos.OpponentPassed,
		"seed":            strconv.FormatInt(pos.Seed, 10),
	}
	if pos.Ko != nil {
		fields["ko"] = map[string]any{
			"x":          pos.Ko.Point.X,
			"y":          pos.Ko.Point.Y,
			"turn_index": pos.Ko.TurnIndex,
		}
	}
	return structpb.NewStruct(fields)
}

func DecodePosition(in *structpb.Struct) (game.Position, error) {
	f := in.GetFields()
	size := int(f["board_size"].GetNumberValue())
	if size < 1 {
		return game.Position{}, fmt.Errorf("bad board size %d", size)
	}
	values := f["cells"].GetListValue().GetValues()
	if len(values) != size*size {
		return game.Position{}, fmt.Errorf("expected %d cells, got %d", size*size, len(values))
	}
	board := game.NewBoard(size)
	for i, v := range values {
		board.Cells[i] = game.Color(v.GetNumberValue())
	}
	player := game.Color(f["player"].GetNumberValue())
	if !player.IsPlayer() {
		return game.Position{}, fmt.Errorf("bad player %d", player)
	}

	// seed строкой: в double int64 теряет точность
	seed, err := strconv.ParseInt(f["seed"].GetStringValue(), 10, 64)
	if err != nil {
		return game.Position{}, fmt.Errorf("bad seed: %w", err)
	}

	pos := game.Position{
		Board:          board,
		Player:         player,
		Turn:           int(f["turn"].GetNumberValue()),
		OpponentPassed: f["opponent_passed"].GetBoolValue(),
		Seed:           seed,
	}
	if ko := f["ko"].GetStructValue(); ko != nil {
		kf := ko.GetFields()
		pos.Ko = &game.KoState{
			Point:     game.Point{X: int(kf["x"].GetNumberValue()), Y: int(kf["y"].GetNumberValue())},
			TurnIndex: int(kf["turn_index"].GetNumberValue()),
		}
	}
	return pos, nil
}

// EncodeMove: пас передаётся флагом pass, координаты тогда не заполняются.
func EncodeMove(p game.Point) *structpb.Struct {
	if p.IsPass() {
		return &structpb.Struct{Fields: map[string]*structpb.Value{
			"pass": structpb.NewBoolValue(true),
		}}
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"pass": structpb.NewBoolValue(false),
		"x":    structpb.NewNumberValue(float64(p.X)),
		"y":    structpb.NewNumberValue(float64(p.Y)),
	}}
}

func DecodeMove(out *structpb.Struct) game.Point {
	f := out.GetFields()
	if f["pass"].GetBoolValue() {
		return game.PassPoint
	}
	return game.Point{X: int(f["x"].GetNumberValue()), Y: int(f["y"].GetNumberValue())}
}
