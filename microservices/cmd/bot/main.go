package main

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"baduk_arena/internal/bootstrap"
	moveRPC "baduk_arena/microservices/proto"
	"baduk_arena/microservices/usecase"
)

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorf("failed to setup configuration: %v", err)
		return
	}

	addr := cfg.BotServiceAddr
	if addr == "" {
		addr = ":8082"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatalf("cant listen %s: %v", addr, err)
	}

	server := grpc.NewServer()
	moveRPC.RegisterMoveServiceServer(server, usecase.NewMoveUseCase(logger))
	logger.Infof("starting move service at %s", addr)
	if err = server.Serve(lis); err != nil {
		logger.Errorf("move service stopped: %v", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
