package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"baduk_arena/internal/adapters"
	"baduk_arena/internal/bootstrap"
	"baduk_arena/internal/delivery"
	authDelivery "baduk_arena/internal/delivery/auth"
	gameDelivery "baduk_arena/internal/delivery/game"
	repo "baduk_arena/internal/repository"
	gameUC "baduk_arena/internal/usecase/game"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorf("failed to setup configuration: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	bot, closeBot := initMoveProvider(cfg, logger)
	defer closeBot()

	gameRepository := repo.NewGameRepository(*cfg, logger, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	orchestrator := gameUC.NewOrchestrator(logger)
	hub := gameUC.NewHub(ctx, orchestrator, gameRepository, bot, logger, cfg.TickInterval())
	gameUseCase := gameUC.NewGameUseCase(gameRepository, hub, orchestrator, logger)

	sessions := repo.NewSessionRedisStorage(databaseAdapters.redisAdapter.GetClient(), logger, cfg.SessionTTL())
	authHandler := authDelivery.NewAuthHandler(sessions, logger, cfg.SessionTTL())
	gameHandler := gameDelivery.NewGameHandler(*cfg, logger, gameUseCase, authHandler)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: delivery.NewRouter(authHandler, gameHandler, cfg.IsLocalCors),
	}
	go handleShutdown(cancel, server, logger)

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("failed to start server: %v", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatalf("Не удалось инициализировать Redis: %v", err)
	}

	// без mongo партии живут только в redis, архив отключается
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Warnf("MongoDB недоступна, архив отключён: %v", err)
	}

	log.Info("Адаптеры баз данных инициализированы")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

// initMoveProvider подключает внешний сервис ходов, если он задан.
// Локальный случайный бот остаётся запасным вариантом.
func initMoveProvider(cfg *bootstrap.Config, log *zap.SugaredLogger) (gameUC.MoveProvider, func()) {
	local := gameUC.RandomMoveProvider{}
	if cfg.BotServiceAddr == "" {
		return local, func() {}
	}
	conn, err := grpc.NewClient(cfg.BotServiceAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Warnf("failed to dial move service %s, using local bot: %v", cfg.BotServiceAddr, err)
		return local, func() {}
	}
	provider := gameUC.FallbackMoveProvider{
		Primary:  repo.NewBotRepository(conn, log),
		Fallback: local,
		Log:      log,
	}
	return provider, func() { _ = conn.Close() }
}

func handleShutdown(cancelFunc context.CancelFunc, server *http.Server, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
