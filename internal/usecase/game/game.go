package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error)
	SaveSession(ctx context.Context, s game.Session) error
	LoadSession(ctx context.Context, id string) (game.Session, error)
	GetSessionIDByPublicKey(ctx context.Context, gameKeyPublic string) (string, error)
	ArchiveSession(ctx context.Context, s game.Session, sgfText string) error
	GetArchivedSession(ctx context.Context, id string) (game.Session, error)
}

type GameUseCase struct {
	store GameStore
	hub   *Hub
	orch  *Orchestrator
	log   *zap.SugaredLogger
	now   func() time.Time
	seed  func() int64
}

func NewGameUseCase(store GameStore, hub *Hub, orch *Orchestrator, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		store: store,
		hub:   hub,
		orch:  orch,
		log:   log,
		now:   time.Now,
		seed:  rand.Int63,
	}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest, creatorID string) (game.Session, error) {
	if req.Mode == "" {
		req.Mode = game.ModeStandard
	}
	settings := MergeSettings(game.DefaultSettings(req.Mode), req.Settings)

	gameKeySecret, gameKeyPublic, err := g.store.GenerateGameKeys(ctx)
	if err != nil {
		return game.Session{}, fmt.Errorf("%w: %v", errors.ErrCreateGameFailed, err)
	}

	now := g.now()
	creator := game.Player{ID: creatorID, Color: req.CreatorSide}
	s, err := g.orch.NewSession(gameKeySecret, gameKeyPublic, req.Mode, settings, creator, g.seed(), now)
	if err != nil {
		return game.Session{}, err
	}
	if req.VsAI {
		s, err = g.orch.Join(s, game.Player{ID: "ai-" + uuid.NewString(), AI: true}, now)
		if err != nil {
			return game.Session{}, err
		}
	}

	if err = g.store.SaveSession(ctx, s); err != nil {
		g.log.Error("failed to save new session:", err)
		return game.Session{}, errors.ErrCreateGameFailed
	}
	g.hub.Start(s)
	g.log.Infof("game %s (%s) created by %s, mode %s", s.ID, s.PublicKey, creatorID, s.Mode)
	return s, nil
}

func (g *GameUseCase) JoinGame(ctx context.Context, gameKeyPublic, userID string) (game.Session, error) {
	id, err := g.store.GetSessionIDByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Session{}, err
	}
	runner, err := g.runner(ctx, id)
	if err != nil {
		return game.Session{}, err
	}
	return runner.Join(ctx, game.Player{ID: userID})
}

// Act передаёт действие игрока в партию.
func (g *GameUseCase) Act(ctx context.Context, id, playerID string, a game.Action) (game.Session, error) {
	runner, err := g.runner(ctx, id)
	if err != nil {
		return game.Session{}, err
	}
	return runner.Submit(ctx, playerID, a)
}

// GetSession ищет партию сначала среди живых, затем в снимках и архиве.
func (g *GameUseCase) GetSession(ctx context.Context, id string) (game.Session, error) {
	if runner, ok := g.hub.Get(id); ok {
		return runner.Snapshot(), nil
	}
	s, err := g.store.LoadSession(ctx, id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, errors.ErrSessionNotFound) {
		return game.Session{}, err
	}
	return g.store.GetArchivedSession(ctx, id)
}

func (g *GameUseCase) GetView(ctx context.Context, id, viewerID string) (game.SessionView, error) {
	s, err := g.GetSession(ctx, id)
	if err != nil {
		return game.SessionView{}, err
	}
	return BuildView(s, viewerID, g.now()), nil
}

// GetSgf отдаёт запись партии так, как её видит viewerID.
func (g *GameUseCase) GetSgf(ctx context.Context, id, viewerID string) (string, error) {
	s, err := g.GetSession(ctx, id)
	if err != nil {
		return "", err
	}
	record := PrepareSgfFor(s, viewerID)
	return record.String(), nil
}

// Subscribe подписывает на обновления живой партии.
func (g *GameUseCase) Subscribe(ctx context.Context, id string, l Listener) (func(), error) {
	runner, err := g.runner(ctx, id)
	if err != nil {
		return nil, err
	}
	return runner.Subscribe(l), nil
}

// runner возвращает раннер партии, поднимая его из снимка после рестарта.
func (g *GameUseCase) runner(ctx context.Context, id string) (*SessionRunner, error) {
	if r, ok := g.hub.Get(id); ok {
		return r, nil
	}
	s, err := g.store.LoadSession(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			return nil, errors.ErrGameNotFound
		}
		return nil, err
	}
	if s.Status.IsTerminal() {
		return nil, errors.ErrGameEnded
	}
	return g.hub.Start(s), nil
}

// MergeSettings накладывает заданные клиентом настройки на настройки
// режима по умолчанию: нулевые поля берутся из умолчаний.
func MergeSettings(base game.Settings, custom *game.Settings) game.Settings {
	if custom == nil {
		return base
	}
	s := *custom
	if s.BoardSize == 0 {
		s.BoardSize = base.BoardSize
	}
	if s.Komi == 0 {
		s.Komi = base.Komi
	}
	if s.TimeControl.Kind == game.TimeControlNone {
		s.TimeControl = base.TimeControl
	}
	if s.CaptureTarget == 0 {
		s.CaptureTarget = base.CaptureTarget
	}
	if s.HiddenStones == 0 {
		s.HiddenStones = base.HiddenStones
	}
	if s.Scans == 0 {
		s.Scans = base.Scans
	}
	if s.HiddenStoneValue == 0 {
		s.HiddenStoneValue = base.HiddenStoneValue
	}
	if s.Missiles == 0 {
		s.Missiles = base.Missiles
	}
	if s.BaseStonesPerSide == 0 {
		s.BaseStonesPerSide = base.BaseStonesPerSide
	}
	if s.BaseStoneValue == 0 {
		s.BaseStoneValue = base.BaseStoneValue
	}
	if s.MaxKomiBid == 0 {
		s.MaxKomiBid = base.MaxKomiBid
	}
	if s.PlacementTimeout == 0 {
		s.PlacementTimeout = base.PlacementTimeout
	}
	if s.BiddingTimeout == 0 {
		s.BiddingTimeout = base.BiddingTimeout
	}
	if s.RevealDuration == 0 {
		s.RevealDuration = base.RevealDuration
	}
	if s.ConfirmationTimeout == 0 {
		s.ConfirmationTimeout = base.ConfirmationTimeout
	}
	if len(s.MixModes) == 0 {
		s.MixModes = base.MixModes
	}
	return s
}
