package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
)

const botMoveTimeout = 5 * time.Second

// SessionStore: часть хранилища, нужная раннеру.
type SessionStore interface {
	SaveSession(ctx context.Context, s game.Session) error
	ArchiveSession(ctx context.Context, s game.Session, sgfText string) error
}

// Listener получает каждый новый снимок партии. Вызывается из горутины
// раннера и не должен блокироваться.
type Listener func(s game.Session)

type request func(ctx context.Context)

// SessionRunner владеет одной партией: все действия и тики выполняются
// последовательно в его горутине, поэтому сам оркестратор блокировок не знает.
type SessionRunner struct {
	orch      *Orchestrator
	store     SessionStore
	bot       MoveProvider
	log       *zap.SugaredLogger
	tickEvery time.Duration
	now       func() time.Time

	requests chan request
	done     chan struct{}

	// session и archived трогает только горутина Run
	session  game.Session
	archived bool

	mu        sync.RWMutex
	last      game.Session
	listeners map[int]Listener
	nextID    int
}

func newSessionRunner(s game.Session, orch *Orchestrator, store SessionStore, bot MoveProvider, log *zap.SugaredLogger, tickEvery time.Duration, now func() time.Time) *SessionRunner {
	return &SessionRunner{
		orch:      orch,
		store:     store,
		bot:       bot,
		log:       log,
		tickEvery: tickEvery,
		now:       now,
		requests:  make(chan request),
		done:      make(chan struct{}),
		session:   s,
		last:      s,
		listeners: make(map[int]Listener),
	}
}

// Run обслуживает партию до её конца или отмены ctx.
func (r *SessionRunner) Run(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.tickEvery)
	defer ticker.Stop()

	if r.session.Status.IsTerminal() {
		r.archive(ctx, r.session)
		return
	}
	r.maybeBotMove(ctx)
	for !r.finished() {
		select {
		case <-ctx.Done():
			return
		case req := <-r.requests:
			req(ctx)
		case <-ticker.C:
			if next, changed := r.orch.Tick(r.session, r.now()); changed {
				r.commit(ctx, next)
			}
		}
	}
}

func (r *SessionRunner) finished() bool {
	return r.session.Status.IsTerminal() && r.archived
}

// Done закрывается, когда горутина раннера завершилась.
func (r *SessionRunner) Done() <-chan struct{} {
	return r.done
}

// Snapshot: последний зафиксированный снимок.
func (r *SessionRunner) Snapshot() game.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last.Clone()
}

// Subscribe подписывает на обновления и возвращает функцию отписки.
func (r *SessionRunner) Subscribe(l Listener) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// Submit передаёт действие игрока в очередь партии и ждёт результата.
func (r *SessionRunner) Submit(ctx context.Context, playerID string, a game.Action) (game.Session, error) {
	return r.call(ctx, func(ctx context.Context, current game.Session, now time.Time) (game.Session, error) {
		return r.orch.HandleAction(current, playerID, a, now)
	})
}

// Join сажает второго игрока.
func (r *SessionRunner) Join(ctx context.Context, player game.Player) (game.Session, error) {
	return r.call(ctx, func(ctx context.Context, current game.Session, now time.Time) (game.Session, error) {
		return r.orch.Join(current, player, now)
	})
}

type transition func(ctx context.Context, current game.Session, now time.Time) (game.Session, error)

func (r *SessionRunner) call(ctx context.Context, fn transition) (game.Session, error) {
	type result struct {
		s   game.Session
		err error
	}
	reply := make(chan result, 1)
	req := func(ctx context.Context) {
		now := r.now()
		// сначала истёкшие дедлайны, потом действие
		if ticked, changed := r.orch.Tick(r.session, now); changed {
			r.commit(ctx, ticked)
		}
		next, err := fn(ctx, r.session, now)
		if err != nil {
			reply <- result{s: r.session, err: err}
			return
		}
		r.commit(ctx, next)
		reply <- result{s: r.session}
	}

	select {
	case r.requests <- req:
	case <-r.done:
		return r.Snapshot(), errors.ErrGameEnded
	case <-ctx.Done():
		return game.Session{}, ctx.Err()
	}
	select {
	case res := <-reply:
		return res.s, res.err
	case <-ctx.Done():
		return game.Session{}, ctx.Err()
	}
}

func (r *SessionRunner) commit(ctx context.Context, next game.Session) {
	r.session = next
	r.publish(next)

	if err := r.store.SaveSession(ctx, next); err != nil {
		r.log.Error("failed to save session "+next.ID+":", err)
	}
	if next.Status.IsTerminal() {
		if !r.archived {
			r.archive(ctx, next)
		}
		return
	}
	r.maybeBotMove(ctx)
}

func (r *SessionRunner) publish(s game.Session) {
	r.mu.Lock()
	r.last = s
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l(s.Clone())
	}
}

func (r *SessionRunner) archive(ctx context.Context, s game.Session) {
	record := PrepareSgf(s)
	if err := r.store.ArchiveSession(ctx, s, record.String()); err != nil {
		r.log.Error("failed to archive session "+s.ID+":", err)
	}
	r.archived = true
}

// maybeBotMove делает ход за ИИ, если сейчас его очередь. Отклонённый
// ход ИИ заменяется пасом.
func (r *SessionRunner) maybeBotMove(ctx context.Context) {
	s := r.session
	if r.bot == nil || s.Status != game.StatusPlaying {
		return
	}
	p, ok := s.PlayerByColor(s.CurrentPlayer)
	if !ok || !p.AI {
		return
	}

	botCtx, cancel := context.WithTimeout(ctx, botMoveTimeout)
	point, err := r.bot.GenerateMove(botCtx, s, s.CurrentPlayer)
	cancel()

	action := game.Action{Type: game.ActionPlace, Point: point}
	if err != nil || point.IsPass() {
		action = game.Action{Type: game.ActionPass}
	}
	next, err := r.orch.HandleAction(s, p.ID, action, r.now())
	if err != nil {
		r.log.Warnf("session %s: bot move %s rejected (%s), passing", s.ID, point, errors.Code(err))
		next, err = r.orch.HandleAction(s, p.ID, game.Action{Type: game.ActionPass}, r.now())
		if err != nil {
			r.log.Error("bot pass rejected:", err)
			return
		}
	}
	r.commit(ctx, next)
}

// Hub держит по раннеру на каждую живую партию.
type Hub struct {
	ctx       context.Context
	orch      *Orchestrator
	store     SessionStore
	bot       MoveProvider
	log       *zap.SugaredLogger
	tickEvery time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	runners map[string]*SessionRunner
}

func NewHub(ctx context.Context, orch *Orchestrator, store SessionStore, bot MoveProvider, log *zap.SugaredLogger, tickEvery time.Duration) *Hub {
	if tickEvery <= 0 {
		tickEvery = time.Second
	}
	return &Hub{
		ctx:       ctx,
		orch:      orch,
		store:     store,
		bot:       bot,
		log:       log,
		tickEvery: tickEvery,
		now:       time.Now,
		runners:   make(map[string]*SessionRunner),
	}
}

func (h *Hub) Get(id string) (*SessionRunner, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.runners[id]
	return r, ok
}

// Start запускает раннер для партии; если он уже есть, возвращает его.
func (h *Hub) Start(s game.Session) *SessionRunner {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.runners[s.ID]; ok {
		return r
	}
	r := newSessionRunner(s, h.orch, h.store, h.bot, h.log, h.tickEvery, h.now)
	h.runners[s.ID] = r
	go func() {
		r.Run(h.ctx)
		h.mu.Lock()
		if h.runners[s.ID] == r {
			delete(h.runners, s.ID)
		}
		h.mu.Unlock()
		h.log.Infof("session %s runner stopped", s.ID)
	}()
	return r
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.runners)
}
