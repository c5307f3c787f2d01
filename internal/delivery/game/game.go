package game

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"baduk_arena/internal/bootstrap"
	"baduk_arena/internal/delivery/auth"
	"baduk_arena/internal/domain/game"
	errs "baduk_arena/internal/errors"
	"baduk_arena/internal/httpresponse"
	gameuc "baduk_arena/internal/usecase/game"
	"baduk_arena/internal/utils"
)

const (
	writeWait        = 10 * time.Second
	idlePingInterval = 30 * time.Second
	outboxSize       = 16
	sgfMimeType      = "application/x-go-sgf"
)

type GameHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	gameUC      *gameuc.GameUseCase
	authHandler *auth.AuthHandler
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase, authHandler *auth.AuthHandler) *GameHandler {
	return &GameHandler{
		cfg:         cfg,
		log:         log,
		gameUC:      gameUC,
		authHandler: authHandler,
	}
}

// HandleNewGame создаёт партию. Пустое тело означает стандартную партию
// с настройками по умолчанию.
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	user, ok := g.authHandler.GetUser(w, r)
	if !ok {
		return
	}

	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "Invalid JSON: " + err.Error()})
		return
	}

	s, err := g.gameUC.CreateGame(r.Context(), req, user.ID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.GameCreateResponse{
		ID:        s.ID,
		UniqueKey: s.PublicKey,
	})
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	user, ok := g.authHandler.GetUser(w, r)
	if !ok {
		return
	}

	var req game.GameJoinRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil || req.GameKey == "" {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	s, err := g.gameUC.JoinGame(r.Context(), req.GameKey, user.ID)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.log.Infof("user %s joined game %s", user.ID, s.ID)
	g.writeView(w, s, user.ID)
}

// HandleGetGame отдаёт партию глазами запросившего; не участник видит
// её как зритель.
func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	user, ok := g.authHandler.GetUser(w, r)
	if !ok {
		return
	}
	view, err := g.gameUC.GetView(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (g *GameHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	user, ok := g.authHandler.GetUser(w, r)
	if !ok {
		return
	}

	var action game.Action
	if err := utils.DecodeJSONRequest(r, &action); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	s, err := g.gameUC.Act(r.Context(), chi.URLParam(r, "id"), user.ID, action)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeView(w, s, user.ID)
}

func (g *GameHandler) HandleGetSgf(w http.ResponseWriter, r *http.Request) {
	user, ok := g.authHandler.GetUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	sgfText, err := g.gameUC.GetSgf(r.Context(), id, user.ID)
	if err != nil {
		g.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", sgfMimeType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+id+".sgf\"")
	_, _ = w.Write([]byte(sgfText))
}

// HandleWebSocket держит живое соединение игрока или зрителя: принимает
// действия и рассылает снимок партии после каждого перехода.
func (g *GameHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	user, ok := g.authHandler.GetUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	current, err := g.gameUC.GetSession(ctx, id)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}
	defer conn.Close()

	outbox := make(chan game.ActionResponse, outboxSize)
	done := make(chan struct{})
	defer close(done)
	go g.writeLoop(conn, outbox, done)

	push := func(resp game.ActionResponse) {
		select {
		case <-done:
			return
		default:
		}
		if enqueueLatest(outbox, resp) {
			g.log.Warnf("game %s: %s is slow, dropped a stale update", id, user.ID)
		}
	}

	initial := gameuc.BuildView(current, user.ID, time.Now())
	push(game.ActionResponse{OK: true, Session: &initial})
	if current.Status.IsTerminal() {
		return
	}

	unsubscribe, err := g.gameUC.Subscribe(ctx, id, func(s game.Session) {
		view := gameuc.BuildView(s, user.ID, time.Now())
		push(game.ActionResponse{OK: true, Session: &view})
	})
	if err != nil {
		push(game.ActionResponse{Error: errs.Code(err)})
		return
	}
	defer unsubscribe()

	for {
		var action game.Action
		if err = conn.ReadJSON(&action); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Warnf("game %s: read error from %s: %v", id, user.ID, err)
			}
			return
		}
		// успешный ход придёт всем подписчикам, отказ только отправителю
		if _, err = g.gameUC.Act(ctx, id, user.ID, action); err != nil {
			push(game.ActionResponse{Error: errs.Code(err)})
		}
	}
}

// enqueueLatest кладёт resp в очередь, не блокируясь. Если очередь полна,
// выбрасываются самые старые снимки: каждый снимок полный, важен последний.
func enqueueLatest(outbox chan game.ActionResponse, resp game.ActionResponse) (dropped bool) {
	for {
		select {
		case outbox <- resp:
			return dropped
		default:
		}
		select {
		case <-outbox:
			dropped = true
		default:
		}
	}
}

func (g *GameHandler) writeLoop(conn *websocket.Conn, outbox <-chan game.ActionResponse, done <-chan struct{}) {
	ticker := time.NewTicker(idlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case resp := <-outbox:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(resp); err != nil {
				g.log.Warnf("websocket write error: %v", err)
				_ = conn.Close()
				return
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idlePingInterval {
				continue
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = conn.Close()
				return
			}
			lastWrite = time.Now()
		case <-done:
			return
		}
	}
}

func (g *GameHandler) writeView(w http.ResponseWriter, s game.Session, viewerID string) {
	view := gameuc.BuildView(s, viewerID, time.Now())
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.ActionResponse{OK: true, Session: &view})
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsRejection(err):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrGameNotFound), errors.Is(err, errs.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrGameFull), errors.Is(err, errs.ErrJoinGameFailed):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrCreateGameFailed):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		g.log.Error(err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	httpresponse.WriteResponseWithStatus(w, status, httpresponse.ErrorResponse{
		ErrorDescription: err.Error(),
		Code:             errs.Code(err),
	})
}
