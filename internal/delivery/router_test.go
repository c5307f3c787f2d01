package delivery

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"baduk_arena/internal/bootstrap"
	authDelivery "baduk_arena/internal/delivery/auth"
	gameDelivery "baduk_arena/internal/delivery/game"
	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/httpresponse"
	repo "baduk_arena/internal/repository"
	gameUC "baduk_arena/internal/usecase/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop().Sugar()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := bootstrap.Config{SessionTTLHours: 1}
	store := repo.NewGameRepository(cfg, log, client, nil)
	orch := gameUC.NewOrchestrator(log)
	hub := gameUC.NewHub(ctx, orch, store, gameUC.RandomMoveProvider{}, log, time.Hour)
	uc := gameUC.NewGameUseCase(store, hub, orch, log)

	authHandler := authDelivery.NewAuthHandler(repo.NewSessionRedisStorage(client, log, time.Hour), log, time.Hour)
	gameHandler := gameDelivery.NewGameHandler(cfg, log, uc, authHandler)

	srv := httptest.NewTLSServer(NewRouter(authHandler, gameHandler, false))
	t.Cleanup(srv.Close)
	return srv
}

type apiClient struct {
	t    *testing.T
	srv  *httptest.Server
	http *http.Client
}

func login(t *testing.T, srv *httptest.Server, name string) *apiClient {
	t.Helper()
	jar, _ := cookiejar.New(nil)
	c := *srv.Client()
	c.Jar = jar
	client := &apiClient{t: t, srv: srv, http: &c}
	if status, _ := client.do(http.MethodPost, "/login", `{"username":"`+name+`"}`); status != http.StatusOK {
		t.Fatalf("login %s: status %d", name, status)
	}
	return client
}

func (c *apiClient) do(method, path, body string) (int, []byte) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.srv.URL+path, strings.NewReader(body))
	if err != nil {
		c.t.Fatalf("request: %v", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read %s: %v", path, err)
	}
	return resp.StatusCode, data
}

func decodeBody[T any](t *testing.T, data []byte) T {
	t.Helper()
	var envelope httpresponse.Response[T]
	if err := sonic.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return envelope.Body
}

func TestGameAgainstAIOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")

	body := `{"mode":"standard","settings":{"board_size":9},"vs_ai":true,"creator_side":2}`
	status, data := alice.do(http.MethodPost, "/games", body)
	if status != http.StatusOK {
		t.Fatalf("create: status %d", status)
	}
	created := decodeBody[game.GameCreateResponse](t, data)
	if created.ID == "" || len(created.UniqueKey) != 5 {
		t.Fatalf("unexpected create response %+v", created)
	}

	status, data = alice.do(http.MethodPost, "/games/"+created.ID+"/actions", `{"type":"pass"}`)
	if status != http.StatusOK {
		t.Fatalf("pass: status %d", status)
	}
	resp := decodeBody[game.ActionResponse](t, data)
	if !resp.OK || resp.Session == nil || resp.Session.Status != game.StatusEnded {
		t.Fatalf("expected the game to end after pass-pass, got %+v", resp)
	}

	status, data = alice.do(http.MethodPost, "/games/"+created.ID+"/actions", `{"type":"pass"}`)
	rejected := decodeBody[httpresponse.ErrorResponse](t, data)
	if status != http.StatusBadRequest || rejected.Code != "game_ended" {
		t.Fatalf("expected game_ended rejection, got %d %+v", status, rejected)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/games/"+created.ID+"/sgf", nil)
	sgfResp, err := alice.http.Do(req)
	if err != nil {
		t.Fatalf("sgf: %v", err)
	}
	defer sgfResp.Body.Close()
	if sgfResp.Header.Get("Content-Type") != "application/x-go-sgf" {
		t.Fatalf("unexpected content type %q", sgfResp.Header.Get("Content-Type"))
	}
}

func TestRequestsNeedLogin(t *testing.T) {
	srv := newTestServer(t)
	anon := &apiClient{t: t, srv: srv, http: srv.Client()}
	if status, _ := anon.do(http.MethodPost, "/games", ""); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if status, _ := anon.do(http.MethodGet, "/games/missing/sgf", ""); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for sgf, got %d", status)
	}
	if status, _ := anon.do(http.MethodPost, "/login", `{"username":"  "}`); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for a blank name, got %d", status)
	}

	alice := login(t, srv, "alice")
	if status, _ := alice.do(http.MethodGet, "/games/missing", ""); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if status, _ := alice.do(http.MethodDelete, "/logout", ""); status != http.StatusOK {
		t.Fatalf("logout: status %d", status)
	}
	if status, _ := alice.do(http.MethodGet, "/games/missing", ""); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", status)
	}
}

func TestWebSocketBroadcastsAndRejects(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")
	bob := login(t, srv, "bob")

	status, data := alice.do(http.MethodPost, "/games", `{"settings":{"board_size":9}}`)
	if status != http.StatusOK {
		t.Fatalf("create: status %d", status)
	}
	created := decodeBody[game.GameCreateResponse](t, data)
	if status, _ = bob.do(http.MethodPost, "/games/join", `{"game_key":"`+created.UniqueKey+`"}`); status != http.StatusOK {
		t.Fatalf("join: status %d", status)
	}

	u := "wss" + strings.TrimPrefix(srv.URL, "https") + "/games/" + created.ID + "/ws"
	dialer := websocket.Dialer{
		TLSClientConfig: srv.Client().Transport.(*http.Transport).TLSClientConfig,
		Jar:             alice.http.Jar,
	}
	conn, _, err := dialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	read := func() game.ActionResponse {
		t.Helper()
		var resp game.ActionResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read: %v", err)
		}
		return resp
	}

	initial := read()
	if initial.Session == nil || initial.Session.Status != game.StatusPlaying || initial.Session.You != game.Black {
		t.Fatalf("unexpected initial view %+v", initial.Session)
	}

	if err = conn.WriteJSON(game.Action{Type: game.ActionPlace, Point: game.Point{X: 2, Y: 2}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	update := read()
	if update.Session == nil || update.Session.MoveCount != 1 || update.Session.CurrentPlayer != game.White {
		t.Fatalf("expected broadcast after the move, got %+v", update)
	}

	if err = conn.WriteJSON(game.Action{Type: game.ActionPlace, Point: game.Point{X: 3, Y: 3}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rejected := read(); rejected.OK || rejected.Error != "not_your_turn" {
		t.Fatalf("expected not_your_turn, got %+v", rejected)
	}
}
