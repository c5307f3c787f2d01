package game

import (
	"testing"

	"baduk_arena/internal/domain/game"
)

func viewResponse(moves int, status game.GameStatus) game.ActionResponse {
	return game.ActionResponse{OK: true, Session: &game.SessionView{MoveCount: moves, Status: status}}
}

func TestEnqueueLatestKeepsNewestView(t *testing.T) {
	outbox := make(chan game.ActionResponse, 2)

	if enqueueLatest(outbox, viewResponse(1, game.StatusPlaying)) {
		t.Fatalf("nothing must be dropped while there is room")
	}
	enqueueLatest(outbox, viewResponse(2, game.StatusPlaying))

	if !enqueueLatest(outbox, viewResponse(3, game.StatusEnded)) {
		t.Fatalf("full outbox must drop a stale view")
	}

	first, last := <-outbox, <-outbox
	if first.Session.MoveCount != 2 {
		t.Fatalf("oldest view must go first, got move %d", first.Session.MoveCount)
	}
	if last.Session.MoveCount != 3 || last.Session.Status != game.StatusEnded {
		t.Fatalf("final view must be delivered, got %+v", last.Session)
	}
}
