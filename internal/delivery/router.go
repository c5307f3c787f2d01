package delivery

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authDelivery "baduk_arena/internal/delivery/auth"
	gameDelivery "baduk_arena/internal/delivery/game"
	ownMiddleware "baduk_arena/internal/middleware"
)

func NewRouter(auth *authDelivery.AuthHandler, game *gameDelivery.GameHandler, isLocalCors bool) *chi.Mux {
	r := chi.NewRouter()
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/login", auth.Login)
	r.Delete("/logout", auth.Logout)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", game.HandleNewGame)
		r.Post("/join", game.HandleJoinGame)
		r.Get("/{id}", game.HandleGetGame)
		r.Post("/{id}/actions", game.HandleAction)
		r.Get("/{id}/sgf", game.HandleGetSgf)
		r.Get("/{id}/ws", game.HandleWebSocket)
	})
	return r
}
