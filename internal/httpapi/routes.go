package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/straitgame/relay-backend/internal/catalog"
	"github.com/straitgame/relay-backend/internal/game"
	"github.com/straitgame/relay-backend/internal/hub"
	"github.com/straitgame/relay-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, cat *catalog.Catalog, dispatcher *game.Dispatcher, log *zap.SugaredLogger, sendBuffer int) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/cards", ListCards(cat))
	r.Get("/cards/{number}", GetCard(cat))
	r.Get("/rooms/{room}", GetRoom(h))
	r.Get("/ws/{room}", ws.Handler(h, dispatcher, log, sendBuffer))
	return r
}
