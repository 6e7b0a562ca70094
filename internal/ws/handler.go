// Package ws bridges websocket connections onto rooms: one reader loop and
// one writer goroutine per connection, with all game decisions delegated
// to the dispatcher.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/straitgame/relay-backend/internal/game"
	"github.com/straitgame/relay-backend/internal/hub"
	"github.com/straitgame/relay-backend/internal/room"
	"github.com/straitgame/relay-backend/pkg/types"
)

const writeWait = 3 * time.Second

// DefaultSendBuffer is the per-session outbox capacity. A member that
// falls this far behind gets dropped by the room.
const DefaultSendBuffer = 16

// Handler upgrades GET /ws/{room}?player=NAME. The player label is
// free-form and defaults to "Anonymous"; the room is created on first
// join.
func Handler(h *hub.Hub, dispatcher *game.Dispatcher, log *zap.SugaredLogger, sendBuffer int) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "room")
		if roomID == "" {
			http.Error(w, "missing room", http.StatusBadRequest)
			return
		}
		player := r.URL.Query().Get("player")
		if player == "" {
			player = "Anonymous"
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		rm := h.Ensure(roomID)
		out := make(chan []byte, sendBuffer)
		sessionID := uuid.NewString()

		log.Infow("session connected", "room", roomID, "session", sessionID, "player", player)

		rm.Inbox() <- room.Join{SessionID: sessionID, Player: player, Outbox: out}
		defer func() {
			// Leave first so the departing outbox is released, then tell
			// the remaining members. The room's inbox serializes both.
			rm.Inbox() <- room.Leave{SessionID: sessionID}
			rm.Inbox() <- room.Broadcast{Payload: mustMarshal(types.NewPlayerLeft(player))}
			log.Infow("session disconnected", "room", roomID, "session", sessionID, "player", player)
		}()

		rm.Inbox() <- room.Broadcast{Payload: mustMarshal(types.NewPlayerJoined(player))}

		// Writer goroutine: drains the outbox until the room closes it.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			// The room closes out when this session leaves or falls too
			// far behind; closing the conn unblocks the reader either way.
			defer conn.Close(websocket.StatusPolicyViolation, "slow consumer")
			for payload := range out {
				ctx, cancel := context.WithTimeout(writeCtx, writeWait)
				err := conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					return
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Clean close or otherwise: the deferred leave handles it.
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				log.Debugw("bad payload", "room", roomID, "session", sessionID, "err", err)
				sendError(r.Context(), conn, "invalid JSON")
				continue
			}

			evt, err := dispatcher.Dispatch(cm)
			if err != nil {
				// Unknown card, non-dice card, unknown action: the sender
				// alone hears about it, nothing is broadcast.
				sendError(r.Context(), conn, err.Error())
				continue
			}

			rm.Inbox() <- room.Broadcast{Payload: mustMarshal(evt)}
		}
	}
}

func sendError(ctx context.Context, conn *websocket.Conn, msg string) {
	ctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	_ = conn.Write(ctx, websocket.MessageText, mustMarshal(types.ErrorMessage{Error: msg}))
}

// mustMarshal encodes an event struct. The event types contain nothing
// that can fail to marshal.
func mustMarshal(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return payload
}
