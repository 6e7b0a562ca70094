// Package hub is the process-wide room registry: one goroutine owning the
// room-id -> Room map, driven by tagged messages. Rooms are created lazily
// on first join and retained until removed or shut down.
package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/straitgame/relay-backend/internal/room"
)

type HubMsg interface{ isHubMsg() }

// EnsureRoom returns the room for an id, creating it if needed.
type EnsureRoom struct {
	ID    string
	Reply chan *room.Room
}

// GetRoom returns the room for an id, or nil if it was never created.
type GetRoom struct {
	ID    string
	Reply chan *room.Room
}

type RemoveRoom struct {
	ID string
}

type ShutdownHub struct{}

func (EnsureRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	log    *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Ensure is a convenience wrapper around EnsureRoom for callers that want
// a plain call instead of a message exchange.
func (h *Hub) Ensure(id string) *room.Room {
	reply := make(chan *room.Room, 1)
	h.inbox <- EnsureRoom{ID: id, Reply: reply}
	return <-reply
}

// Get returns the room for id, or nil.
func (h *Hub) Get(id string) *room.Room {
	reply := make(chan *room.Room, 1)
	h.inbox <- GetRoom{ID: id, Reply: reply}
	return <-reply
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureRoom:
				r := h.rooms[msg.ID]
				if r == nil {
					r = room.New(h.ctx, msg.ID, h.log)
					h.rooms[msg.ID] = r
					h.log.Infow("room created", "room", msg.ID)
				}
				msg.Reply <- r

			case GetRoom:
				msg.Reply <- h.rooms[msg.ID] // may be nil

			case RemoveRoom:
				if r := h.rooms[msg.ID]; r != nil {
					r.Inbox() <- room.Shutdown{}
					delete(h.rooms, msg.ID)
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for id, r := range h.rooms {
		r.Inbox() <- room.Shutdown{}
		delete(h.rooms, id)
	}
	h.cancel()
}
