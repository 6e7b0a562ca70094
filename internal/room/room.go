// Package room owns the membership of a single broadcast domain. One
// goroutine per room serializes joins, leaves and broadcasts, so no other
// locking is needed; rooms are fully independent of each other.
package room

import (
	"context"

	"go.uber.org/zap"
)

type Msg interface{ isRoomMsg() }

// Join registers a session's delivery channel. Re-joining with the same
// session id replaces the entry, never duplicating delivery.
type Join struct {
	SessionID string
	Player    string
	Outbox    chan []byte
}

func (Join) isRoomMsg() {}

type Leave struct{ SessionID string }

func (Leave) isRoomMsg() {}

// Broadcast fans a pre-encoded payload out to every member, the sender
// included.
type Broadcast struct{ Payload []byte }

func (Broadcast) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

// View reflects room occupancy without data races. Players are in join
// order, which is informational only.
type View struct {
	NumMembers int
	Players    []string
}

type member struct {
	player string
	outbox chan []byte
}

type Room struct {
	id      string
	inbox   chan Msg
	members map[string]member
	order   []string // session ids, join order
	log     *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, id string, log *zap.SugaredLogger) *Room {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		id:      id,
		inbox:   make(chan Msg, 64),
		members: make(map[string]member),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

func (r *Room) ID() string { return r.id }

// Inbox is how the ws layer (and tests) talk to the room.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				if cur, ok := r.members[msg.SessionID]; ok {
					if cur.outbox != msg.Outbox {
						close(cur.outbox)
					}
				} else {
					r.order = append(r.order, msg.SessionID)
				}
				r.members[msg.SessionID] = member{player: msg.Player, outbox: msg.Outbox}
				r.log.Debugw("session joined", "room", r.id, "session", msg.SessionID, "player", msg.Player)

			case Leave:
				r.drop(msg.SessionID)

			case Broadcast:
				r.broadcast(msg.Payload)

			case GetState:
				players := make([]string, 0, len(r.order))
				for _, id := range r.order {
					players = append(players, r.members[id].player)
				}
				msg.Reply <- View{NumMembers: len(r.members), Players: players}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

// broadcast delivers to each member without blocking the room: a member
// whose outbox is full gets dropped so one stalled reader cannot stall
// everyone else's joins and leaves.
func (r *Room) broadcast(payload []byte) {
	for id, m := range r.members {
		select {
		case m.outbox <- payload:
		default:
			r.log.Infow("dropping slow member", "room", r.id, "session", id, "player", m.player)
			r.drop(id)
		}
	}
}

func (r *Room) drop(sessionID string) {
	m, ok := r.members[sessionID]
	if !ok {
		return
	}
	close(m.outbox)
	delete(r.members, sessionID)
	for i, id := range r.order {
		if id == sessionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Room) shutdown() {
	for id, m := range r.members {
		close(m.outbox)
		delete(r.members, id)
	}
	r.order = nil
	r.cancel()
}
