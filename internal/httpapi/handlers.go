package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/straitgame/relay-backend/internal/catalog"
	"github.com/straitgame/relay-backend/internal/hub"
	"github.com/straitgame/relay-backend/internal/room"
)

// ListCards returns every card number in the catalog, for the frontend
// deck screen.
func ListCards(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, struct {
			Cards []string `json:"cards"`
		}{Cards: cat.Numbers()})
	}
}

// GetCard returns the full definition for one card number.
func GetCard(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")
		card, ok := cat.Lookup(number)
		if !ok {
			http.Error(w, "card not found", http.StatusNotFound)
			return
		}
		writeJSON(w, card)
	}
}

// GetRoom reports a room's occupancy: player labels in join order.
func GetRoom(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "room")
		rm := h.Get(roomID)
		if rm == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		reply := make(chan room.View, 1)
		rm.Inbox() <- room.GetState{Reply: reply}
		view := <-reply

		writeJSON(w, struct {
			Room       string   `json:"room"`
			Players    []string `json:"players"`
			NumMembers int      `json:"num_members"`
		}{Room: roomID, Players: view.Players, NumMembers: view.NumMembers})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
	}
}
