package types

import "github.com/straitgame/relay-backend/internal/catalog"

// Client -> Server (one JSON object per message)
// play_card:
//   player: string
//   card_number: string
//
// roll_dice:
//   player: string
//   card_number: string
//
// respond:
//   player: string
//   response: string
//   card_number: string
//   card_name: string (optional, defaults to "Unknown")
//
// Server -> Client
// player_joined / player_left:
//   player: string
//
// card_played:
//   player, card_number, card_name, target: string
//   card_data: full card definition
//
// dice_rolled:
//   player, card_number, card_name: string
//   dice_result, dice_sides: number
//   effect: {result, ip_change} | null
//
// action_resolved:
//   player, response, card_number, card_name, original_player: string
//
// Errors go to the offending sender only, never broadcast:
//   {"error": string}

const (
	ActionPlayCard = "play_card"
	ActionRollDice = "roll_dice"
	ActionRespond  = "respond"
)

// ClientMessage is the inbound action envelope, tagged by Action.
type ClientMessage struct {
	Action     string `json:"action"`
	Player     string `json:"player"`
	CardNumber string `json:"card_number,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	Response   string `json:"response,omitempty"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}

type PlayerJoinedEvent struct {
	Event  string `json:"event"` // "player_joined"
	Player string `json:"player"`
}

type PlayerLeftEvent struct {
	Event  string `json:"event"` // "player_left"
	Player string `json:"player"`
}

type CardPlayedEvent struct {
	Event      string       `json:"event"` // "card_played"
	Player     string       `json:"player"`
	CardNumber string       `json:"card_number"`
	CardName   string       `json:"card_name"`
	CardData   catalog.Card `json:"card_data"`
	Target     string       `json:"target"`
}

type DiceRolledEvent struct {
	Event      string          `json:"event"` // "dice_rolled"
	Player     string          `json:"player"`
	CardNumber string          `json:"card_number"`
	CardName   string          `json:"card_name"`
	DiceResult int             `json:"dice_result"`
	DiceSides  int             `json:"dice_sides"`
	Effect     *catalog.Effect `json:"effect"` // null when the roll has no effect
}

type ActionResolvedEvent struct {
	Event          string `json:"event"` // "action_resolved"
	Player         string `json:"player"`
	Response       string `json:"response"`
	CardNumber     string `json:"card_number"`
	CardName       string `json:"card_name"`
	OriginalPlayer string `json:"original_player"`
}

func NewPlayerJoined(player string) PlayerJoinedEvent {
	return PlayerJoinedEvent{Event: "player_joined", Player: player}
}

func NewPlayerLeft(player string) PlayerLeftEvent {
	return PlayerLeftEvent{Event: "player_left", Player: player}
}

func NewCardPlayed(player string, card catalog.Card, target string) CardPlayedEvent {
	return CardPlayedEvent{
		Event:      "card_played",
		Player:     player,
		CardNumber: card.CardNumber,
		CardName:   card.Name,
		CardData:   card,
		Target:     target,
	}
}

func NewDiceRolled(player string, card catalog.Card, result int, effect *catalog.Effect) DiceRolledEvent {
	return DiceRolledEvent{
		Event:      "dice_rolled",
		Player:     player,
		CardNumber: card.CardNumber,
		CardName:   card.Name,
		DiceResult: result,
		DiceSides:  card.DiceSides,
		Effect:     effect,
	}
}

func NewActionResolved(player, response, cardNumber, cardName, originalPlayer string) ActionResolvedEvent {
	if cardName == "" {
		cardName = "Unknown"
	}
	return ActionResolvedEvent{
		Event:          "action_resolved",
		Player:         player,
		Response:       response,
		CardNumber:     cardNumber,
		CardName:       cardName,
		OriginalPlayer: originalPlayer,
	}
}
