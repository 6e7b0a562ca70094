// Package game turns inbound player actions into broadcast events. It is
// the only place that decides anything: card lookups, dice rolls and the
// opponent convention all happen here, so the ws layer stays transport-only.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/straitgame/relay-backend/internal/catalog"
	"github.com/straitgame/relay-backend/pkg/types"
)

var ErrUnknownAction = errors.New("unknown action")
var ErrUnknownCard = errors.New("unknown card")
var ErrNoDiceRoll = errors.New("card does not require a dice roll")

// Opponent implements the fixed two-player targeting convention: the
// opponent of "PlayerA" is "PlayerB", anyone else targets "PlayerA".
// Player labels are otherwise free-form; only targeting binds them to the
// two canonical names.
func Opponent(player string) string {
	if player == "PlayerA" {
		return "PlayerB"
	}
	return "PlayerA"
}

// Dispatcher maps a ClientMessage onto the event to broadcast, or an error
// to report to the sender alone. Roll draws the die; it is a field so tests
// can pin the result.
type Dispatcher struct {
	Catalog *catalog.Catalog
	Roll    func(sides int) int
}

func NewDispatcher(c *catalog.Catalog) *Dispatcher {
	return &Dispatcher{
		Catalog: c,
		Roll:    func(sides int) int { return rand.IntN(sides) },
	}
}

// Dispatch resolves one action. The returned event is one of the pkg/types
// event structs, ready to marshal; a non-nil error means nothing should be
// broadcast and the sender gets the error text instead.
func (d *Dispatcher) Dispatch(msg types.ClientMessage) (any, error) {
	switch msg.Action {
	case types.ActionPlayCard:
		card, ok := d.Catalog.Lookup(msg.CardNumber)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCard, msg.CardNumber)
		}
		return types.NewCardPlayed(msg.Player, card, Opponent(msg.Player)), nil

	case types.ActionRollDice:
		card, ok := d.Catalog.Lookup(msg.CardNumber)
		if !ok || !card.RequiresDiceRoll {
			return nil, fmt.Errorf("%w: %s", ErrNoDiceRoll, msg.CardNumber)
		}
		result := d.Roll(card.DiceSides)
		var effect *catalog.Effect
		if e, ok := d.Catalog.Resolve(msg.CardNumber, result); ok {
			effect = &e
		}
		return types.NewDiceRolled(msg.Player, card, result, effect), nil

	case types.ActionRespond:
		return types.NewActionResolved(msg.Player, msg.Response, msg.CardNumber, msg.CardName, Opponent(msg.Player)), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}
}
