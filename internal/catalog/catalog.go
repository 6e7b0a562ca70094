// Package catalog holds the static card definitions and resolves dice
// outcomes against them. The catalog is loaded once at startup and is
// read-only afterwards, so it is safe to share across sessions.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	_ "embed"
)

//go:embed cards.json
var cardsJSON []byte

var ErrDuplicateCard = errors.New("duplicate card number")
var ErrBadRangeKey = errors.New("malformed effect range key")
var ErrBadCoverage = errors.New("effect ranges do not partition the dice domain")

const defaultDiceSides = 10

// Effect is the resolved outcome of a dice roll: what happened, and the
// influence-point delta the game layer should apply.
type Effect struct {
	Result   string `json:"result"`
	IPChange int    `json:"ip_change"`
}

// EffectRange maps a closed interval of roll values onto an Effect.
// A single-value outcome is the degenerate case Lo == Hi.
type EffectRange struct {
	Lo       int    `json:"lo"`
	Hi       int    `json:"hi"`
	Result   string `json:"result"`
	IPChange int    `json:"ip_change"`
}

// Card is one catalog entry. The descriptive fields are passed through to
// clients unchanged; only CardNumber, RequiresDiceRoll, DiceSides and
// DiceEffects drive any behavior here.
type Card struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	CardNumber       string        `json:"card_number"`
	CardType         string        `json:"card_type,omitempty"`
	Country          string        `json:"country,omitempty"`
	RPPoint          int           `json:"rp_point,omitempty"`
	RequiresDiceRoll bool          `json:"requires_dice_roll"`
	DiceSides        int           `json:"dice_sides,omitempty"`
	UsageFrequency   string        `json:"usage_frequency,omitempty"`
	Description      string        `json:"description,omitempty"`
	ShortDescription string        `json:"short_description,omitempty"`
	DiceEffects      []EffectRange `json:"dice_effects,omitempty"`
	ImageURL         string        `json:"image_url,omitempty"`
}

// rawCard mirrors the on-disk format, where the effect table is keyed by
// range strings ("0", "1-4"). Keys are normalized into EffectRange once,
// at load time.
type rawCard struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	CardNumber       string            `json:"card_number"`
	CardType         string            `json:"card_type"`
	Country          string            `json:"country"`
	RPPoint          int               `json:"rp_point"`
	RequiresDiceRoll bool              `json:"requires_dice_roll"`
	DiceSides        int               `json:"dice_sides"`
	UsageFrequency   string            `json:"usage_frequency"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	DiceEffects      map[string]Effect `json:"dice_effects"`
	ImageURL         string            `json:"image_url"`
}

type Catalog struct {
	cards map[string]Card
}

// Load builds the catalog from the embedded cards.json.
func Load() (*Catalog, error) {
	return parse(cardsJSON)
}

// LoadFile builds the catalog from an external file in the same format as
// the embedded one, for deployments that ship their own card set.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var raws []rawCard
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	cards := make([]Card, 0, len(raws))
	for _, rc := range raws {
		ranges, err := normalizeEffects(rc.DiceEffects)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", rc.CardNumber, err)
		}
		cards = append(cards, Card{
			ID:               rc.ID,
			Name:             rc.Name,
			CardNumber:       rc.CardNumber,
			CardType:         rc.CardType,
			Country:          rc.Country,
			RPPoint:          rc.RPPoint,
			RequiresDiceRoll: rc.RequiresDiceRoll,
			DiceSides:        rc.DiceSides,
			UsageFrequency:   rc.UsageFrequency,
			Description:      rc.Description,
			ShortDescription: rc.ShortDescription,
			DiceEffects:      ranges,
			ImageURL:         rc.ImageURL,
		})
	}
	return New(cards)
}

// New validates the card set and builds the lookup table. For every card
// that requires a dice roll, the effect ranges must exactly partition
// [0, DiceSides-1]: a gap or overlap is a data error and fails the load
// rather than surfacing as a silent no-effect roll later.
func New(cards []Card) (*Catalog, error) {
	byNumber := make(map[string]Card, len(cards))
	for _, card := range cards {
		if _, ok := byNumber[card.CardNumber]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, card.CardNumber)
		}
		if card.RequiresDiceRoll {
			if card.DiceSides == 0 {
				card.DiceSides = defaultDiceSides
			}
			if err := checkCoverage(card.DiceEffects, card.DiceSides); err != nil {
				return nil, fmt.Errorf("card %s: %w", card.CardNumber, err)
			}
		}
		byNumber[card.CardNumber] = card
	}
	return &Catalog{cards: byNumber}, nil
}

// Lookup returns the definition for a card number. Absence is a normal
// outcome meaning "unknown card", not an error.
func (c *Catalog) Lookup(number string) (Card, bool) {
	card, ok := c.cards[number]
	return card, ok
}

// Resolve maps a rolled value onto the card's effect table: the first
// range whose inclusive bounds contain roll wins. It reports false for an
// unknown card, a card that takes no dice roll, or a roll outside every
// range (unreachable for a validated catalog). Resolve is pure; rolling
// the die is the caller's job.
func (c *Catalog) Resolve(number string, roll int) (Effect, bool) {
	card, ok := c.cards[number]
	if !ok || !card.RequiresDiceRoll {
		return Effect{}, false
	}
	for _, r := range card.DiceEffects {
		if r.Lo <= roll && roll <= r.Hi {
			return Effect{Result: r.Result, IPChange: r.IPChange}, true
		}
	}
	return Effect{}, false
}

// Numbers lists every card number in the catalog, sorted.
func (c *Catalog) Numbers() []string {
	numbers := make([]string, 0, len(c.cards))
	for number := range c.cards {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}

// normalizeEffects converts the keyed effect table into ranges sorted by
// lower bound. "5-7" becomes [5,7]; a bare "0" becomes [0,0].
func normalizeEffects(effects map[string]Effect) ([]EffectRange, error) {
	if len(effects) == 0 {
		return nil, nil
	}
	ranges := make([]EffectRange, 0, len(effects))
	for key, effect := range effects {
		lo, hi, err := parseRangeKey(key)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, EffectRange{Lo: lo, Hi: hi, Result: effect.Result, IPChange: effect.IPChange})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Lo < ranges[j].Lo })
	return ranges, nil
}

func parseRangeKey(key string) (int, int, error) {
	if lo, hi, found := strings.Cut(key, "-"); found {
		start, err := strconv.Atoi(lo)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadRangeKey, key)
		}
		end, err := strconv.Atoi(hi)
		if err != nil || end < start {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadRangeKey, key)
		}
		return start, end, nil
	}
	v, err := strconv.Atoi(key)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadRangeKey, key)
	}
	return v, v, nil
}

// checkCoverage verifies the ranges partition [0, sides-1] with no gap or
// overlap. Ranges are already sorted by Lo.
func checkCoverage(ranges []EffectRange, sides int) error {
	next := 0
	for _, r := range ranges {
		if r.Lo != next || r.Hi < r.Lo {
			return fmt.Errorf("%w: got [%d,%d], want lower bound %d", ErrBadCoverage, r.Lo, r.Hi, next)
		}
		next = r.Hi + 1
	}
	if next != sides {
		return fmt.Errorf("%w: covered up to %d, want %d", ErrBadCoverage, next-1, sides-1)
	}
	return nil
}
