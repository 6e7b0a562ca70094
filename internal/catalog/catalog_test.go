package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	card, ok := c.Lookup("ACT-US-02")
	require.True(t, ok)
	assert.Equal(t, "美日韓聯合軍演", card.Name)
	assert.True(t, card.RequiresDiceRoll)
	assert.Equal(t, 10, card.DiceSides)
	require.Len(t, card.DiceEffects, 4)

	// normalizeEffects sorts ranges by lower bound
	assert.Equal(t, 0, card.DiceEffects[0].Lo)
	assert.Equal(t, 0, card.DiceEffects[0].Hi)
	assert.Equal(t, 8, card.DiceEffects[3].Lo)
	assert.Equal(t, 9, card.DiceEffects[3].Hi)
}

func TestLookup_UnknownCard(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, ok := c.Lookup("NOPE-1")
	assert.False(t, ok)
}

// Every dice card's ranges must cover its whole domain, each roll matching
// exactly one range.
func TestResolve_PartitionsDomain(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, number := range c.Numbers() {
		card, ok := c.Lookup(number)
		require.True(t, ok)
		if !card.RequiresDiceRoll {
			continue
		}
		for v := 0; v < card.DiceSides; v++ {
			_, ok := c.Resolve(number, v)
			assert.True(t, ok, "card %s roll %d has no effect", number, v)

			matches := 0
			for _, r := range card.DiceEffects {
				if r.Lo <= v && v <= r.Hi {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "card %s roll %d matched %d ranges", number, v, matches)
		}
	}
}

func TestResolve_KnownOutcomes(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		roll     int
		result   string
		ipChange int
	}{
		{0, "演習整合失敗，美日韓同盟信譽受挫", -1},
		{1, "演習成效普通，維持現狀", 0},
		{4, "演習成效普通，維持現狀", 0},
		{6, "演習成功，美日韓聯戰機制強化", 1},
		{9, "演習成功，美日韓同盟有效提升", 2},
	}
	for _, tt := range tests {
		effect, ok := c.Resolve("ACT-US-02", tt.roll)
		require.True(t, ok, "roll %d", tt.roll)
		assert.Equal(t, tt.result, effect.Result, "roll %d", tt.roll)
		assert.Equal(t, tt.ipChange, effect.IPChange, "roll %d", tt.roll)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	first, ok := c.Resolve("ACT-US-02", 6)
	require.True(t, ok)
	again, ok := c.Resolve("ACT-US-02", 6)
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestResolve_UnknownOrNonDiceCard(t *testing.T) {
	c, err := New([]Card{
		{CardNumber: "EVT-CN-01", Name: "plain event", RequiresDiceRoll: false},
	})
	require.NoError(t, err)

	_, ok := c.Resolve("MISSING", 0)
	assert.False(t, ok)
	_, ok = c.Resolve("EVT-CN-01", 0)
	assert.False(t, ok)
}

func TestNew_RejectsGap(t *testing.T) {
	_, err := New([]Card{{
		CardNumber:       "BAD-1",
		RequiresDiceRoll: true,
		DiceSides:        10,
		DiceEffects: []EffectRange{
			{Lo: 0, Hi: 3, Result: "low"},
			{Lo: 5, Hi: 9, Result: "high"}, // 4 uncovered
		},
	}})
	require.ErrorIs(t, err, ErrBadCoverage)
}

func TestNew_RejectsOverlap(t *testing.T) {
	_, err := New([]Card{{
		CardNumber:       "BAD-2",
		RequiresDiceRoll: true,
		DiceSides:        10,
		DiceEffects: []EffectRange{
			{Lo: 0, Hi: 5, Result: "low"},
			{Lo: 5, Hi: 9, Result: "high"},
		},
	}})
	require.ErrorIs(t, err, ErrBadCoverage)
}

func TestNew_RejectsShortCoverage(t *testing.T) {
	_, err := New([]Card{{
		CardNumber:       "BAD-3",
		RequiresDiceRoll: true,
		DiceSides:        10,
		DiceEffects:      []EffectRange{{Lo: 0, Hi: 8, Result: "low"}},
	}})
	require.ErrorIs(t, err, ErrBadCoverage)
}

func TestNew_RejectsDuplicateNumber(t *testing.T) {
	_, err := New([]Card{
		{CardNumber: "EVT-CN-01"},
		{CardNumber: "EVT-CN-01"},
	})
	require.ErrorIs(t, err, ErrDuplicateCard)
}

func TestNew_DefaultsDiceSides(t *testing.T) {
	c, err := New([]Card{{
		CardNumber:       "ACT-JP-01",
		RequiresDiceRoll: true,
		DiceEffects:      []EffectRange{{Lo: 0, Hi: 9, Result: "ok"}},
	}})
	require.NoError(t, err)

	card, ok := c.Lookup("ACT-JP-01")
	require.True(t, ok)
	assert.Equal(t, 10, card.DiceSides)
}

func TestParse_RangeKeys(t *testing.T) {
	data := []byte(`[{
		"card_number": "ACT-TW-01",
		"name": "test",
		"requires_dice_roll": true,
		"dice_sides": 6,
		"dice_effects": {
			"0": {"result": "miss", "ip_change": -1},
			"1-5": {"result": "hit", "ip_change": 1}
		}
	}]`)
	c, err := parse(data)
	require.NoError(t, err)

	effect, ok := c.Resolve("ACT-TW-01", 0)
	require.True(t, ok)
	assert.Equal(t, -1, effect.IPChange)
	effect, ok = c.Resolve("ACT-TW-01", 3)
	require.True(t, ok)
	assert.Equal(t, "hit", effect.Result)
}

func TestParse_RejectsBadRangeKey(t *testing.T) {
	data := []byte(`[{
		"card_number": "ACT-TW-02",
		"requires_dice_roll": true,
		"dice_sides": 6,
		"dice_effects": {"x-5": {"result": "?", "ip_change": 0}}
	}]`)
	_, err := parse(data)
	require.ErrorIs(t, err, ErrBadRangeKey)
}
