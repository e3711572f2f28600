package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandemic-deck/entities"
	"pandemic-deck/utils"
)

func TestInitialState_DealsDefaultSetup(t *testing.T) {
	state := InitialState()

	assert.Equal(t, entities.DefaultSetup, state.Setup)
	assert.Equal(t, 5, state.InitialEpidemicCounts)
	assert.Equal(t, []int{8, 5, 5, 5, 5, 4}, state.PlayerPiles)
	assert.Equal(t, 27+5, utils.Sum(state.PlayerPiles))
}

func TestNewGame_ReturnsCardsToSafeButKeepsRemoved(t *testing.T) {
	state := InitialState()
	require.NoError(t, DiscardInfectionCard(&state, "Cairo"))
	require.NoError(t, RemoveDiscardedInfectionCard(&state, "Cairo"))
	require.NoError(t, DiscardInfectionCard(&state, "London"))
	require.NoError(t, ResolveEpidemic(&state, "Lagos"))
	require.NoError(t, DrawPlayerCity(&state, "Tripoli"))
	require.NoError(t, RemovePlayerCityCard(&state, "Tripoli"))
	require.NoError(t, AddCity(&state, "Bogota", 4, entities.CityColorYellow))

	next, err := NewGame(&state, entities.GameSetup{Players: 2, Events: 3})
	require.NoError(t, err)

	assert.Empty(t, next.Layers)
	cairo := infectionOf(t, &next, "Cairo")
	assert.Equal(t, 2, cairo.Safe)
	assert.Equal(t, 1, cairo.Removed)
	bogota := infectionOf(t, &next, "Bogota")
	assert.Equal(t, 4, bogota.Safe)
	assert.Zero(t, bogota.Pending)

	i, _ := next.CityIndex("Tripoli")
	assert.Equal(t, 2, next.PlayerCities[i].Undrawn)
	assert.Equal(t, 1, next.PlayerCities[i].Removed)

	// 27 + 4 - 1 = 30 张城市卡
	assert.Equal(t, 5, next.InitialEpidemicCounts)
	assert.Equal(t, 3, next.PlayerEventCounts)
	assert.Equal(t, 8, next.PlayerPiles[0])
	assert.Equal(t, 30+3+5, utils.Sum(next.PlayerPiles))
	for i := 1; i < len(next.PlayerPiles)-1; i++ {
		assert.GreaterOrEqual(t, next.PlayerPiles[i], next.PlayerPiles[i+1])
	}
	require.NoError(t, CheckConservation(&next))
}

func TestNewGame_Validation(t *testing.T) {
	state := InitialState()

	_, err := NewGame(&state, entities.GameSetup{Players: 1})
	require.ErrorIs(t, err, entities.ErrValidation)
	_, err = NewGame(&state, entities.GameSetup{Players: 5})
	require.ErrorIs(t, err, entities.ErrValidation)
	_, err = NewGame(&state, entities.GameSetup{Players: 2, Events: -1})
	require.ErrorIs(t, err, entities.ErrValidation)
}

func TestDealPlayerPiles(t *testing.T) {
	piles, err := dealPlayerPiles(40, 8, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 7, 7, 6, 6, 6, 6}, piles)

	_, err = dealPlayerPiles(5, 8, 5)
	require.ErrorIs(t, err, entities.ErrInsufficientCards)
}

func TestEpidemicCountFor(t *testing.T) {
	tests := map[int]int{0: 5, 36: 5, 37: 6, 44: 6, 51: 7, 57: 8, 62: 9, 63: 10, 200: 10}
	for cards, want := range tests {
		assert.Equal(t, want, entities.EpidemicCountFor(cards), "cards=%d", cards)
	}
}

// 随机执行大量操作，所有被接受的操作之后卡牌总数都必须守恒
func TestConservation_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	state := InitialState()
	zones := []Zone{ZoneDiscard, ZoneRestack, ZoneSafe}

	accepted := 0
	for step := 0; step < 3000; step++ {
		city := state.Cities[rng.Intn(len(state.Cities))].Name
		next := state.Clone()

		var err error
		switch rng.Intn(10) {
		case 0, 1, 2:
			err = DiscardInfectionCard(&next, city)
		case 3:
			err = DrawPlayerEpidemic(&next, city)
		case 4:
			err = RemoveDiscardedInfectionCard(&next, city)
		case 5:
			err = ReturnRemovedInfectionCard(&next, city, zones[rng.Intn(len(zones))])
		case 6:
			err = DrawPlayerCity(&next, city)
		case 7:
			if rng.Intn(2) == 0 {
				err = RemovePlayerCityCard(&next, city)
			} else {
				err = ReturnRemovedPlayerCityCard(&next, city)
			}
		case 8:
			err = DrawPlayerEpidemicWithoutEffect(&next)
		case 9:
			if rng.Intn(20) == 0 {
				next, err = NewGame(&next, entities.GameSetup{Players: 2 + rng.Intn(3), Events: rng.Intn(5)})
			} else {
				err = DrawPlayerEvent(&next)
			}
		}
		if err != nil {
			continue
		}
		PruneEmptyLayers(&next)
		require.NoError(t, CheckConservation(&next), "step %d", step)
		for _, layer := range next.Layers {
			require.Positive(t, layer.Total())
		}
		state = next
		accepted++
	}
	assert.Greater(t, accepted, 100)
}
