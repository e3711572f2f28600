package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandemic-deck/entities"
)

// playerState 构造一个只有玩家牌堆的小局面，便于精确控制每一堆的张数
func playerState(piles []int, epidemics int) entities.GameState {
	state := InitialState()
	state.PlayerPiles = append([]int(nil), piles...)
	state.InitialEpidemicCounts = epidemics
	state.PlayerEpidemicCounts = epidemics
	state.PlayerEventCounts = 2
	return state
}

func TestDrawFromTopPile_InitialPileHasNoEpidemic(t *testing.T) {
	state := playerState([]int{2, 3, 3}, 2)

	require.ErrorIs(t, DrawPlayerEpidemicWithoutEffect(&state), entities.ErrInsufficientCards)
	assert.Equal(t, []int{2, 3, 3}, state.PlayerPiles)
}

func TestDrawFromTopPile_ConsumesLowestPileFirst(t *testing.T) {
	state := playerState([]int{1, 3, 3}, 2)

	require.NoError(t, DrawPlayerCity(&state, "Cairo"))
	assert.Equal(t, []int{0, 3, 3}, state.PlayerPiles)
	require.NoError(t, DrawPlayerEvent(&state))
	assert.Equal(t, []int{0, 2, 3}, state.PlayerPiles)
	assert.Equal(t, 1, state.PlayerEventCounts)
	assert.Equal(t, 1, state.PlayerDrawnEventCounts)
}

func TestDrawFromTopPile_LastCardIsForcedEpidemic(t *testing.T) {
	state := playerState([]int{0, 2, 3}, 2)
	require.NoError(t, DrawPlayerCity(&state, "Cairo"))
	require.Equal(t, []int{0, 1, 3}, state.PlayerPiles)

	require.ErrorIs(t, DrawPlayerCity(&state, "London"), entities.ErrInsufficientCards)
	require.ErrorIs(t, DrawPlayerEvent(&state), entities.ErrInsufficientCards)
	assert.Equal(t, []int{0, 1, 3}, state.PlayerPiles)

	require.NoError(t, DrawPlayerEpidemicWithoutEffect(&state))
	assert.Equal(t, []int{0, 0, 3}, state.PlayerPiles)
	assert.Equal(t, 1, state.PlayerDrawnEpidemicCounts)
}

func TestDrawFromTopPile_OneEpidemicPerPile(t *testing.T) {
	state := playerState([]int{0, 3, 3}, 2)
	require.NoError(t, DrawPlayerEpidemicWithoutEffect(&state))

	require.ErrorIs(t, DrawPlayerEpidemicWithoutEffect(&state), entities.ErrInsufficientCards)

	// 本堆传染卡已翻出，最后一张可以是普通牌
	require.NoError(t, DrawPlayerCity(&state, "Cairo"))
	require.NoError(t, DrawPlayerCity(&state, "Cairo"))
	assert.Equal(t, []int{0, 0, 3}, state.PlayerPiles)

	require.NoError(t, DrawPlayerEpidemicWithoutEffect(&state))
	assert.Zero(t, state.PlayerEpidemicCounts)
}

func TestDrawFromTopPile_DeckExhausted(t *testing.T) {
	state := playerState([]int{0, 0}, 1)
	state.PlayerEpidemicCounts = 0

	require.ErrorIs(t, DrawPlayerEvent(&state), entities.ErrInsufficientCards)
}

func TestDrawPlayerCity_RequiresUndrawnCard(t *testing.T) {
	state := playerState([]int{10, 3}, 1)
	for i := 0; i < 3; i++ {
		require.NoError(t, DrawPlayerCity(&state, "Lagos"))
	}

	require.ErrorIs(t, DrawPlayerCity(&state, "Lagos"), entities.ErrInsufficientCards)
	assert.Equal(t, 7, state.PlayerPiles[0])
}

func TestDrawPlayerEpidemic_ResolvesInfection(t *testing.T) {
	state := playerState([]int{0, 2}, 1)
	require.NoError(t, DiscardInfectionCard(&state, "London"))

	require.NoError(t, DrawPlayerEpidemic(&state, "Cairo"))

	require.Len(t, state.Layers, 1)
	assert.Equal(t, 1, state.Layers[0].Count("London"))
	assert.Equal(t, 1, state.Layers[0].Count("Cairo"))
	assert.Equal(t, []int{0, 1}, state.PlayerPiles)
	assert.Equal(t, 1, state.PlayerDrawnEpidemicCounts)
}

func TestRemoveAndReturnPlayerCityCard(t *testing.T) {
	state := playerState([]int{10, 3}, 1)
	require.ErrorIs(t, RemovePlayerCityCard(&state, "Cairo"), entities.ErrInsufficientCards)

	require.NoError(t, DrawPlayerCity(&state, "Cairo"))
	require.NoError(t, RemovePlayerCityCard(&state, "Cairo"))
	i, _ := state.CityIndex("Cairo")
	assert.Equal(t, entities.PlayerCityCardState{Name: "Cairo", Undrawn: 2, Drawn: 0, Removed: 1}, state.PlayerCities[i])
	assert.Equal(t, 9, state.PlayerPiles[0])

	require.NoError(t, ReturnRemovedPlayerCityCard(&state, "Cairo"))
	assert.Equal(t, entities.PlayerCityCardState{Name: "Cairo", Undrawn: 2, Drawn: 1, Removed: 0}, state.PlayerCities[i])
	require.ErrorIs(t, ReturnRemovedPlayerCityCard(&state, "Cairo"), entities.ErrInsufficientCards)
	require.NoError(t, CheckConservation(&state))
}
