package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandemic-deck/entities"
)

func TestMemoryStorage_EmptyUntilSaved(t *testing.T) {
	store := NewMemoryStorage()

	history, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, history)
}

func TestMemoryStorage_RoundTripDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	saved := entities.GameStorage{{
		Revision:    3,
		Cities:      []entities.CityInfo{{Name: "Cairo", Color: entities.CityColorBlack, InfectionCardsCount: 3, PlayerCardsCount: 3}},
		Infection:   []entities.InfectionCityCardState{{Name: "Cairo", Safe: 2, Discard: 1}},
		Layers:      []entities.RestackLayer{{ID: 1, Cards: []entities.CityCount{{Name: "Cairo", Count: 1}}}},
		PlayerPiles: []int{4, 5},
	}}
	require.NoError(t, store.Save(ctx, saved))

	saved[0].Infection[0].Safe = 99
	loaded, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2, loaded[0].Infection[0].Safe)
	assert.Equal(t, 1, loaded[0].Layers[0].Count("Cairo"))

	loaded[0].PlayerPiles[0] = 0
	again, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, again[0].PlayerPiles)
}
