package deck

import (
	"fmt"

	"pandemic-deck/entities"
)

// InitialState 完全重置后的状态：默认城市全部在 C 区，并按默认参数发好玩家牌堆
func InitialState() entities.GameState {
	state := entities.GameState{NextLayerID: 1}
	for _, city := range entities.DefaultCities {
		state.Cities = append(state.Cities, city)
		state.Infection = append(state.Infection, entities.InfectionCityCardState{
			Name: city.Name,
			Safe: city.InfectionCardsCount,
		})
		state.PlayerCities = append(state.PlayerCities, entities.PlayerCityCardState{
			Name:    city.Name,
			Undrawn: city.PlayerCardsCount,
		})
	}

	next, err := NewGame(&state, entities.DefaultSetup)
	if err != nil {
		// 默认城市和参数是固定的，这里失败说明常量被改坏了
		panic(fmt.Sprintf("deck: default setup is invalid: %v", err))
	}
	return next
}

// NewGame 开始新的一局：除被移除的卡外，所有感染卡（含 D 区）回到 C 区，
// 玩家城市卡全部洗回牌堆，再按玩家数和事件卡数重新分堆
func NewGame(prev *entities.GameState, setup entities.GameSetup) (entities.GameState, error) {
	if setup.Players < entities.MinPlayers || setup.Players > entities.MaxPlayers {
		return entities.GameState{}, fmt.Errorf("%w: players must be between %d and %d, got %d",
			entities.ErrValidation, entities.MinPlayers, entities.MaxPlayers, setup.Players)
	}
	if setup.Events < 0 {
		return entities.GameState{}, fmt.Errorf("%w: event count must not be negative", entities.ErrValidation)
	}

	next := entities.GameState{
		Revision:     prev.Revision,
		Cities:       append([]entities.CityInfo(nil), prev.Cities...),
		Infection:    make([]entities.InfectionCityCardState, len(prev.Cities)),
		PlayerCities: make([]entities.PlayerCityCardState, len(prev.Cities)),
		NextLayerID:  prev.NextLayerID,
		Setup:        setup,
	}

	cityCards := 0
	for i, city := range prev.Cities {
		removed := prev.Infection[i].Removed
		next.Infection[i] = entities.InfectionCityCardState{
			Name:    city.Name,
			Safe:    city.InfectionCardsCount - removed,
			Removed: removed,
		}

		playerRemoved := prev.PlayerCities[i].Removed
		next.PlayerCities[i] = entities.PlayerCityCardState{
			Name:    city.Name,
			Undrawn: city.PlayerCardsCount - playerRemoved,
			Removed: playerRemoved,
		}
		cityCards += city.PlayerCardsCount - playerRemoved
	}

	epidemics := entities.EpidemicCountFor(cityCards)
	piles, err := dealPlayerPiles(cityCards+setup.Events, setup.Players*entities.InitialHandSize(setup.Players), epidemics)
	if err != nil {
		return entities.GameState{}, err
	}

	next.PlayerPiles = piles
	next.PlayerEventCounts = setup.Events
	next.PlayerEpidemicCounts = epidemics
	next.InitialEpidemicCounts = epidemics
	return next, nil
}

// dealPlayerPiles 第 0 堆是开局手牌，其余牌平均分成 epidemics 堆，
// 多出来的牌放在前面的堆，每堆再加入一张传染卡
func dealPlayerPiles(cards, initial, epidemics int) ([]int, error) {
	if initial > cards {
		return nil, fmt.Errorf("%w: %d cards cannot cover %d initial hand cards",
			entities.ErrInsufficientCards, cards, initial)
	}
	rest := cards - initial
	piles := make([]int, epidemics+1)
	piles[0] = initial
	for i := 1; i <= epidemics; i++ {
		piles[i] = rest/epidemics + 1
		if i <= rest%epidemics {
			piles[i]++
		}
	}
	return piles, nil
}
