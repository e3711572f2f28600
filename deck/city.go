package deck

import (
	"fmt"

	"pandemic-deck/entities"
)

// lookupCity 校验城市名并返回其下标
func lookupCity(state *entities.GameState, name string) (int, error) {
	name = entities.NormalizeCityName(name)
	if name == "" {
		return -1, fmt.Errorf("%w: city name is required", entities.ErrValidation)
	}
	i, ok := state.CityIndex(name)
	if !ok {
		return -1, fmt.Errorf("%w: unknown city %q", entities.ErrValidation, name)
	}
	return i, nil
}

// AddCity 注册一个新城市。新城市的感染卡先进入 D 区，下一局开始时才加入牌堆
func AddCity(state *entities.GameState, name string, count int, color entities.CityColor) error {
	name = entities.NormalizeCityName(name)
	if name == "" {
		return fmt.Errorf("%w: city name is required", entities.ErrValidation)
	}
	if count <= 1 {
		return fmt.Errorf("%w: card count must be greater than 1, got %d", entities.ErrValidation, count)
	}
	if !color.Valid() {
		return fmt.Errorf("%w: invalid city color %q", entities.ErrValidation, color)
	}
	if _, ok := state.CityIndex(name); ok {
		return fmt.Errorf("%w: %s", entities.ErrDuplicateCity, name)
	}

	state.Cities = append(state.Cities, entities.CityInfo{
		Name:                name,
		Color:               color,
		InfectionCardsCount: count,
		PlayerCardsCount:    count,
	})
	state.Infection = append(state.Infection, entities.InfectionCityCardState{
		Name:    name,
		Pending: count,
	})
	state.PlayerCities = append(state.PlayerCities, entities.PlayerCityCardState{
		Name:    name,
		Undrawn: count,
	})
	return nil
}

// CheckConservation 检查每个城市的卡牌总数是否守恒
func CheckConservation(state *entities.GameState) error {
	if len(state.Infection) != len(state.Cities) || len(state.PlayerCities) != len(state.Cities) {
		return fmt.Errorf("%w: city tables out of sync", entities.ErrInternalInvariant)
	}
	for i, city := range state.Cities {
		inf := state.Infection[i]
		if inf.Name != city.Name || state.PlayerCities[i].Name != city.Name {
			return fmt.Errorf("%w: city tables out of order at %s", entities.ErrInternalInvariant, city.Name)
		}
		infection := inf.Discard + inf.Safe + inf.Pending + inf.Removed + state.LayerCount(city.Name)
		if infection != city.InfectionCardsCount {
			return fmt.Errorf("%w: %s has %d infection cards, want %d",
				entities.ErrInternalInvariant, city.Name, infection, city.InfectionCardsCount)
		}
		p := state.PlayerCities[i]
		if p.Undrawn+p.Drawn+p.Removed != city.PlayerCardsCount {
			return fmt.Errorf("%w: %s has %d player cards, want %d",
				entities.ErrInternalInvariant, city.Name, p.Undrawn+p.Drawn+p.Removed, city.PlayerCardsCount)
		}
	}
	return nil
}
