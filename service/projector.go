package service

import (
	"slices"

	"golang.org/x/text/language"

	"pandemic-deck/deck"
	"pandemic-deck/dto"
	"pandemic-deck/entities"
	"pandemic-deck/probability"
	"pandemic-deck/utils"
)

// Project 把内部状态转换成排好序的只读快照（纯函数）
func Project(state *entities.GameState, locale language.Tag) dto.Snapshot {
	ordering := entities.NewCityOrdering(state.Cities, locale)
	sortZone := func(list []dto.ZoneCityCount) []dto.ZoneCityCount {
		slices.SortStableFunc(list, func(a, b dto.ZoneCityCount) int {
			return ordering.Compare(a.Name, b.Name)
		})
		return list
	}

	n := len(state.Cities)
	snapshot := dto.Snapshot{
		Revision:    state.Revision,
		Cities:      append([]entities.CityInfo(nil), state.Cities...),
		ZoneA:       make([]dto.ZoneCityCount, 0, n),
		ZoneBLayers: make([]dto.DeckLayer, 0, len(state.Layers)),
		ZoneC:       make([]dto.ZoneCityCount, 0, n),
		ZoneD:       make([]dto.ZoneCityCount, 0, n),
		ZoneE:       make([]dto.ZoneCityCount, 0, n),
	}
	slices.SortStableFunc(snapshot.Cities, func(a, b entities.CityInfo) int {
		return ordering.Compare(a.Name, b.Name)
	})

	for i, city := range state.Cities {
		inf := state.Infection[i]
		snapshot.ZoneA = append(snapshot.ZoneA, dto.ZoneCityCount{Name: city.Name, Color: city.Color, Count: inf.Discard})
		snapshot.ZoneC = append(snapshot.ZoneC, dto.ZoneCityCount{Name: city.Name, Color: city.Color, Count: inf.Safe})
		snapshot.ZoneD = append(snapshot.ZoneD, dto.ZoneCityCount{Name: city.Name, Color: city.Color, Count: inf.Pending})
		snapshot.ZoneE = append(snapshot.ZoneE, dto.ZoneCityCount{Name: city.Name, Color: city.Color, Count: inf.Removed})
		snapshot.Totals.A += inf.Discard
		snapshot.Totals.C += inf.Safe
		snapshot.Totals.D += inf.Pending
		snapshot.Totals.E += inf.Removed
	}
	sortZone(snapshot.ZoneA)
	sortZone(snapshot.ZoneC)
	sortZone(snapshot.ZoneD)
	sortZone(snapshot.ZoneE)

	for pos, layer := range state.Layers {
		cities := make([]dto.ZoneCityCount, 0, len(layer.Cards))
		for _, card := range layer.Cards {
			cities = append(cities, dto.ZoneCityCount{Name: card.Name, Color: ordering.Color(card.Name), Count: card.Count})
		}
		total := layer.Total()
		snapshot.ZoneBLayers = append(snapshot.ZoneBLayers, dto.DeckLayer{
			ID:       layer.ID,
			Position: pos + 1,
			Cities:   sortZone(cities),
			Total:    total,
		})
		snapshot.Totals.B += total
	}
	snapshot.Totals.Total = snapshot.Totals.A + snapshot.Totals.B + snapshot.Totals.C
	snapshot.CanTriggerEpidemic = snapshot.Totals.C > 0

	snapshot.Player = projectPlayerDeck(state, ordering)
	return snapshot
}

func projectPlayerDeck(state *entities.GameState, ordering *entities.CityOrdering) dto.PlayerDeck {
	active := deck.ActivePile(state)
	drawn := state.DrawnEpidemics()

	view := dto.PlayerDeck{
		Piles:                make([]dto.PlayerPile, 0, len(state.PlayerPiles)),
		Cities:               make([]dto.PlayerCity, 0, len(state.PlayerCities)),
		EventCount:           state.PlayerEventCounts,
		DrawnEventCount:      state.PlayerDrawnEventCounts,
		EpidemicCount:        state.PlayerEpidemicCounts,
		DrawnEpidemicCount:   state.PlayerDrawnEpidemicCounts,
		InitialEpidemicCount: state.InitialEpidemicCounts,
		CityColorTotals:      make(map[entities.CityColor]int, len(entities.CityColorOrder)),
		RemainingPlayerTotal: utils.Sum(state.PlayerPiles),
		Setup:                state.Setup,
	}
	for _, color := range entities.CityColorOrder {
		view.CityColorTotals[color] = 0
	}

	for i, count := range state.PlayerPiles {
		view.Piles = append(view.Piles, dto.PlayerPile{
			Index:       i,
			Count:       count,
			IsActive:    i == active,
			HasEpidemic: i > 0 && drawn < i,
		})
	}

	for i, city := range state.Cities {
		p := state.PlayerCities[i]
		view.Cities = append(view.Cities, dto.PlayerCity{
			Name:    city.Name,
			Color:   city.Color,
			Undrawn: p.Undrawn,
			Drawn:   p.Drawn,
			Removed: p.Removed,
		})
		view.CityColorTotals[city.Color] += p.Undrawn
		view.RemainingCityTotal += p.Undrawn
	}
	slices.SortStableFunc(view.Cities, func(a, b dto.PlayerCity) int {
		return ordering.Compare(a.Name, b.Name)
	})
	return view
}

// infectionPiles 感染牌堆的抽牌顺序：B 区各层从上到下，最后是 C 区
func infectionPiles(state *entities.GameState) (discard probability.Pile, layers []probability.Pile, unseen probability.Pile) {
	for _, layer := range state.Layers {
		layers = append(layers, append(probability.Pile(nil), layer.Cards...))
	}
	for _, inf := range state.Infection {
		discard = append(discard, entities.CityCount{Name: inf.Name, Count: inf.Discard})
		unseen = append(unseen, entities.CityCount{Name: inf.Name, Count: inf.Safe})
	}
	return discard, layers, unseen
}

// PlayerDrawsPerTurn 每回合抽的玩家牌数
const PlayerDrawsPerTurn = 2

// Forecast 计算感染牌预测以及玩家牌中出现传染卡的概率
func Forecast(state *entities.GameState, draws int, afterEpidemic bool, locale language.Tag) (dto.Forecast, error) {
	ordering := entities.NewCityOrdering(state.Cities, locale)
	discard, layers, unseen := infectionPiles(state)

	var (
		infection []probability.CityProbability
		err       error
	)
	if afterEpidemic {
		infection, err = probability.CalculateEpidemicProbs(discard, layers, unseen, draws, ordering)
	} else {
		infection, err = probability.CalculateProbs(append(layers, unseen), draws, ordering)
	}
	if err != nil {
		return dto.Forecast{}, err
	}

	chance, err := probability.PlayerEpidemicChance(state.PlayerPiles, state.DrawnEpidemics(), PlayerDrawsPerTurn)
	if err != nil {
		return dto.Forecast{}, err
	}
	return dto.Forecast{
		Revision:             state.Revision,
		Draws:                draws,
		AfterEpidemic:        afterEpidemic,
		Infection:            infection,
		PlayerDraws:          PlayerDrawsPerTurn,
		PlayerEpidemicChance: chance,
	}, nil
}
