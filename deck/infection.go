package deck

import (
	"fmt"

	"pandemic-deck/entities"
)

// Zone 被移除的感染卡可以恢复到的区域
type Zone string

const (
	ZoneDiscard Zone = "A"
	ZoneRestack Zone = "B"
	ZoneSafe    Zone = "C"
)

func ParseZone(s string) (Zone, error) {
	switch z := Zone(s); z {
	case ZoneDiscard, ZoneRestack, ZoneSafe:
		return z, nil
	}
	return "", fmt.Errorf("%w: invalid zone %q", entities.ErrValidation, s)
}

// PruneEmptyLayers 删除已经抽空的 B 区层
func PruneEmptyLayers(state *entities.GameState) {
	kept := state.Layers[:0]
	for _, layer := range state.Layers {
		if layer.Total() > 0 {
			kept = append(kept, layer)
		}
	}
	state.Layers = kept
}

// DiscardInfectionCard 从感染牌堆顶抽一张牌放入弃牌区。
// 有 B 区时只能从最上层抽，否则从 C 区抽
func DiscardInfectionCard(state *entities.GameState, city string) error {
	i, err := lookupCity(state, city)
	if err != nil {
		return err
	}
	PruneEmptyLayers(state)

	card := &state.Infection[i]
	if len(state.Layers) > 0 {
		top := &state.Layers[0]
		if top.Count(card.Name) <= 0 {
			return fmt.Errorf("%w: no %s card in the top restack layer", entities.ErrInsufficientCards, card.Name)
		}
		top.Add(card.Name, -1)
		PruneEmptyLayers(state)
	} else {
		if card.Safe <= 0 {
			return fmt.Errorf("%w: no unseen %s card left", entities.ErrInsufficientCards, card.Name)
		}
		card.Safe--
	}
	card.Discard++
	return nil
}

// ResolveEpidemic 结算传染：bottomCity 是从 C 区底部翻出的牌，
// 之后所有弃牌洗成新的一层放到 B 区最上面
func ResolveEpidemic(state *entities.GameState, bottomCity string) error {
	i, err := lookupCity(state, bottomCity)
	if err != nil {
		return err
	}
	card := &state.Infection[i]
	if card.Safe <= 0 {
		return fmt.Errorf("%w: no unseen %s card for the epidemic", entities.ErrInsufficientCards, card.Name)
	}
	card.Safe--
	card.Discard++

	layer := entities.RestackLayer{ID: state.NextLayerID}
	for j := range state.Infection {
		inf := &state.Infection[j]
		if inf.Discard > 0 {
			layer.Cards = append(layer.Cards, entities.CityCount{Name: inf.Name, Count: inf.Discard})
			inf.Discard = 0
		}
	}
	if len(layer.Cards) == 0 {
		return fmt.Errorf("%w: epidemic sweep found no discarded cards", entities.ErrInternalInvariant)
	}

	state.NextLayerID++
	state.Layers = append([]entities.RestackLayer{layer}, state.Layers...)
	return nil
}

// RemoveDiscardedInfectionCard 把一张弃牌移出游戏（E 区）
func RemoveDiscardedInfectionCard(state *entities.GameState, city string) error {
	i, err := lookupCity(state, city)
	if err != nil {
		return err
	}
	card := &state.Infection[i]
	if card.Discard <= 0 {
		return fmt.Errorf("%w: no discarded %s card to remove", entities.ErrInsufficientCards, card.Name)
	}
	card.Discard--
	card.Removed++
	return nil
}

// ReturnRemovedInfectionCard 把 E 区的一张牌恢复到 A/B/C 区
func ReturnRemovedInfectionCard(state *entities.GameState, city string, zone Zone) error {
	i, err := lookupCity(state, city)
	if err != nil {
		return err
	}
	if _, err := ParseZone(string(zone)); err != nil {
		return err
	}
	card := &state.Infection[i]
	if card.Removed <= 0 {
		return fmt.Errorf("%w: no removed %s card to return", entities.ErrInsufficientCards, card.Name)
	}

	card.Removed--
	switch zone {
	case ZoneDiscard:
		card.Discard++
	case ZoneRestack:
		PruneEmptyLayers(state)
		if len(state.Layers) == 0 {
			state.Layers = []entities.RestackLayer{{ID: state.NextLayerID}}
			state.NextLayerID++
		}
		state.Layers[0].Add(card.Name, 1)
	case ZoneSafe:
		card.Safe++
	}
	return nil
}
