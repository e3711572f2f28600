package deck

import (
	"fmt"

	"pandemic-deck/entities"
)

// ActivePile 返回当前正在抽的牌堆下标，全部抽完时返回 -1
func ActivePile(state *entities.GameState) int {
	for i, count := range state.PlayerPiles {
		if count > 0 {
			return i
		}
	}
	return -1
}

// drawFromTopPile 检查从当前牌堆抽一张牌是否合法，合法则扣减牌堆数量。
// 第 i 堆（i>=1）各含一张传染卡，只有前面各堆的传染卡都翻出后才能翻出第 i 堆的传染卡
func drawFromTopPile(state *entities.GameState, isEpidemic bool) error {
	i := ActivePile(state)
	if i < 0 {
		return fmt.Errorf("%w: player deck exhausted", entities.ErrInsufficientCards)
	}
	drawn := state.DrawnEpidemics()

	if isEpidemic {
		if i == 0 {
			return fmt.Errorf("%w: the initial draw pile holds no epidemic", entities.ErrInsufficientCards)
		}
		if drawn >= i {
			return fmt.Errorf("%w: pile %d already revealed its epidemic", entities.ErrInsufficientCards, i)
		}
	} else if i > 0 && state.PlayerPiles[i] == 1 && drawn < i {
		return fmt.Errorf("%w: the last card of pile %d must be its epidemic", entities.ErrInsufficientCards, i)
	}

	state.PlayerPiles[i]--
	return nil
}

// DrawPlayerCity 抽到一张城市卡
func DrawPlayerCity(state *entities.GameState, city string) error {
	i, err := lookupCity(state, city)
	if err != nil {
		return err
	}
	card := &state.PlayerCities[i]
	if card.Undrawn <= 0 {
		return fmt.Errorf("%w: no %s player card left in the deck", entities.ErrInsufficientCards, card.Name)
	}
	if err := drawFromTopPile(state, false); err != nil {
		return err
	}
	card.Undrawn--
	card.Drawn++
	return nil
}

// DrawPlayerEvent 抽到一张事件卡
func DrawPlayerEvent(state *entities.GameState) error {
	if state.PlayerEventCounts <= 0 {
		return fmt.Errorf("%w: no event card left in the deck", entities.ErrInsufficientCards)
	}
	if err := drawFromTopPile(state, false); err != nil {
		return err
	}
	state.PlayerEventCounts--
	state.PlayerDrawnEventCounts++
	return nil
}

func drawEpidemic(state *entities.GameState) error {
	if state.PlayerEpidemicCounts <= 0 {
		return fmt.Errorf("%w: no epidemic card left in the deck", entities.ErrInsufficientCards)
	}
	if err := drawFromTopPile(state, true); err != nil {
		return err
	}
	state.PlayerEpidemicCounts--
	state.PlayerDrawnEpidemicCounts++
	return nil
}

// DrawPlayerEpidemic 抽到传染卡并立即结算感染牌堆
func DrawPlayerEpidemic(state *entities.GameState, bottomCity string) error {
	if err := drawEpidemic(state); err != nil {
		return err
	}
	return ResolveEpidemic(state, bottomCity)
}

// DrawPlayerEpidemicWithoutEffect 只记录抽到传染卡，不改动感染牌堆
func DrawPlayerEpidemicWithoutEffect(state *entities.GameState) error {
	return drawEpidemic(state)
}

// RemovePlayerCityCard 把一张已抽出的城市卡永久移出
func RemovePlayerCityCard(state *entities.GameState, city string) error {
	i, err := lookupCity(state, city)
	if err != nil {
		return err
	}
	card := &state.PlayerCities[i]
	if card.Drawn <= 0 {
		return fmt.Errorf("%w: no drawn %s player card to remove", entities.ErrInsufficientCards, card.Name)
	}
	if card.Removed >= state.Cities[i].PlayerCardsCount {
		return fmt.Errorf("%w: every %s player card is already removed", entities.ErrInsufficientCards, card.Name)
	}
	card.Drawn--
	card.Removed++
	return nil
}

// ReturnRemovedPlayerCityCard 恢复一张被移出的城市卡
func ReturnRemovedPlayerCityCard(state *entities.GameState, city string) error {
	i, err := lookupCity(state, city)
	if err != nil {
		return err
	}
	card := &state.PlayerCities[i]
	if card.Removed <= 0 {
		return fmt.Errorf("%w: no removed %s player card to return", entities.ErrInsufficientCards, card.Name)
	}
	card.Removed--
	card.Drawn++
	return nil
}
