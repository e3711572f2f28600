package service

import (
	"context"

	"pandemic-deck/deck"
	"pandemic-deck/dto"
	"pandemic-deck/entities"
)

func (s *Session) DiscardInfectionCard(ctx context.Context, city string) (dto.Snapshot, error) {
	return s.apply(ctx, "discard_infection", func(state *entities.GameState) error {
		return deck.DiscardInfectionCard(state, city)
	})
}

// TriggerEpidemic 抽到传染卡并以 bottomCity 作为底牌结算
func (s *Session) TriggerEpidemic(ctx context.Context, bottomCity string) (dto.Snapshot, error) {
	return s.apply(ctx, "draw_player_epidemic", func(state *entities.GameState) error {
		return deck.DrawPlayerEpidemic(state, bottomCity)
	})
}

func (s *Session) RemoveDiscardedInfectionCard(ctx context.Context, city string) (dto.Snapshot, error) {
	return s.apply(ctx, "remove_discarded_infection", func(state *entities.GameState) error {
		return deck.RemoveDiscardedInfectionCard(state, city)
	})
}

func (s *Session) ReturnRemovedInfectionCard(ctx context.Context, city string, zone deck.Zone) (dto.Snapshot, error) {
	return s.apply(ctx, "return_removed_infection", func(state *entities.GameState) error {
		return deck.ReturnRemovedInfectionCard(state, city, zone)
	})
}

func (s *Session) AddCity(ctx context.Context, name string, count int, color entities.CityColor) (dto.Snapshot, error) {
	return s.apply(ctx, "add_city", func(state *entities.GameState) error {
		return deck.AddCity(state, name, count, color)
	})
}

func (s *Session) DrawPlayerCity(ctx context.Context, city string) (dto.Snapshot, error) {
	return s.apply(ctx, "draw_player_city", func(state *entities.GameState) error {
		return deck.DrawPlayerCity(state, city)
	})
}

func (s *Session) DrawPlayerEvent(ctx context.Context) (dto.Snapshot, error) {
	return s.apply(ctx, "draw_player_event", deck.DrawPlayerEvent)
}

func (s *Session) DrawPlayerEpidemicWithoutEffect(ctx context.Context) (dto.Snapshot, error) {
	return s.apply(ctx, "draw_player_epidemic_without_effect", deck.DrawPlayerEpidemicWithoutEffect)
}

func (s *Session) RemovePlayerCityCard(ctx context.Context, city string) (dto.Snapshot, error) {
	return s.apply(ctx, "remove_player_city", func(state *entities.GameState) error {
		return deck.RemovePlayerCityCard(state, city)
	})
}

func (s *Session) ReturnRemovedPlayerCityCard(ctx context.Context, city string) (dto.Snapshot, error) {
	return s.apply(ctx, "return_removed_player_city", func(state *entities.GameState) error {
		return deck.ReturnRemovedPlayerCityCard(state, city)
	})
}

// NewGame 保留城市和被移除的卡，重新开始一局
func (s *Session) NewGame(ctx context.Context, setup entities.GameSetup) (dto.Snapshot, error) {
	return s.apply(ctx, "new_game", func(state *entities.GameState) error {
		next, err := deck.NewGame(state, setup)
		if err != nil {
			return err
		}
		*state = next
		return nil
	})
}

// Reset 回到默认城市的初始状态
func (s *Session) Reset(ctx context.Context) (dto.Snapshot, error) {
	return s.apply(ctx, "reset", func(state *entities.GameState) error {
		*state = deck.InitialState()
		return nil
	})
}
