package probability

import (
	"fmt"

	"pandemic-deck/entities"
)

type EpidemicWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// EpidemicWeights C 区每张牌成为底牌的概率都相同，城市 x 的权重为 c_x / T
func EpidemicWeights(unseen Pile) ([]EpidemicWeight, error) {
	total := unseen.Total()
	if total <= 0 {
		return nil, fmt.Errorf("%w: no unseen card can be revealed by an epidemic", entities.ErrInsufficientCards)
	}
	var weights []EpidemicWeight
	for _, city := range unseen {
		if city.Count > 0 {
			weights = append(weights, EpidemicWeight{
				Name:   city.Name,
				Weight: float64(city.Count) / float64(total),
			})
		}
	}
	return weights, nil
}

// resolveEpidemic 假设 bottom 为底牌，返回传染结算后的牌堆顺序
func resolveEpidemic(discard Pile, layers []Pile, unseen Pile, bottom string) []Pile {
	swept := Pile{}
	found := false
	for _, city := range discard {
		count := city.Count
		if city.Name == bottom {
			count++
			found = true
		}
		if count > 0 {
			swept = append(swept, entities.CityCount{Name: city.Name, Count: count})
		}
	}
	if !found {
		swept = append(swept, entities.CityCount{Name: bottom, Count: 1})
	}

	rest := make(Pile, 0, len(unseen))
	for _, city := range unseen {
		if city.Name == bottom {
			city.Count--
		}
		rest = append(rest, city)
	}

	piles := make([]Pile, 0, len(layers)+2)
	piles = append(piles, swept)
	piles = append(piles, layers...)
	return append(piles, rest)
}

// CalculateEpidemicProbs 预测下一次传染结算之后抽 numDraw 张的分布。
// 底牌未知，对 C 区每个可能的底牌城市按权重做完整的边缘化
func CalculateEpidemicProbs(discard Pile, layers []Pile, unseen Pile, numDraw int, ordering Ordering) ([]CityProbability, error) {
	weights, err := EpidemicWeights(unseen)
	if err != nil {
		return nil, err
	}

	var names []string
	seen := map[string]bool{}
	register := func(pile Pile) {
		for _, city := range pile {
			if !seen[city.Name] {
				seen[city.Name] = true
				names = append(names, city.Name)
			}
		}
	}
	for _, layer := range layers {
		register(layer)
	}
	register(unseen)
	register(discard)

	acc := map[string]Distribution{}
	for _, w := range weights {
		branch, _, err := calculate(resolveEpidemic(discard, layers, unseen, w.Name), numDraw)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			dist, ok := branch[name]
			if !ok {
				dist = certain(0)
			}
			if acc[name] == nil {
				acc[name] = Distribution{}
			}
			for d, p := range dist {
				acc[name][d] += w.Weight * p
			}
		}
	}
	return buildResult(acc, names, numDraw, ordering), nil
}
