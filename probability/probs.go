package probability

import (
	"fmt"
	"slices"
	"strings"

	"pandemic-deck/entities"
)

// Pile 一个无序的牌堆（城市 -> 张数）
type Pile []entities.CityCount

func (p Pile) Total() int {
	total := 0
	for _, c := range p {
		total += c.Count
	}
	return total
}

// Distribution 抽到的张数 -> 概率
type Distribution map[int]float64

// certain 必然抽到 draw 张
func certain(draw int) Distribution {
	return Distribution{draw: 1}
}

type PileResult struct {
	// Remaining 本堆抽完后还需要从下一堆继续抽的张数
	Remaining int
	Cities    map[string]Distribution
}

// Ordering 输出列表的排序规则，*entities.CityOrdering 实现了它
type Ordering interface {
	Compare(a, b string) int
}

type DrawProbability struct {
	Draw        int     `json:"draw"`
	Probability float64 `json:"probability"`
}

type CityProbability struct {
	Name  string            `json:"name"`
	Probs []DrawProbability `json:"probs"`
}

// PileProbs 计算从单个牌堆抽 numDraw 张时每个城市的超几何分布
func PileProbs(pile Pile, numDraw int) PileResult {
	total := pile.Total()
	result := PileResult{Cities: make(map[string]Distribution, len(pile))}

	if numDraw <= 0 {
		for _, city := range pile {
			result.Cities[city.Name] = certain(0)
		}
		return result
	}

	if total <= numDraw {
		result.Remaining = numDraw - total
		for _, city := range pile {
			result.Cities[city.Name] = certain(city.Count)
		}
		return result
	}

	for _, city := range pile {
		dist := Distribution{}
		for d := 0; d <= min(city.Count, numDraw); d++ {
			if p := hypergeometric(total, city.Count, d, numDraw); p > 0 || d == 0 {
				dist[d] = p
			}
		}
		result.Cities[city.Name] = dist
	}
	return result
}

// MergeProbs 把两个相邻牌堆的分布按城市做卷积。
// 一侧缺少的城市视为必然抽到 0 张
func MergeProbs(a, b map[string]Distribution) map[string]Distribution {
	merged := make(map[string]Distribution, max(len(a), len(b)))
	for name := range a {
		merged[name] = nil
	}
	for name := range b {
		merged[name] = nil
	}

	for name := range merged {
		first, ok := a[name]
		if !ok {
			first = certain(0)
		}
		second, ok := b[name]
		if !ok {
			second = certain(0)
		}

		dist := Distribution{}
		for d1, p1 := range first {
			for d2, p2 := range second {
				dist[d1+d2] += p1 * p2
			}
		}
		for d, p := range dist {
			if p == 0 && d != 0 {
				delete(dist, d)
			}
		}
		merged[name] = dist
	}
	return merged
}

// calculate 依次从各个牌堆抽牌，返回每个城市的总分布以及出现过的城市名
func calculate(piles []Pile, numDraw int) (map[string]Distribution, []string, error) {
	if numDraw < 1 {
		return nil, nil, fmt.Errorf("%w: draw count must be at least 1, got %d", entities.ErrValidation, numDraw)
	}

	total := 0
	var names []string
	seen := map[string]bool{}
	for _, pile := range piles {
		for _, city := range pile {
			if city.Count < 0 {
				return nil, nil, fmt.Errorf("%w: negative card count for %s", entities.ErrValidation, city.Name)
			}
			total += city.Count
			if !seen[city.Name] {
				seen[city.Name] = true
				names = append(names, city.Name)
			}
		}
	}
	if total < numDraw {
		return nil, nil, fmt.Errorf("%w: cannot draw %d cards from %d", entities.ErrInsufficientCards, numDraw, total)
	}

	acc := map[string]Distribution{}
	remaining := numDraw
	for _, pile := range piles {
		if remaining == 0 {
			break
		}
		res := PileProbs(pile, remaining)
		acc = MergeProbs(acc, res.Cities)
		remaining = res.Remaining
	}
	return acc, names, nil
}

// CalculateProbs 按牌堆顺序（B 区各层从上到下，最后是 C 区）计算抽 numDraw 张时
// 每个城市被抽到 0..numDraw 张的精确概率
func CalculateProbs(piles []Pile, numDraw int, ordering Ordering) ([]CityProbability, error) {
	acc, names, err := calculate(piles, numDraw)
	if err != nil {
		return nil, err
	}
	return buildResult(acc, names, numDraw, ordering), nil
}

func buildResult(acc map[string]Distribution, names []string, numDraw int, ordering Ordering) []CityProbability {
	out := make([]CityProbability, 0, len(names))
	for _, name := range names {
		dist, ok := acc[name]
		if !ok {
			dist = certain(0)
		}
		probs := make([]DrawProbability, numDraw+1)
		for d := range probs {
			probs[d] = DrawProbability{Draw: d, Probability: dist[d]}
		}
		out = append(out, CityProbability{Name: name, Probs: probs})
	}

	slices.SortStableFunc(out, func(a, b CityProbability) int {
		if ordering != nil {
			return ordering.Compare(a.Name, b.Name)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
