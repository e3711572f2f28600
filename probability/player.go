package probability

import (
	"fmt"

	"pandemic-deck/entities"
)

// PlayerEpidemicChance 接下来 numDraw 张玩家牌中至少出现一张传染卡的概率。
// 第 i 堆（i>=1）的传染卡尚未翻出时，它在该堆剩余 n 张中的位置是均匀的
func PlayerEpidemicChance(piles []int, drawnEpidemics, numDraw int) (float64, error) {
	if numDraw < 0 {
		return 0, fmt.Errorf("%w: draw count must not be negative", entities.ErrValidation)
	}

	noEpidemic := 1.0
	remaining := numDraw
	for i, n := range piles {
		if remaining == 0 {
			break
		}
		if n <= 0 {
			continue
		}
		take := min(remaining, n)
		if i > 0 && drawnEpidemics < i {
			noEpidemic *= float64(n-take) / float64(n)
		}
		remaining -= take
	}
	return 1 - noEpidemic, nil
}
