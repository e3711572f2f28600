package probability

import "math"

// binomial 用连乘计算组合数 C(n, r)，结果过大时返回 +Inf
func binomial(n, r int) float64 {
	if r < 0 || r > n {
		return 0
	}
	if r > n-r {
		r = n - r
	}
	result := 1.0
	for i := 1; i <= r; i++ {
		result = result * float64(n-r+i) / float64(i)
	}
	return result
}

func logFactorial(n int) float64 {
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}

func logBinomial(n, r int) float64 {
	return logFactorial(n) - logFactorial(r) - logFactorial(n-r)
}

// hypergeometric 从 total 张牌（其中 count 张为目标城市）中不放回抽 numDraw 张，
// 恰好抽到 draw 张目标城市的概率
func hypergeometric(total, count, draw, numDraw int) float64 {
	if draw < 0 || draw > count || draw > numDraw || numDraw-draw > total-count || numDraw > total {
		return 0
	}
	num := binomial(count, draw) * binomial(total-count, numDraw-draw)
	den := binomial(total, numDraw)
	if !math.IsInf(num, 0) && !math.IsInf(den, 0) && den > 0 {
		return num / den
	}
	return math.Exp(logBinomial(count, draw) + logBinomial(total-count, numDraw-draw) - logBinomial(total, numDraw))
}
