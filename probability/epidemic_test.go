package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandemic-deck/entities"
)

func TestEpidemicWeights_SumToOne(t *testing.T) {
	weights, err := EpidemicWeights(pile("A", 3, "B", 0, "C", 2, "D", 1))
	require.NoError(t, err)

	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}
	assert.Len(t, weights, 3)
	assert.InDelta(t, 1.0, total, eps)

	_, err = EpidemicWeights(pile("A", 0))
	require.ErrorIs(t, err, entities.ErrInsufficientCards)
}

func TestCalculateEpidemicProbs_SingleCandidate(t *testing.T) {
	// 底牌只能是 B，结算后顶部层为 {A:1, B:1}
	result, err := CalculateEpidemicProbs(pile("A", 1), nil, pile("B", 2), 2, nil)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, probOf(t, result, "A", 1), eps)
	assert.InDelta(t, 1.0, probOf(t, result, "B", 1), eps)
}

func TestCalculateEpidemicProbs_Marginalizes(t *testing.T) {
	// C 区 {A:1, B:1}，弃牌为空：新顶部层只有底牌一张，抽 1 张必然是底牌
	result, err := CalculateEpidemicProbs(nil, nil, pile("A", 1, "B", 1), 1, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, probOf(t, result, "A", 1), eps)
	assert.InDelta(t, 0.5, probOf(t, result, "B", 1), eps)
	assertNormalized(t, result)
}

func TestCalculateEpidemicProbs_KeepsExistingLayersBelowNewLayer(t *testing.T) {
	layers := []Pile{pile("C", 2)}
	result, err := CalculateEpidemicProbs(pile("A", 1), layers, pile("B", 1), 3, nil)
	require.NoError(t, err)

	// 新层 {A:1, B:1} 必然抽完，再从旧层抽 1 张 C
	assert.InDelta(t, 1.0, probOf(t, result, "A", 1), eps)
	assert.InDelta(t, 1.0, probOf(t, result, "B", 1), eps)
	assert.InDelta(t, 1.0, probOf(t, result, "C", 1), eps)
	assertNormalized(t, result)
}

func TestCalculateEpidemicProbs_Errors(t *testing.T) {
	_, err := CalculateEpidemicProbs(pile("A", 1), nil, nil, 1, nil)
	require.ErrorIs(t, err, entities.ErrInsufficientCards)

	_, err = CalculateEpidemicProbs(nil, nil, pile("A", 1), 2, nil)
	require.ErrorIs(t, err, entities.ErrInsufficientCards)
}

func TestPlayerEpidemicChance(t *testing.T) {
	tests := []struct {
		name    string
		piles   []int
		drawn   int
		numDraw int
		want    float64
	}{
		{"initial pile only", []int{4, 5}, 0, 2, 0},
		{"into first epidemic pile", []int{1, 5}, 0, 2, 0.2},
		{"two from fresh pile", []int{0, 5, 5}, 0, 2, 0.4},
		{"epidemic already revealed", []int{0, 3, 5}, 1, 2, 0},
		{"forced last card", []int{0, 1, 5}, 0, 1, 1},
		{"crossing piles", []int{0, 1, 4}, 1, 2, 0.25},
		{"no draws", []int{0, 5}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlayerEpidemicChance(tt.piles, tt.drawn, tt.numDraw)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, eps)
		})
	}

	_, err := PlayerEpidemicChance([]int{1}, 0, -1)
	require.ErrorIs(t, err, entities.ErrValidation)
}
