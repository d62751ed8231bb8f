package stats

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

func TestCompute_Empty(t *testing.T) {
	result := Compute(nil)

	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Stats)
}

func TestCompute_SingleLevel(t *testing.T) {
	result := Compute([]domain.LevelCount{
		{Level: domain.LevelVerySatisfied, Count: 2},
	})

	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Stats, 1)
	assert.Equal(t, domain.LevelVerySatisfied, result.Stats[0].Level)
	assert.Equal(t, 2, result.Stats[0].Count)
	assert.Equal(t, "100.0", result.Stats[0].Percentage)
}

func TestCompute_ZeroCountRow(t *testing.T) {
	// A zero-count row with zero total must not divide by zero
	result := Compute([]domain.LevelCount{
		{Level: domain.LevelSatisfied, Count: 0},
	})

	assert.Equal(t, 0, result.Total)
	require.Len(t, result.Stats, 1)
	assert.Equal(t, "0.0", result.Stats[0].Percentage)
}

func TestCompute_Rounding(t *testing.T) {
	result := Compute([]domain.LevelCount{
		{Level: domain.LevelVerySatisfied, Count: 1},
		{Level: domain.LevelSatisfied, Count: 1},
		{Level: domain.LevelUnsatisfied, Count: 1},
	})

	assert.Equal(t, 3, result.Total)
	for _, s := range result.Stats {
		assert.Equal(t, "33.3", s.Percentage)
	}
}

func TestCompute_PreservesInputOrder(t *testing.T) {
	result := Compute([]domain.LevelCount{
		{Level: domain.LevelUnsatisfied, Count: 1},
		{Level: domain.LevelVerySatisfied, Count: 3},
	})

	require.Len(t, result.Stats, 2)
	assert.Equal(t, domain.LevelUnsatisfied, result.Stats[0].Level)
	assert.Equal(t, domain.LevelVerySatisfied, result.Stats[1].Level)
}

func TestCompute_PercentagesSumNear100(t *testing.T) {
	tests := []struct {
		name   string
		counts []domain.LevelCount
	}{
		{"thirds", []domain.LevelCount{{Level: "a", Count: 1}, {Level: "b", Count: 1}, {Level: "c", Count: 1}}},
		{"sevenths", []domain.LevelCount{{Level: "a", Count: 3}, {Level: "b", Count: 4}}},
		{"skewed", []domain.LevelCount{{Level: "a", Count: 999}, {Level: "b", Count: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.counts)

			sum := 0.0
			for _, s := range result.Stats {
				v, err := strconv.ParseFloat(s.Percentage, 64)
				require.NoError(t, err)
				sum += v
			}
			assert.InDelta(t, 100.0, sum, 0.1, fmt.Sprintf("percentages sum to %v", sum))
		})
	}
}
