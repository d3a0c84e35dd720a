// Package oddsmath 赔率换算：美式/小数赔率、无抽水隐含概率、edge 与凯利比例
package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal 美式赔率转小数赔率
// +150 → 2.50，-150 → 1.6667
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("美式赔率不能为 0")
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// DecimalToAmerican 小数赔率转美式赔率（四舍五入到整数）
// 2.50 → +150，1.6667 → -150
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("小数赔率必须大于 1: %v", decimal)
	}
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// DecimalToImpliedProbability 小数赔率转隐含概率（不含抽水）：1/decimal
func DecimalToImpliedProbability(decimal float64) (float64, error) {
	if decimal < 1.0 {
		return 0, fmt.Errorf("小数赔率不能小于 1: %v", decimal)
	}
	return 1.0 / decimal, nil
}

// AmericanToImpliedProbability 美式赔率直接转隐含概率
// +a → 100/(a+100)，-a → a/(a+100)
func AmericanToImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("美式赔率不能为 0")
	}
	if american > 0 {
		return 100.0 / (float64(american) + 100.0), nil
	}
	a := float64(-american)
	return a / (a + 100.0), nil
}

// ProbabilityToDecimal 概率转公平小数赔率
func ProbabilityToDecimal(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("概率必须在 (0,1) 区间: %v", probability)
	}
	return 1.0 / probability, nil
}

// ProbabilityToAmerican 概率转公平美式赔率
func ProbabilityToAmerican(probability float64) (int, error) {
	decimal, err := ProbabilityToDecimal(probability)
	if err != nil {
		return 0, err
	}
	return DecimalToAmerican(decimal)
}

// Edge 模型概率减去隐含概率，正数即价值投注
func Edge(modelProbability, impliedProbability float64) float64 {
	return modelProbability - impliedProbability
}

// EdgeFromAmerican 直接由美式赔率计算 edge
func EdgeFromAmerican(modelProbability float64, american int) (float64, error) {
	implied, err := AmericanToImpliedProbability(american)
	if err != nil {
		return 0, err
	}
	return Edge(modelProbability, implied), nil
}

// Round 保留 places 位小数
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
