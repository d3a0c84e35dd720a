package oddsmath

// KellyFraction 全凯利下注比例 (b*p - q) / b，b 为净赔率。
// 无优势或参数非法时返回 0
func KellyFraction(modelProbability float64, american int) float64 {
	if modelProbability <= 0 || modelProbability >= 1 {
		return 0
	}
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0
	}
	b := decimal - 1.0
	p := modelProbability
	q := 1.0 - p

	f := (b*p - q) / b
	if f <= 0 {
		return 0
	}
	return f
}

// 风险分档阈值
const (
	lowRiskMinProbability  = 0.55 // 模型胜率不低于该值且为热门赔率 → Low
	highRiskMaxProbability = 0.35 // 模型胜率低于该值或长赔 → High
	longshotAmerican       = 250
)

// ClassifyRisk 根据模型胜率与赔率给出 Low / Medium / High 风险档，
// 仅在推荐记录未落库风险等级时使用
func ClassifyRisk(modelProbability float64, american int) string {
	switch {
	case modelProbability < highRiskMaxProbability || american >= longshotAmerican:
		return "High"
	case modelProbability >= lowRiskMinProbability && american < 0:
		return "Low"
	default:
		return "Medium"
	}
}
