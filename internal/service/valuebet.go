package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"SmartBetting/internal/cache"
	"SmartBetting/internal/config"
	"SmartBetting/internal/metrics"
	"SmartBetting/internal/model"
	"SmartBetting/internal/oddsmath"
	"SmartBetting/internal/repository"

	"github.com/sirupsen/logrus"
)

// ValueBetService 每日价值投注查询：取数 → 重算 edge → 过滤 → 按 edge 降序截断
type ValueBetService struct {
	repo    repository.ValueBetRepository
	cache   cache.Cache
	metrics *metrics.Metrics
	cfg     config.ValueBetsConfig
	logger  *logrus.Logger
	now     func() time.Time
}

// NewValueBetService 创建 ValueBetService；cache 为 nil 时不缓存
func NewValueBetService(repo repository.ValueBetRepository, c cache.Cache, m *metrics.Metrics, cfg config.ValueBetsConfig, logger *logrus.Logger) *ValueBetService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ValueBetService{
		repo:    repo,
		cache:   c,
		metrics: m,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock 替换时钟（"今天"按 UTC 日计算）
func (s *ValueBetService) SetClock(now func() time.Time) {
	s.now = now
}

// ValueBetQuery 查询参数。Limit<=0 使用默认值；MinEdge 为 nil 使用配置值
type ValueBetQuery struct {
	Limit     int
	MinEdge   *float64
	League    string
	Provider  string
	RiskLevel string
	BetType   string
}

// ValueBetItem 单条价值投注
type ValueBetItem struct {
	BetRecommendationID int64     `json:"bet_recommendation_id"`
	League              string    `json:"league"`
	LeagueCode          string    `json:"league_code,omitempty"`
	HomeTeam            string    `json:"home_team"`
	AwayTeam            string    `json:"away_team"`
	GameTime            time.Time `json:"game_time"`
	Provider            string    `json:"provider"`
	ProviderCode        string    `json:"provider_code,omitempty"`
	BetType             string    `json:"bet_type"`
	LineValue           *float64  `json:"line_value"`
	BookOdds            int       `json:"book_odds"`   // 美式赔率
	DecimalOdds         float64   `json:"decimal_odds"`
	ModelProbability    float64   `json:"model_probability"`
	ImpliedProbability  float64   `json:"implied_probability"`
	Edge                float64   `json:"edge"`
	RiskLevel           string    `json:"risk_level"`
	KellyFraction       float64   `json:"kelly_fraction"` // 全凯利建议仓位比例
}

// ValueBetResult 列表返回
type ValueBetResult struct {
	Date    string         `json:"date"`
	Limit   int            `json:"limit"`
	MinEdge float64        `json:"min_edge"`
	Count   int            `json:"count"`
	Items   []ValueBetItem `json:"items"`
}

// Today 今天（UTC）的价值投注
func (s *ValueBetService) Today(ctx context.Context, q ValueBetQuery) (*ValueBetResult, error) {
	return s.ForDate(ctx, s.now(), q)
}

// ForDate 指定比赛日的价值投注
func (s *ValueBetService) ForDate(ctx context.Context, date time.Time, q ValueBetQuery) (*ValueBetResult, error) {
	limit, minEdge, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	from, to := dayRange(date)
	day := from.Format(dateLayout)

	key := cache.Key("valuebets", day,
		"league="+q.League, "provider="+q.Provider, "risk="+q.RiskLevel, "bet_type="+q.BetType,
		fmt.Sprintf("min_edge=%g", minEdge), fmt.Sprintf("limit=%d", limit))
	var cached ValueBetResult
	hit, err := s.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		s.metrics.CacheError()
		s.logger.WithError(err).WithField("key", key).Warn("读取缓存失败")
	case hit:
		s.metrics.CacheHit()
		s.metrics.ObserveValueBets("cache", cached.Count)
		return &cached, nil
	default:
		s.metrics.CacheMiss()
	}

	rows, err := s.repo.DailyValueBets(ctx, repository.ValueBetFilter{
		From:      from,
		To:        to,
		MinEdge:   minEdge,
		League:    q.League,
		Provider:  q.Provider,
		RiskLevel: q.RiskLevel,
		BetType:   q.BetType,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ValueBetItem, 0, len(rows))
	for _, row := range rows {
		item, err := normalizeValueBet(row)
		if err != nil {
			s.logger.WithError(err).WithField("bet_recommendation_id", row.BetRecommendationID).Warn("跳过无效推荐")
			continue
		}
		if !q.matches(item) || !passesEdge(item.Edge, minEdge) {
			continue
		}
		items = append(items, item)
	}
	items = rankByEdge(items, limit)

	result := &ValueBetResult{
		Date:    day,
		Limit:   limit,
		MinEdge: minEdge,
		Count:   len(items),
		Items:   items,
	}
	s.metrics.ObserveValueBets(s.source(), result.Count)
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("写入缓存失败")
	}
	return result, nil
}

func (s *ValueBetService) source() string {
	if s.cfg.Procedure != "" {
		return "procedure"
	}
	return "projection"
}

func (s *ValueBetService) resolve(q ValueBetQuery) (int, float64, error) {
	limit := q.Limit
	if limit < 0 {
		return 0, 0, invalidf("limit 不能为负数: %d", limit)
	}
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	minEdge := s.cfg.MinEdge
	if q.MinEdge != nil {
		minEdge = *q.MinEdge
	}
	if math.IsNaN(minEdge) || math.IsInf(minEdge, 0) || minEdge < 0 || minEdge >= 1 {
		return 0, 0, invalidf("min_edge 应在 [0,1) 区间: %v", minEdge)
	}
	return limit, minEdge, nil
}

// matches 存储过程只按日期过滤，其余条件在这里补齐；联赛与提供方按编码或名称匹配，与 SQL 一致
func (q ValueBetQuery) matches(item ValueBetItem) bool {
	if q.League != "" && !codeOrName(q.League, item.LeagueCode, item.League) {
		return false
	}
	if q.Provider != "" && !codeOrName(q.Provider, item.ProviderCode, item.Provider) {
		return false
	}
	if q.RiskLevel != "" && !strings.EqualFold(q.RiskLevel, item.RiskLevel) {
		return false
	}
	if q.BetType != "" && !strings.EqualFold(q.BetType, item.BetType) {
		return false
	}
	return true
}

func codeOrName(want, code, name string) bool {
	return (code != "" && strings.EqualFold(want, code)) || strings.EqualFold(want, name)
}

// passesEdge edge 必须为正；设置了 minEdge 时还需不低于它
func passesEdge(edge, minEdge float64) bool {
	return edge > 0 && edge >= minEdge
}

// normalizeValueBet 转 DTO：缺失隐含概率时由赔率换算，edge 按 模型概率-隐含概率 重算
func normalizeValueBet(row *model.ValueBet) (ValueBetItem, error) {
	decimalOdds, err := oddsmath.AmericanToDecimal(row.BookOdds)
	if err != nil {
		return ValueBetItem{}, err
	}
	modelProb := row.ModelProbability.InexactFloat64()
	if modelProb <= 0 || modelProb >= 1 {
		return ValueBetItem{}, fmt.Errorf("模型概率越界: %v", modelProb)
	}
	implied := row.ImpliedProbability.InexactFloat64()
	if implied <= 0 {
		if implied, err = oddsmath.AmericanToImpliedProbability(row.BookOdds); err != nil {
			return ValueBetItem{}, err
		}
	}

	risk := row.RiskLevel
	if risk == "" {
		risk = oddsmath.ClassifyRisk(modelProb, row.BookOdds)
	}

	return ValueBetItem{
		BetRecommendationID: row.BetRecommendationID,
		League:              row.League,
		LeagueCode:          row.LeagueCode,
		HomeTeam:            row.HomeTeam,
		AwayTeam:            row.AwayTeam,
		GameTime:            row.GameTime.UTC(),
		Provider:            row.Provider,
		ProviderCode:        row.ProviderCode,
		BetType:             row.BetType,
		LineValue:           nullFloat(row.LineValue),
		BookOdds:            row.BookOdds,
		DecimalOdds:         oddsmath.Round(decimalOdds, 4),
		ModelProbability:    oddsmath.Round(modelProb, 5),
		ImpliedProbability:  oddsmath.Round(implied, 5),
		Edge:                oddsmath.Round(oddsmath.Edge(modelProb, implied), 6),
		RiskLevel:           risk,
		KellyFraction:       oddsmath.Round(oddsmath.KellyFraction(modelProb, row.BookOdds), 4),
	}, nil
}

// rankByEdge 按 edge 降序（同 edge 按推荐 id 升序）并截断到 limit
func rankByEdge(items []ValueBetItem, limit int) []ValueBetItem {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Edge != items[j].Edge {
			return items[i].Edge > items[j].Edge
		}
		return items[i].BetRecommendationID < items[j].BetRecommendationID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// RecommendationItem 推荐原始记录
type RecommendationItem struct {
	BetRecommendationID int64     `json:"bet_recommendation_id"`
	GameID              int64     `json:"game_id"`
	MarketOutcomeID     int64     `json:"market_outcome_id"`
	ProviderID          int64     `json:"provider_id"`
	MarketTypeID        int       `json:"market_type_id"`
	PlayerID            *int      `json:"player_id,omitempty"`
	LineValue           *float64  `json:"line_value"`
	AmericanOdds        int       `json:"american_odds"`
	ImpliedProbability  float64   `json:"implied_probability"`
	ModelProbability    float64   `json:"model_probability"`
	Edge                float64   `json:"edge"`
	RiskLevel           string    `json:"risk_level"`
	CreatedUTC          time.Time `json:"created_utc"`
	IsActive            bool      `json:"is_active"`
}

// RecommendationsToday 今天（UTC）生成的推荐，按 edge 降序取前 limit 条
func (s *ValueBetService) RecommendationsToday(ctx context.Context, limit int) ([]RecommendationItem, error) {
	if limit < 0 {
		return nil, invalidf("limit 不能为负数: %d", limit)
	}
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	from, to := dayRange(s.now())
	recs, err := s.repo.ListRecommendationsCreatedBetween(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}

	items := make([]RecommendationItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, RecommendationItem{
			BetRecommendationID: r.BetRecommendationID,
			GameID:              r.GameID,
			MarketOutcomeID:     r.MarketOutcomeID,
			ProviderID:          r.ProviderID,
			MarketTypeID:        r.MarketTypeID,
			PlayerID:            r.PlayerID,
			LineValue:           nullFloat(r.LineValue),
			AmericanOdds:        r.AmericanOdds,
			ImpliedProbability:  r.ImpliedProbability.InexactFloat64(),
			ModelProbability:    r.ModelProbability.InexactFloat64(),
			Edge:                r.ComputedEdge().InexactFloat64(),
			RiskLevel:           r.RiskLevel,
			CreatedUTC:          r.CreatedUTC.UTC(),
			IsActive:            r.IsActive,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Edge > items[j].Edge
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
