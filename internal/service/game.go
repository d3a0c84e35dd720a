package service

import (
	"context"
	"time"

	"SmartBetting/internal/model"
	"SmartBetting/internal/oddsmath"
	"SmartBetting/internal/repository"

	"github.com/sirupsen/logrus"
)

// GameService 比赛列表与详情（盘口、最新赔率、模型预测）
type GameService struct {
	repo   repository.GameRepository
	logger *logrus.Logger
	now    func() time.Time
}

// NewGameService 创建 GameService
func NewGameService(repo repository.GameRepository, logger *logrus.Logger) *GameService {
	return &GameService{repo: repo, logger: logger, now: time.Now}
}

// SetClock 替换时钟
func (s *GameService) SetClock(now func() time.Time) {
	s.now = now
}

// GameQuery 比赛列表参数；Date 为零值时取今天（UTC）
type GameQuery struct {
	Date   time.Time
	League string
	Status string
}

// GameSummary 列表页单场比赛
type GameSummary struct {
	GameID     int64     `json:"game_id"`
	League     string    `json:"league"` // 联赛名称，与价值投注的 league 一致
	LeagueCode string    `json:"league_code"`
	Season     string    `json:"season"`
	GameDate   string    `json:"game_date"`
	StartTime  time.Time `json:"start_time"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	Status     string    `json:"status"`
	HomeScore  *int16    `json:"home_score,omitempty"`
	AwayScore  *int16    `json:"away_score,omitempty"`
	Winner     string    `json:"winner,omitempty"`
	IsOvertime bool      `json:"is_overtime,omitempty"`
}

// GameListResult 比赛列表返回
type GameListResult struct {
	Date  string        `json:"date"`
	Count int           `json:"count"`
	Items []GameSummary `json:"items"`
}

// PriceView 某提供方的最新报价
type PriceView struct {
	Provider           string    `json:"provider"`
	ProviderID         int64     `json:"provider_id"`
	AmericanOdds       int       `json:"american_odds"`
	DecimalOdds        float64   `json:"decimal_odds"`
	ImpliedProbability float64   `json:"implied_probability"`
	SnapshotTime       time.Time `json:"snapshot_time"`
}

// PredictionView 模型预测及相对最优报价的 edge
type PredictionView struct {
	ModelPredictionID int64     `json:"model_prediction_id"`
	Model             string    `json:"model"`
	Version           string    `json:"version"`
	RunType           string    `json:"run_type"`
	WinProbability    float64   `json:"win_probability"`
	FairAmericanOdds  *int      `json:"fair_american_odds,omitempty"`
	Edge              *float64  `json:"edge,omitempty"`
	KellyFraction     *float64  `json:"kelly_fraction,omitempty"`
	CreatedUTC        time.Time `json:"created_utc"`
}

// OutcomeView 盘口选项
type OutcomeView struct {
	MarketOutcomeID int64            `json:"market_outcome_id"`
	Code            string           `json:"code"`
	Description     string           `json:"description"`
	Prices          []PriceView      `json:"prices"`
	BestPrice       *PriceView       `json:"best_price,omitempty"`
	Predictions     []PredictionView `json:"predictions"`
}

// MarketView 盘口
type MarketView struct {
	MarketID  int64         `json:"market_id"`
	Type      string        `json:"type"`
	StatType  string        `json:"stat_type,omitempty"`
	Player    string        `json:"player,omitempty"`
	Period    string        `json:"period"`
	LineValue *float64      `json:"line_value"`
	Outcomes  []OutcomeView `json:"outcomes"`
}

// GameDetail 比赛详情
type GameDetail struct {
	GameSummary
	Markets []MarketView `json:"markets"`
}

// ListGames 某日比赛列表
func (s *GameService) ListGames(ctx context.Context, q GameQuery) (*GameListResult, error) {
	date := q.Date
	if date.IsZero() {
		date = s.now()
	}
	from, to := dayRange(date)
	games, err := s.repo.ListGamesByDate(ctx, repository.GameFilter{
		From:       from,
		To:         to,
		LeagueCode: q.League,
		Status:     q.Status,
	})
	if err != nil {
		return nil, err
	}
	result := &GameListResult{
		Date:  from.Format(dateLayout),
		Items: make([]GameSummary, 0, len(games)),
	}
	for _, g := range games {
		result.Items = append(result.Items, summarizeGame(g))
	}
	result.Count = len(result.Items)
	return result, nil
}

// GetGameDetail 比赛详情；不存在时返回 repository.ErrNotFound
func (s *GameService) GetGameDetail(ctx context.Context, gameID int64) (*GameDetail, error) {
	if gameID <= 0 {
		return nil, invalidf("game_id 必须为正整数: %d", gameID)
	}
	game, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	snaps, err := s.repo.GetLatestOdds(ctx, gameID)
	if err != nil {
		return nil, err
	}
	preds, err := s.repo.ListPredictions(ctx, gameID)
	if err != nil {
		return nil, err
	}

	pricesByOutcome := make(map[int64][]PriceView)
	for _, snap := range snaps {
		pv, err := priceView(snap)
		if err != nil {
			s.logger.WithError(err).WithField("odds_snapshot_id", snap.OddsSnapshotID).Warn("跳过无效赔率快照")
			continue
		}
		pricesByOutcome[snap.MarketOutcomeID] = append(pricesByOutcome[snap.MarketOutcomeID], pv)
	}
	predsByOutcome := make(map[int64][]*model.ModelPrediction)
	for _, p := range preds {
		predsByOutcome[p.MarketOutcomeID] = append(predsByOutcome[p.MarketOutcomeID], p)
	}

	detail := &GameDetail{
		GameSummary: summarizeGame(game),
		Markets:     make([]MarketView, 0, len(game.Markets)),
	}
	for _, m := range game.Markets {
		mv := MarketView{
			MarketID:  m.MarketID,
			Period:    m.Period,
			LineValue: nullFloat(m.LineValue),
			Outcomes:  make([]OutcomeView, 0, len(m.Outcomes)),
		}
		if m.MarketType != nil {
			mv.Type = m.MarketType.Code
		}
		if m.StatType != nil {
			mv.StatType = m.StatType.Code
		}
		if m.Player != nil {
			mv.Player = m.Player.FullName
		}
		for _, o := range m.Outcomes {
			ov := OutcomeView{
				MarketOutcomeID: o.MarketOutcomeID,
				Code:            o.OutcomeCode,
				Description:     o.Description,
				Prices:          pricesByOutcome[o.MarketOutcomeID],
				Predictions:     []PredictionView{},
			}
			if ov.Prices == nil {
				ov.Prices = []PriceView{}
			}
			ov.BestPrice = bestPrice(ov.Prices)
			for _, p := range predsByOutcome[o.MarketOutcomeID] {
				ov.Predictions = append(ov.Predictions, predictionView(p, ov.BestPrice))
			}
			mv.Outcomes = append(mv.Outcomes, ov)
		}
		detail.Markets = append(detail.Markets, mv)
	}
	return detail, nil
}

func summarizeGame(g *model.Game) GameSummary {
	gs := GameSummary{
		GameID:    g.GameID,
		Season:    g.Season,
		GameDate:  g.GameDateUTC.UTC().Format(dateLayout),
		StartTime: g.StartTimeUTC.UTC(),
		Status:    g.Status,
	}
	if g.League != nil {
		gs.League = g.League.Name
		gs.LeagueCode = g.League.Code
	}
	if g.HomeTeam != nil {
		gs.HomeTeam = g.HomeTeam.Name
	}
	if g.AwayTeam != nil {
		gs.AwayTeam = g.AwayTeam.Name
	}
	if r := g.GameResult; r != nil {
		home, away := r.HomeScore, r.AwayScore
		gs.HomeScore = &home
		gs.AwayScore = &away
		gs.Winner = r.Winner()
		gs.IsOvertime = r.IsOvertime
	}
	return gs
}

func priceView(snap *model.OddsSnapshot) (PriceView, error) {
	implied, err := snap.Implied()
	if err != nil {
		return PriceView{}, err
	}
	dec, err := oddsmath.AmericanToDecimal(snap.AmericanOdds)
	if err != nil {
		return PriceView{}, err
	}
	pv := PriceView{
		ProviderID:         snap.ProviderID,
		AmericanOdds:       snap.AmericanOdds,
		DecimalOdds:        oddsmath.Round(dec, 4),
		ImpliedProbability: oddsmath.Round(implied, 5),
		SnapshotTime:       snap.SnapshotTimeUTC.UTC(),
	}
	if snap.Provider != nil {
		pv.Provider = snap.Provider.Name
	}
	return pv, nil
}

// bestPrice 对下注方最有利的报价：小数赔率最高
func bestPrice(prices []PriceView) *PriceView {
	var best *PriceView
	for i := range prices {
		if best == nil || prices[i].DecimalOdds > best.DecimalOdds {
			best = &prices[i]
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}

func predictionView(p *model.ModelPrediction, best *PriceView) PredictionView {
	prob := p.WinProbability.InexactFloat64()
	pv := PredictionView{
		ModelPredictionID: p.ModelPredictionID,
		WinProbability:    prob,
		FairAmericanOdds:  p.FairAmericanOdds,
		CreatedUTC:        p.CreatedUTC.UTC(),
	}
	if pv.FairAmericanOdds == nil {
		if fair, err := oddsmath.ProbabilityToAmerican(prob); err == nil {
			pv.FairAmericanOdds = &fair
		}
	}
	if run := p.ModelRun; run != nil {
		pv.RunType = run.RunType
		if run.Model != nil {
			pv.Model = run.Model.Name
			pv.Version = run.Model.Version
		}
	}
	if best != nil {
		edge := oddsmath.Round(oddsmath.Edge(prob, best.ImpliedProbability), 6)
		kelly := oddsmath.Round(oddsmath.KellyFraction(prob, best.AmericanOdds), 4)
		pv.Edge = &edge
		pv.KellyFraction = &kelly
	}
	return pv
}
