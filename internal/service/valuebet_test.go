package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"SmartBetting/internal/config"
	"SmartBetting/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testValueBetsCfg = config.ValueBetsConfig{DefaultLimit: 50, MaxLimit: 500}

func valueBet(id int64, modelProb, implied string, odds int) *model.ValueBet {
	return &model.ValueBet{
		BetRecommendationID: id,
		League:              "NBA",
		HomeTeam:            "Boston Celtics",
		AwayTeam:            "Miami Heat",
		GameTime:            time.Date(2025, 1, 15, 0, 30, 0, 0, time.UTC),
		Provider:            "DraftKings",
		BetType:             model.MarketTypeMoneyline,
		BookOdds:            odds,
		ModelProbability:    dec(modelProb),
		ImpliedProbability:  dec(implied),
		Edge:                dec("0.999999"), // 故意与重算值不一致
		RiskLevel:           model.RiskMedium,
	}
}

func TestValueBetsTodaySortsByRecomputedEdgeAndCaps(t *testing.T) {
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{
		valueBet(1, "0.55000", "0.50000", 100),  // 0.05
		valueBet(2, "0.60000", "0.50000", 100),  // 0.10
		valueBet(3, "0.45000", "0.50000", 100),  // 负 edge
		valueBet(4, "0.53000", "0.50000", 100),  // 0.03
		valueBet(5, "0.60000", "0.50000", 100),  // 0.10，与 2 同 edge
	}}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())
	svc.SetClock(fixedClock(time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)))

	res, err := svc.Today(context.Background(), ValueBetQuery{Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-15", res.Date)
	assert.Equal(t, 3, res.Limit)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []int64{2, 5, 1}, []int64{res.Items[0].BetRecommendationID, res.Items[1].BetRecommendationID, res.Items[2].BetRecommendationID})
	assert.InDelta(t, 0.10, res.Items[0].Edge, 1e-9)
	assert.InDelta(t, 0.05, res.Items[2].Edge, 1e-9)
	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i-1].Edge, res.Items[i].Edge)
	}

	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), repo.lastFilter.From)
	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), repo.lastFilter.To)
	assert.Equal(t, 3, repo.lastFilter.Limit)
}

func TestValueBetsEdgeIsModelMinusImplied(t *testing.T) {
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{valueBet(1, "0.58000", "0.52381", -110)}}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())

	res, err := svc.ForDate(context.Background(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), ValueBetQuery{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	item := res.Items[0]
	assert.InDelta(t, item.ModelProbability-item.ImpliedProbability, item.Edge, 1e-6)
	assert.InDelta(t, 1.9091, item.DecimalOdds, 1e-4)
	assert.Greater(t, item.KellyFraction, 0.0)
}

func TestValueBetsDerivesMissingImpliedProbability(t *testing.T) {
	row := valueBet(1, "0.45000", "0", 150)
	row.ImpliedProbability = decimal.Zero
	row.RiskLevel = ""
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{row}}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())

	res, err := svc.ForDate(context.Background(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), ValueBetQuery{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.InDelta(t, 0.4, res.Items[0].ImpliedProbability, 1e-9)
	assert.InDelta(t, 0.05, res.Items[0].Edge, 1e-9)
	assert.Equal(t, model.RiskMedium, res.Items[0].RiskLevel)
}

func TestValueBetsSkipsInvalidOdds(t *testing.T) {
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{
		valueBet(1, "0.60000", "0.50000", 0),
		valueBet(2, "0.60000", "0.50000", 100),
	}}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())

	res, err := svc.ForDate(context.Background(), time.Now(), ValueBetQuery{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(2), res.Items[0].BetRecommendationID)
}

func TestValueBetsMinEdgeAndFilters(t *testing.T) {
	other := valueBet(3, "0.70000", "0.50000", 100)
	other.League = "NHL"
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{
		valueBet(1, "0.55000", "0.50000", 100),
		valueBet(2, "0.60000", "0.50000", 100),
		other,
	}}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())

	minEdge := 0.08
	res, err := svc.ForDate(context.Background(), time.Now(), ValueBetQuery{MinEdge: &minEdge, League: "nba"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(2), res.Items[0].BetRecommendationID)
	assert.Equal(t, 0.08, repo.lastFilter.MinEdge)
	assert.Equal(t, "nba", repo.lastFilter.League)
}

func TestValueBetsFilterMatchesCodeOrName(t *testing.T) {
	row := valueBet(1, "0.60000", "0.50000", 100)
	row.League, row.LeagueCode = "National Basketball Association", "NBA"
	row.Provider, row.ProviderCode = "DraftKings Sportsbook", "DK"
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{row}}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		q    ValueBetQuery
		want int
	}{
		{"league code", ValueBetQuery{League: "nba"}, 1},
		{"league name", ValueBetQuery{League: "National Basketball Association"}, 1},
		{"provider code", ValueBetQuery{Provider: "DK"}, 1},
		{"provider name", ValueBetQuery{Provider: "draftkings sportsbook"}, 1},
		{"both codes", ValueBetQuery{League: "NBA", Provider: "DK"}, 1},
		{"other league", ValueBetQuery{League: "NHL"}, 0},
		{"other provider", ValueBetQuery{Provider: "FD"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.ForDate(context.Background(), day, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Count)
		})
	}

	// 存储过程不返回编码时按名称匹配
	noCode := valueBet(2, "0.60000", "0.50000", 100)
	repo.rows = []*model.ValueBet{noCode}
	res, err := svc.ForDate(context.Background(), day, ValueBetQuery{League: "nba"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	res, err = svc.ForDate(context.Background(), day, ValueBetQuery{Provider: "draftkings"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestValueBetsRejectsNonFiniteMinEdge(t *testing.T) {
	svc := NewValueBetService(&fakeValueBetRepo{}, nil, nil, testValueBetsCfg, quietLogger())
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v := v
		_, err := svc.ForDate(context.Background(), time.Now(), ValueBetQuery{MinEdge: &v})
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", v)
	}
}

func TestValueBetsLimitDefaultsAndMax(t *testing.T) {
	repo := &fakeValueBetRepo{}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())

	res, err := svc.ForDate(context.Background(), time.Now(), ValueBetQuery{})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Limit)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)

	res, err = svc.ForDate(context.Background(), time.Now(), ValueBetQuery{Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 500, res.Limit)

	_, err = svc.ForDate(context.Background(), time.Now(), ValueBetQuery{Limit: -1})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	bad := 1.5
	_, err = svc.ForDate(context.Background(), time.Now(), ValueBetQuery{MinEdge: &bad})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestValueBetsUsesCache(t *testing.T) {
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{valueBet(1, "0.60000", "0.50000", 100)}}
	svc := NewValueBetService(repo, newMemCache(), nil, testValueBetsCfg, quietLogger())
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	first, err := svc.ForDate(context.Background(), day, ValueBetQuery{})
	require.NoError(t, err)
	second, err := svc.ForDate(context.Background(), day, ValueBetQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, first.Items[0].BetRecommendationID, second.Items[0].BetRecommendationID)

	_, err = svc.ForDate(context.Background(), day, ValueBetQuery{League: "NBA"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "different filters use a different key")
}

func TestValueBetsCacheKeyKeepsFilterPositions(t *testing.T) {
	row := valueBet(1, "0.60000", "0.50000", 100)
	row.League, row.Provider = "X", "Y"
	repo := &fakeValueBetRepo{rows: []*model.ValueBet{row}}
	svc := NewValueBetService(repo, newMemCache(), nil, testValueBetsCfg, quietLogger())
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	byLeague, err := svc.ForDate(context.Background(), day, ValueBetQuery{League: "X"})
	require.NoError(t, err)
	assert.Equal(t, 1, byLeague.Count)

	byProvider, err := svc.ForDate(context.Background(), day, ValueBetQuery{Provider: "X"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
	assert.Equal(t, 0, byProvider.Count)

	_, err = svc.ForDate(context.Background(), day, ValueBetQuery{RiskLevel: "Low"})
	require.NoError(t, err)
	_, err = svc.ForDate(context.Background(), day, ValueBetQuery{BetType: "Low"})
	require.NoError(t, err)
	assert.Equal(t, 4, repo.calls)
}

func TestValueBetsPropagatesRepositoryError(t *testing.T) {
	repo := &fakeValueBetRepo{err: errors.New("boom")}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())

	_, err := svc.ForDate(context.Background(), time.Now(), ValueBetQuery{})
	assert.EqualError(t, err, "boom")
}

func TestRecommendationsToday(t *testing.T) {
	now := time.Date(2025, 3, 2, 23, 59, 0, 0, time.FixedZone("EST", -5*3600))
	repo := &fakeValueBetRepo{recs: []*model.BetRecommendation{
		{BetRecommendationID: 1, AmericanOdds: 120, ModelProbability: dec("0.50000"), ImpliedProbability: dec("0.45455"), Edge: dec("0.045450")},
		{BetRecommendationID: 2, AmericanOdds: -150, ModelProbability: dec("0.70000"), ImpliedProbability: dec("0.60000"), Edge: dec("0.100000")},
	}}
	svc := NewValueBetService(repo, nil, nil, testValueBetsCfg, quietLogger())
	svc.SetClock(fixedClock(now))

	items, err := svc.RecommendationsToday(context.Background(), 0)
	require.NoError(t, err)

	// 本地 23:59 EST 为 UTC 次日 04:59
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), repo.lastTo)
	assert.Equal(t, 50, repo.lastLimit)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].BetRecommendationID)
	assert.InDelta(t, 0.1, items[0].Edge, 1e-9)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/01/2025")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
