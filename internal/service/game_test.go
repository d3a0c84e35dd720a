package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"SmartBetting/internal/model"
	"SmartBetting/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGame() *model.Game {
	start := time.Date(2025, 1, 15, 0, 30, 0, 0, time.UTC)
	return &model.Game{
		GameID:       10,
		Season:       "2024-2025",
		GameDateUTC:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTimeUTC: start,
		Status:       model.GameStatusFinal,
		League:       &model.League{Code: "NBA", Name: "National Basketball Association"},
		HomeTeam:     &model.Team{Name: "Boston Celtics"},
		AwayTeam:     &model.Team{Name: "Miami Heat"},
		GameResult:   &model.GameResult{HomeScore: 110, AwayScore: 102},
		Markets: []model.Market{{
			MarketID:   100,
			Period:     model.PeriodFullGame,
			MarketType: &model.MarketType{Code: model.MarketTypeMoneyline},
			Outcomes: []model.MarketOutcome{
				{MarketOutcomeID: 1000, OutcomeCode: model.OutcomeHome, Description: "Home ML"},
				{MarketOutcomeID: 1001, OutcomeCode: model.OutcomeAway, Description: "Away ML"},
			},
		}},
	}
}

func TestListGamesDefaultsToToday(t *testing.T) {
	repo := &fakeGameRepo{games: []*model.Game{sampleGame()}}
	svc := NewGameService(repo, quietLogger())
	svc.SetClock(fixedClock(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)))

	res, err := svc.ListGames(context.Background(), GameQuery{League: "NBA"})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-15", res.Date)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), repo.lastFilter.From)
	assert.Equal(t, "NBA", repo.lastFilter.LeagueCode)
	require.Equal(t, 1, res.Count)

	g := res.Items[0]
	assert.Equal(t, "National Basketball Association", g.League)
	assert.Equal(t, "NBA", g.LeagueCode)
	assert.Equal(t, "Boston Celtics", g.HomeTeam)
	assert.Equal(t, model.OutcomeHome, g.Winner)
	require.NotNil(t, g.HomeScore)
	assert.Equal(t, int16(110), *g.HomeScore)
}

func TestGetGameDetailBestPriceAndPredictionEdge(t *testing.T) {
	dk := &model.OddsProvider{ProviderID: 1, Name: "DraftKings"}
	fd := &model.OddsProvider{ProviderID: 2, Name: "FanDuel"}
	repo := &fakeGameRepo{
		game: sampleGame(),
		snaps: []*model.OddsSnapshot{
			{OddsSnapshotID: 1, MarketOutcomeID: 1000, ProviderID: 1, Provider: dk, AmericanOdds: -150},
			{OddsSnapshotID: 2, MarketOutcomeID: 1000, ProviderID: 2, Provider: fd, AmericanOdds: -130},
			{OddsSnapshotID: 3, MarketOutcomeID: 1001, ProviderID: 1, Provider: dk, AmericanOdds: 0},
		},
		preds: []*model.ModelPrediction{{
			ModelPredictionID: 5,
			MarketOutcomeID:   1000,
			WinProbability:    decimal.RequireFromString("0.62000"),
			ModelRun: &model.ModelRun{
				RunType: model.RunTypeLive,
				Model:   &model.PredictionModel{Name: "elo", Version: "1.2"},
			},
		}},
	}
	svc := NewGameService(repo, quietLogger())

	detail, err := svc.GetGameDetail(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, detail.Markets, 1)
	assert.Equal(t, model.MarketTypeMoneyline, detail.Markets[0].Type)

	home := detail.Markets[0].Outcomes[0]
	require.Len(t, home.Prices, 2)
	require.NotNil(t, home.BestPrice)
	assert.Equal(t, "FanDuel", home.BestPrice.Provider)
	assert.Equal(t, -130, home.BestPrice.AmericanOdds)

	require.Len(t, home.Predictions, 1)
	p := home.Predictions[0]
	assert.Equal(t, "elo", p.Model)
	require.NotNil(t, p.Edge)
	assert.InDelta(t, 0.62-130.0/230.0, *p.Edge, 1e-5)
	require.NotNil(t, p.FairAmericanOdds)
	assert.Equal(t, -163, *p.FairAmericanOdds)

	away := detail.Markets[0].Outcomes[1]
	assert.Empty(t, away.Prices, "zero odds snapshot is skipped")
	assert.Nil(t, away.BestPrice)
	assert.NotNil(t, away.Predictions)
}

func TestGetGameDetailErrors(t *testing.T) {
	svc := NewGameService(&fakeGameRepo{}, quietLogger())

	_, err := svc.GetGameDetail(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = svc.GetGameDetail(context.Background(), 99)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
