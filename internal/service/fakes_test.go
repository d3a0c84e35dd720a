package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"SmartBetting/internal/model"
	"SmartBetting/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

type fakeValueBetRepo struct {
	rows       []*model.ValueBet
	recs       []*model.BetRecommendation
	err        error
	calls      int
	lastFilter repository.ValueBetFilter
	lastFrom   time.Time
	lastTo     time.Time
	lastLimit  int
}

func (f *fakeValueBetRepo) ListRecommendationsCreatedBetween(_ context.Context, from, to time.Time, limit int) ([]*model.BetRecommendation, error) {
	f.calls++
	f.lastFrom, f.lastTo, f.lastLimit = from, to, limit
	return f.recs, f.err
}

func (f *fakeValueBetRepo) DailyValueBets(_ context.Context, filter repository.ValueBetFilter) ([]*model.ValueBet, error) {
	f.calls++
	f.lastFilter = filter
	return f.rows, f.err
}

// memCache 内存缓存，按 JSON 往返模拟 Redis
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Close() error { return nil }

type fakeGameRepo struct {
	games []*model.Game
	game  *model.Game
	snaps []*model.OddsSnapshot
	preds []*model.ModelPrediction
	err   error

	lastFilter repository.GameFilter
}

func (f *fakeGameRepo) ListGamesByDate(_ context.Context, filter repository.GameFilter) ([]*model.Game, error) {
	f.lastFilter = filter
	return f.games, f.err
}

func (f *fakeGameRepo) GetGame(_ context.Context, gameID int64) (*model.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.game == nil || f.game.GameID != gameID {
		return nil, repository.ErrNotFound
	}
	return f.game, nil
}

func (f *fakeGameRepo) GetLatestOdds(context.Context, int64) ([]*model.OddsSnapshot, error) {
	return f.snaps, nil
}

func (f *fakeGameRepo) ListPredictions(context.Context, int64) ([]*model.ModelPrediction, error) {
	return f.preds, nil
}

type fakeTicketRepo struct {
	tickets  map[uuid.UUID]*model.BetTicket
	list     []*model.BetTicket
	total    int64
	page     int
	pageSize int
	filter   repository.TicketFilter
}

func (f *fakeTicketRepo) GetTicketByRef(_ context.Context, ref uuid.UUID) (*model.BetTicket, error) {
	t, ok := f.tickets[ref]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTicketRepo) ListTickets(_ context.Context, filter repository.TicketFilter, page, pageSize int) ([]*model.BetTicket, int64, error) {
	f.filter, f.page, f.pageSize = filter, page, pageSize
	return f.list, f.total, nil
}

type fakeReferenceRepo struct {
	ensured []model.MarketType
	teams   repository.TeamFilter
}

func (f *fakeReferenceRepo) ListSports(context.Context) ([]*model.Sport, error) {
	return []*model.Sport{{SportID: 1, Name: "Basketball", Code: "BASKETBALL"}}, nil
}

func (f *fakeReferenceRepo) ListLeagues(context.Context, string) ([]*model.League, error) {
	return []*model.League{{LeagueID: 1, SportID: 1, Name: "NBA", Code: "NBA"}}, nil
}

func (f *fakeReferenceRepo) ListTeams(_ context.Context, filter repository.TeamFilter) ([]*model.Team, error) {
	f.teams = filter
	return []*model.Team{{TeamID: 1, LeagueID: 1, Name: "Boston Celtics", Abbreviation: "BOS"}}, nil
}

func (f *fakeReferenceRepo) ListProviders(context.Context, bool) ([]*model.OddsProvider, error) {
	return []*model.OddsProvider{{ProviderID: 1, Name: "DraftKings"}}, nil
}

func (f *fakeReferenceRepo) ListMarketTypes(context.Context) ([]*model.MarketType, error) {
	return []*model.MarketType{{MarketTypeID: 1, Code: model.MarketTypeMoneyline}}, nil
}

func (f *fakeReferenceRepo) EnsureMarketTypes(_ context.Context, types []model.MarketType) error {
	f.ensured = append(f.ensured, types...)
	return nil
}
