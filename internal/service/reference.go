package service

import (
	"context"

	"SmartBetting/internal/model"
	"SmartBetting/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReferenceService 基础数据查询
type ReferenceService struct {
	repo   repository.ReferenceRepository
	logger *logrus.Logger
}

func NewReferenceService(repo repository.ReferenceRepository, logger *logrus.Logger) *ReferenceService {
	return &ReferenceService{repo: repo, logger: logger}
}

// DefaultMarketTypes 内置盘口类型
var DefaultMarketTypes = []model.MarketType{
	{Code: model.MarketTypeMoneyline, Description: "Moneyline (outright winner)"},
	{Code: model.MarketTypeSpread, Description: "Point spread"},
	{Code: model.MarketTypeTotalPoints, Description: "Total points over/under"},
}

// EnsureDefaults 补齐内置盘口类型
func (s *ReferenceService) EnsureDefaults(ctx context.Context) error {
	if err := s.repo.EnsureMarketTypes(ctx, DefaultMarketTypes); err != nil {
		return err
	}
	s.logger.WithField("count", len(DefaultMarketTypes)).Info("内置盘口类型已就绪")
	return nil
}

func (s *ReferenceService) Sports(ctx context.Context) ([]*model.Sport, error) {
	return s.repo.ListSports(ctx)
}

func (s *ReferenceService) Leagues(ctx context.Context, sportCode string) ([]*model.League, error) {
	return s.repo.ListLeagues(ctx, sportCode)
}

func (s *ReferenceService) Teams(ctx context.Context, leagueCode string, activeOnly bool) ([]*model.Team, error) {
	return s.repo.ListTeams(ctx, repository.TeamFilter{LeagueCode: leagueCode, ActiveOnly: activeOnly})
}

func (s *ReferenceService) Providers(ctx context.Context, activeOnly bool) ([]*model.OddsProvider, error) {
	return s.repo.ListProviders(ctx, activeOnly)
}

func (s *ReferenceService) MarketTypes(ctx context.Context) ([]*model.MarketType, error) {
	return s.repo.ListMarketTypes(ctx)
}
