package repository

import (
	"context"

	"SmartBetting/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamFilter 球队列表筛选
type TeamFilter struct {
	LeagueCode string // 联赛编码，如 NBA
	ActiveOnly bool
}

// ReferenceRepository 基础数据仓储：运动、联赛、球队、赔率提供方、盘口类型
type ReferenceRepository interface {
	ListSports(ctx context.Context) ([]*model.Sport, error)
	// ListLeagues sportCode 为空时返回全部联赛
	ListLeagues(ctx context.Context, sportCode string) ([]*model.League, error)
	ListTeams(ctx context.Context, filter TeamFilter) ([]*model.Team, error)
	ListProviders(ctx context.Context, activeOnly bool) ([]*model.OddsProvider, error)
	ListMarketTypes(ctx context.Context) ([]*model.MarketType, error)
	// EnsureMarketTypes 按 code 幂等写入盘口类型（启动时补齐内置类型）
	EnsureMarketTypes(ctx context.Context, types []model.MarketType) error
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListSports(ctx context.Context) ([]*model.Sport, error) {
	var sports []*model.Sport
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sports).Error; err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *referenceRepository) ListLeagues(ctx context.Context, sportCode string) ([]*model.League, error) {
	db := r.db.WithContext(ctx).Model(&model.League{}).Preload("Sport")
	if sportCode != "" {
		sub := r.db.Model(&model.Sport{}).Select("sport_id").Where("code = ?", sportCode)
		db = db.Where("sport_id IN (?)", sub)
	}
	var leagues []*model.League
	if err := db.Order("code ASC").Find(&leagues).Error; err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *referenceRepository) ListTeams(ctx context.Context, filter TeamFilter) ([]*model.Team, error) {
	db := r.db.WithContext(ctx).Model(&model.Team{})
	if filter.LeagueCode != "" {
		sub := r.db.Model(&model.League{}).Select("league_id").Where("code = ?", filter.LeagueCode)
		db = db.Where("league_id IN (?)", sub)
	}
	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	var teams []*model.Team
	if err := db.Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *referenceRepository) ListProviders(ctx context.Context, activeOnly bool) ([]*model.OddsProvider, error) {
	db := r.db.WithContext(ctx).Model(&model.OddsProvider{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	var providers []*model.OddsProvider
	if err := db.Order("name ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *referenceRepository) ListMarketTypes(ctx context.Context) ([]*model.MarketType, error) {
	var types []*model.MarketType
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *referenceRepository) EnsureMarketTypes(ctx context.Context, types []model.MarketType) error {
	if len(types) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"description"}),
	}).Create(&types).Error
}
