package repository

import (
	"context"
	"time"

	"SmartBetting/internal/model"

	"gorm.io/gorm"
)

// GameFilter 比赛列表筛选。From/To 为 game_date_utc 的左闭右开区间
type GameFilter struct {
	From       time.Time
	To         time.Time
	LeagueCode string
	Status     string
}

// GameRepository 比赛、盘口、赔率快照与模型预测的只读仓储
type GameRepository interface {
	// ListGamesByDate 按比赛日区间列出比赛，可按联赛编码、状态过滤
	ListGamesByDate(ctx context.Context, filter GameFilter) ([]*model.Game, error)
	// GetGame 返回比赛及其有效盘口、选项
	GetGame(ctx context.Context, gameID int64) (*model.Game, error)
	// GetLatestOdds 每个 (选项, 提供方) 只取最新一条快照
	GetLatestOdds(ctx context.Context, gameID int64) ([]*model.OddsSnapshot, error)
	ListPredictions(ctx context.Context, gameID int64) ([]*model.ModelPrediction, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) ListGamesByDate(ctx context.Context, filter GameFilter) ([]*model.Game, error) {
	db := r.db.WithContext(ctx).Model(&model.Game{}).
		Preload("League").
		Preload("HomeTeam").
		Preload("AwayTeam").
		Preload("GameResult")

	if !filter.From.IsZero() {
		db = db.Where("game_date_utc >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		db = db.Where("game_date_utc < ?", filter.To)
	}
	if filter.LeagueCode != "" {
		sub := r.db.Model(&model.League{}).Select("league_id").Where("code = ?", filter.LeagueCode)
		db = db.Where("league_id IN (?)", sub)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var games []*model.Game
	if err := db.Order("start_time_utc ASC").Order("game_id ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) GetGame(ctx context.Context, gameID int64) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).
		Preload("League").
		Preload("HomeTeam").
		Preload("AwayTeam").
		Preload("GameResult").
		Preload("Markets", "is_active = ?", true).
		Preload("Markets.MarketType").
		Preload("Markets.StatType").
		Preload("Markets.Player").
		Preload("Markets.Outcomes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("game_id = ?", gameID).
		First(&game).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &game, nil
}

func (r *gameRepository) GetLatestOdds(ctx context.Context, gameID int64) ([]*model.OddsSnapshot, error) {
	latest := r.db.Table(as(model.OddsSnapshot{}.TableName(), "o2")).
		Select("MAX(o2.snapshot_time_utc)").
		Where("o2.market_outcome_id = o.market_outcome_id AND o2.provider_id = o.provider_id")

	var snaps []*model.OddsSnapshot
	err := r.db.WithContext(ctx).
		Table(as(model.OddsSnapshot{}.TableName(), "o")).
		Select("o.*").
		Joins("JOIN "+as(model.MarketOutcome{}.TableName(), "mo")+" ON mo.market_outcome_id = o.market_outcome_id").
		Joins("JOIN "+as(model.Market{}.TableName(), "m")+" ON m.market_id = mo.market_id").
		Where("m.game_id = ?", gameID).
		Where("o.snapshot_time_utc = (?)", latest).
		Preload("Provider").
		Order("o.market_outcome_id ASC").
		Order("o.provider_id ASC").
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

func (r *gameRepository) ListPredictions(ctx context.Context, gameID int64) ([]*model.ModelPrediction, error) {
	var preds []*model.ModelPrediction
	err := r.db.WithContext(ctx).
		Table(as(model.ModelPrediction{}.TableName(), "mp")).
		Select("mp.*").
		Joins("JOIN "+as(model.MarketOutcome{}.TableName(), "mo")+" ON mo.market_outcome_id = mp.market_outcome_id").
		Joins("JOIN "+as(model.Market{}.TableName(), "m")+" ON m.market_id = mo.market_id").
		Where("m.game_id = ?", gameID).
		Preload("ModelRun.Model").
		Preload("Provider").
		Order("mp.created_utc DESC").
		Order("mp.model_prediction_id DESC").
		Find(&preds).Error
	if err != nil {
		return nil, err
	}
	return preds, nil
}
