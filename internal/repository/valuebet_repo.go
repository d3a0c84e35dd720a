package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"SmartBetting/internal/model"

	"gorm.io/gorm"
)

// ValueBetFilter 每日价值投注筛选。From/To 为比赛日 (game_date_utc) 区间
type ValueBetFilter struct {
	From      time.Time
	To        time.Time
	MinEdge   float64 // >0 时要求 edge >= MinEdge，否则只要求 edge > 0
	League    string  // 联赛编码或名称
	Provider  string  // 提供方编码或名称
	RiskLevel string
	BetType   string // 盘口类型编码
	Limit     int    // <=0 不限制
}

// ValueBetRepository 推荐与每日价值投注查询
type ValueBetRepository interface {
	// ListRecommendationsCreatedBetween created_utc ∈ [from, to)，按 edge 降序取前 limit 条
	ListRecommendationsCreatedBetween(ctx context.Context, from, to time.Time, limit int) ([]*model.BetRecommendation, error)
	// DailyValueBets 比赛日的价值投注：配置了存储过程时调用存储过程，否则走联表投影
	DailyValueBets(ctx context.Context, filter ValueBetFilter) ([]*model.ValueBet, error)
}

// computedEdge 与 service 层一致：edge 由两列概率现算，不依赖库中 edge 列
const computedEdge = "(b.model_probability - b.implied_probability)"

var procedureName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type valueBetRepository struct {
	db        *gorm.DB
	procedure string
}

// NewValueBetRepository procedure 为空时使用内置投影查询；名称只允许 [schema.]name
func NewValueBetRepository(db *gorm.DB, procedure string) (ValueBetRepository, error) {
	if procedure != "" && !procedureName.MatchString(procedure) {
		return nil, fmt.Errorf("非法的存储过程名: %q", procedure)
	}
	return &valueBetRepository{db: db, procedure: procedure}, nil
}

func (r *valueBetRepository) ListRecommendationsCreatedBetween(ctx context.Context, from, to time.Time, limit int) ([]*model.BetRecommendation, error) {
	db := r.db.WithContext(ctx).
		Model(&model.BetRecommendation{}).
		Where("created_utc >= ? AND created_utc < ?", from, to).
		Order("edge DESC").
		Order("bet_recommendation_id ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var recs []*model.BetRecommendation
	if err := db.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *valueBetRepository) DailyValueBets(ctx context.Context, filter ValueBetFilter) ([]*model.ValueBet, error) {
	if r.procedure != "" {
		return r.callProcedure(ctx, filter)
	}

	db := r.db.WithContext(ctx).
		Table(as(model.BetRecommendation{}.TableName(), "b")).
		Select(`b.bet_recommendation_id,
			l.name AS league,
			l.code AS league_code,
			ht.name AS home_team,
			awt.name AS away_team,
			g.start_time_utc AS game_time,
			p.name AS provider,
			COALESCE(p.code, '') AS provider_code,
			mt.code AS bet_type,
			b.line_value,
			b.american_odds AS book_odds,
			b.model_probability,
			b.implied_probability,
			`+computedEdge+` AS edge,
			b.risk_level`).
		Joins("JOIN "+as(model.Game{}.TableName(), "g")+" ON g.game_id = b.game_id").
		Joins("JOIN "+as(model.League{}.TableName(), "l")+" ON l.league_id = g.league_id").
		Joins("JOIN "+as(model.Team{}.TableName(), "ht")+" ON ht.team_id = g.home_team_id").
		Joins("JOIN "+as(model.Team{}.TableName(), "awt")+" ON awt.team_id = g.away_team_id").
		Joins("JOIN "+as(model.OddsProvider{}.TableName(), "p")+" ON p.provider_id = b.provider_id").
		Joins("JOIN "+as(model.MarketType{}.TableName(), "mt")+" ON mt.market_type_id = b.market_type_id").
		Where("g.game_date_utc >= ? AND g.game_date_utc < ?", filter.From, filter.To).
		Where("b.is_active = ?", true)

	if filter.MinEdge > 0 {
		db = db.Where(computedEdge+" >= ?", filter.MinEdge)
	} else {
		db = db.Where(computedEdge + " > 0")
	}
	if filter.League != "" {
		db = db.Where("(l.code = ? OR l.name = ?)", filter.League, filter.League)
	}
	if filter.Provider != "" {
		db = db.Where("(p.code = ? OR p.name = ?)", filter.Provider, filter.Provider)
	}
	if filter.RiskLevel != "" {
		db = db.Where("b.risk_level = ?", filter.RiskLevel)
	}
	if filter.BetType != "" {
		db = db.Where("mt.code = ?", filter.BetType)
	}

	db = db.Order(computedEdge + " DESC").Order("b.bet_recommendation_id ASC")
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	var rows []*model.ValueBet
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// callProcedure 按方言调用每日价值投注存储过程，参数为比赛日（UTC 零点）。
// 存储过程只按日期过滤，其余条件与排序由 service 层补齐
func (r *valueBetRepository) callProcedure(ctx context.Context, filter ValueBetFilter) ([]*model.ValueBet, error) {
	stmt := procedureCall(r.db.Dialector.Name(), r.procedure)
	var rows []*model.ValueBet
	if err := r.db.WithContext(ctx).Raw(stmt, filter.From).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("调用存储过程 %s 失败: %w", r.procedure, err)
	}
	return rows, nil
}

func procedureCall(dialect, procedure string) string {
	switch dialect {
	case "sqlserver":
		return "EXEC " + procedure + " @GameDate = ?"
	case "mysql":
		return "CALL " + procedure + "(?)"
	default:
		return "SELECT * FROM " + procedure + "(?)"
	}
}
