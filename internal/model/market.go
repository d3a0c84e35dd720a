package model

import (
	"time"

	"SmartBetting/internal/oddsmath"

	"github.com/shopspring/decimal"
)

// MarketType 盘口类型：MONEYLINE / SPREAD / TOTAL_POINTS 等
type MarketType struct {
	MarketTypeID int    `gorm:"column:market_type_id;primaryKey;autoIncrement" json:"market_type_id"`
	Code         string `gorm:"column:code;size:40;not null;uniqueIndex" json:"code"`
	Description  string `gorm:"column:description;size:200;not null" json:"description"`
}

// StatType 球员道具统计项：POINTS / REBOUNDS 等
type StatType struct {
	StatTypeID  int    `gorm:"column:stat_type_id;primaryKey;autoIncrement" json:"stat_type_id"`
	Code        string `gorm:"column:code;size:40;not null;uniqueIndex" json:"code"`
	Description string `gorm:"column:description;size:200;not null" json:"description"`
}

// OddsProvider 赔率提供方（博彩公司）
type OddsProvider struct {
	ProviderID    int64   `gorm:"column:provider_id;primaryKey;autoIncrement" json:"provider_id"`
	Name          string  `gorm:"column:name;size:100;not null" json:"name"`
	Code          *string `gorm:"column:code;size:50" json:"code,omitempty"`
	APIIdentifier *string `gorm:"column:api_identifier;size:100" json:"api_identifier,omitempty"`
	IsActive      bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

// Market 某场比赛的一个盘口（球员道具盘带 PlayerID/StatTypeID）
type Market struct {
	MarketID     int64               `gorm:"column:market_id;primaryKey;autoIncrement" json:"market_id"`
	GameID       int64               `gorm:"column:game_id;not null;index" json:"game_id"`
	MarketTypeID int                 `gorm:"column:market_type_id;not null;index" json:"market_type_id"`
	StatTypeID   *int                `gorm:"column:stat_type_id" json:"stat_type_id,omitempty"`
	PlayerID     *int                `gorm:"column:player_id" json:"player_id,omitempty"`
	Period       string              `gorm:"column:period;size:20;not null;default:FULL_GAME" json:"period"` // FULL_GAME / 1H / 1Q
	LineValue    decimal.NullDecimal `gorm:"column:line_value;type:decimal(8,3)" json:"line_value"`
	CreatedUTC   time.Time           `gorm:"column:created_utc;not null" json:"created_utc"`
	IsActive     bool                `gorm:"column:is_active;not null;default:true" json:"is_active"`

	MarketType *MarketType     `gorm:"foreignKey:MarketTypeID;references:MarketTypeID" json:"market_type,omitempty"`
	StatType   *StatType       `gorm:"foreignKey:StatTypeID;references:StatTypeID" json:"stat_type,omitempty"`
	Player     *Player         `gorm:"foreignKey:PlayerID;references:PlayerID" json:"player,omitempty"`
	Outcomes   []MarketOutcome `gorm:"foreignKey:MarketID;references:MarketID" json:"outcomes,omitempty"`
}

// MarketOutcome 盘口选项：HOME / AWAY / OVER / UNDER
type MarketOutcome struct {
	MarketOutcomeID int64  `gorm:"column:market_outcome_id;primaryKey;autoIncrement" json:"market_outcome_id"`
	MarketID        int64  `gorm:"column:market_id;not null;index" json:"market_id"`
	OutcomeCode     string `gorm:"column:outcome_code;size:20;not null" json:"outcome_code"`
	Description     string `gorm:"column:description;size:200;not null" json:"description"` // Home ML / Over 216.5
	SortOrder       uint8  `gorm:"column:sort_order;not null;default:0" json:"sort_order"`

	Market *Market `gorm:"foreignKey:MarketID;references:MarketID" json:"-"`
}

// OddsSnapshot 某提供方在某时刻对某选项给出的赔率
type OddsSnapshot struct {
	OddsSnapshotID     int64               `gorm:"column:odds_snapshot_id;primaryKey;autoIncrement" json:"odds_snapshot_id"`
	MarketOutcomeID    int64               `gorm:"column:market_outcome_id;not null;index:idx_odds_outcome_time" json:"market_outcome_id"`
	ProviderID         int64               `gorm:"column:provider_id;not null;index" json:"provider_id"`
	SnapshotTimeUTC    time.Time           `gorm:"column:snapshot_time_utc;not null;index:idx_odds_outcome_time" json:"snapshot_time_utc"`
	AmericanOdds       int                 `gorm:"column:american_odds;not null" json:"american_odds"`
	DecimalOdds        decimal.NullDecimal `gorm:"column:decimal_odds;type:decimal(10,4)" json:"decimal_odds"`
	ImpliedProbability decimal.NullDecimal `gorm:"column:implied_probability;type:decimal(6,5)" json:"implied_probability"`
	Source             *string             `gorm:"column:source;size:50" json:"source,omitempty"`

	MarketOutcome *MarketOutcome `gorm:"foreignKey:MarketOutcomeID;references:MarketOutcomeID" json:"-"`
	Provider      *OddsProvider  `gorm:"foreignKey:ProviderID;references:ProviderID" json:"provider,omitempty"`
}

// Implied 返回该快照的隐含概率：优先取库中值，其次由小数赔率换算，最后由美式赔率换算
func (s OddsSnapshot) Implied() (float64, error) {
	if s.ImpliedProbability.Valid {
		return s.ImpliedProbability.Decimal.InexactFloat64(), nil
	}
	if s.DecimalOdds.Valid {
		return oddsmath.DecimalToImpliedProbability(s.DecimalOdds.Decimal.InexactFloat64())
	}
	return oddsmath.AmericanToImpliedProbability(s.AmericanOdds)
}

func (MarketType) TableName() string    { return table("market_type") }
func (StatType) TableName() string      { return table("stat_type") }
func (OddsProvider) TableName() string  { return table("odds_provider") }
func (Market) TableName() string        { return table("market") }
func (MarketOutcome) TableName() string { return table("market_outcome") }
func (OddsSnapshot) TableName() string  { return table("odds_snapshot") }
