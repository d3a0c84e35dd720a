package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetRecommendation 模型产出的投注推荐，Edge = ModelProbability - ImpliedProbability
type BetRecommendation struct {
	BetRecommendationID int64               `gorm:"column:bet_recommendation_id;primaryKey;autoIncrement" json:"bet_recommendation_id"`
	ModelPredictionID   int64               `gorm:"column:model_prediction_id;not null;index" json:"model_prediction_id"`
	MarketOutcomeID     int64               `gorm:"column:market_outcome_id;not null;index" json:"market_outcome_id"`
	ProviderID          int64               `gorm:"column:provider_id;not null;index" json:"provider_id"`
	GameID              int64               `gorm:"column:game_id;not null;index" json:"game_id"`
	PlayerID            *int                `gorm:"column:player_id" json:"player_id,omitempty"`
	MarketTypeID        int                 `gorm:"column:market_type_id;not null" json:"market_type_id"`
	LineValue           decimal.NullDecimal `gorm:"column:line_value;type:decimal(8,3)" json:"line_value"`
	AmericanOdds        int                 `gorm:"column:american_odds;not null" json:"american_odds"`
	ImpliedProbability  decimal.Decimal     `gorm:"column:implied_probability;type:decimal(6,5);not null" json:"implied_probability"`
	ModelProbability    decimal.Decimal     `gorm:"column:model_probability;type:decimal(6,5);not null" json:"model_probability"`
	Edge                decimal.Decimal     `gorm:"column:edge;type:decimal(7,6);not null;index" json:"edge"`
	RiskLevel           string              `gorm:"column:risk_level;size:20;not null" json:"risk_level"` // Low / Medium / High
	CreatedUTC          time.Time           `gorm:"column:created_utc;not null;index" json:"created_utc"`
	IsActive            bool                `gorm:"column:is_active;not null;default:true" json:"is_active"`

	ModelPrediction *ModelPrediction `gorm:"foreignKey:ModelPredictionID;references:ModelPredictionID" json:"-"`
	MarketOutcome   *MarketOutcome   `gorm:"foreignKey:MarketOutcomeID;references:MarketOutcomeID" json:"-"`
	Provider        *OddsProvider    `gorm:"foreignKey:ProviderID;references:ProviderID" json:"-"`
	Game            *Game            `gorm:"foreignKey:GameID;references:GameID" json:"-"`
	Player          *Player          `gorm:"foreignKey:PlayerID;references:PlayerID" json:"-"`
	MarketType      *MarketType      `gorm:"foreignKey:MarketTypeID;references:MarketTypeID" json:"-"`
}

// ComputedEdge 按库中两列概率重新计算 edge
func (b BetRecommendation) ComputedEdge() decimal.Decimal {
	return b.ModelProbability.Sub(b.ImpliedProbability)
}

// BetTicket 实际下注的注单（可含多条腿）
type BetTicket struct {
	BetTicketID  int64           `gorm:"column:bet_ticket_id;primaryKey;autoIncrement" json:"bet_ticket_id"`
	TicketRef    uuid.UUID       `gorm:"column:ticket_ref;type:char(36);not null;uniqueIndex" json:"ticket_ref"`
	PlacedUTC    time.Time       `gorm:"column:placed_utc;not null;index" json:"placed_utc"`
	StakeAmount  decimal.Decimal `gorm:"column:stake_amount;type:decimal(12,2);not null" json:"stake_amount"`
	CurrencyCode string          `gorm:"column:currency_code;size:3;not null;default:USD" json:"currency_code"`
	StrategyTag  *string         `gorm:"column:strategy_tag;size:50" json:"strategy_tag,omitempty"`
	Source       *string         `gorm:"column:source;size:30" json:"source,omitempty"` // Manual / Bot
	Status       string          `gorm:"column:status;size:20;not null;default:Pending" json:"status"`
	Notes        *string         `gorm:"column:notes;size:1000" json:"notes,omitempty"`

	Legs []BetTicketLeg `gorm:"foreignKey:BetTicketID;references:BetTicketID" json:"legs,omitempty"`
}

// BetTicketLeg 注单中的单条腿
type BetTicketLeg struct {
	BetTicketLegID      int64               `gorm:"column:bet_ticket_leg_id;primaryKey;autoIncrement" json:"bet_ticket_leg_id"`
	BetTicketID         int64               `gorm:"column:bet_ticket_id;not null;index" json:"bet_ticket_id"`
	BetRecommendationID *int64              `gorm:"column:bet_recommendation_id" json:"bet_recommendation_id,omitempty"`
	MarketOutcomeID     int64               `gorm:"column:market_outcome_id;not null" json:"market_outcome_id"`
	ProviderID          int64               `gorm:"column:provider_id;not null" json:"provider_id"`
	AmericanOdds        int                 `gorm:"column:american_odds;not null" json:"american_odds"`
	LineValue           decimal.NullDecimal `gorm:"column:line_value;type:decimal(8,3)" json:"line_value"`
	StakeAmount         decimal.NullDecimal `gorm:"column:stake_amount;type:decimal(12,2)" json:"stake_amount"`
	Status              string              `gorm:"column:status;size:20;not null;default:Pending" json:"status"`
	PayoutAmount        decimal.NullDecimal `gorm:"column:payout_amount;type:decimal(12,2)" json:"payout_amount"`

	BetRecommendation *BetRecommendation `gorm:"foreignKey:BetRecommendationID;references:BetRecommendationID" json:"-"`
	MarketOutcome     *MarketOutcome     `gorm:"foreignKey:MarketOutcomeID;references:MarketOutcomeID" json:"market_outcome,omitempty"`
	Provider          *OddsProvider      `gorm:"foreignKey:ProviderID;references:ProviderID" json:"provider,omitempty"`
}

// ValueBet 每日价值投注投影（存储过程结果或联表查询结果），无主键不建表
type ValueBet struct {
	BetRecommendationID int64               `gorm:"column:bet_recommendation_id"`
	League              string              `gorm:"column:league"`
	LeagueCode          string              `gorm:"column:league_code"` // 存储过程未返回时为空
	HomeTeam            string              `gorm:"column:home_team"`
	AwayTeam            string              `gorm:"column:away_team"`
	GameTime            time.Time           `gorm:"column:game_time"`
	Provider            string              `gorm:"column:provider"`
	ProviderCode        string              `gorm:"column:provider_code"`
	BetType             string              `gorm:"column:bet_type"`
	LineValue           decimal.NullDecimal `gorm:"column:line_value"`
	BookOdds            int                 `gorm:"column:book_odds"`
	ModelProbability    decimal.Decimal     `gorm:"column:model_probability"`
	ImpliedProbability  decimal.Decimal     `gorm:"column:implied_probability"`
	Edge                decimal.Decimal     `gorm:"column:edge"`
	RiskLevel           string              `gorm:"column:risk_level"`
}

func (BetRecommendation) TableName() string { return table("bet_recommendation") }
func (BetTicket) TableName() string         { return table("bet_ticket") }
func (BetTicketLeg) TableName() string      { return table("bet_ticket_leg") }
