package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PredictionModel 预测模型定义（表名 model）
type PredictionModel struct {
	ModelID       int     `gorm:"column:model_id;primaryKey;autoIncrement" json:"model_id"`
	Name          string  `gorm:"column:name;size:100;not null" json:"name"`
	Version       string  `gorm:"column:version;size:50;not null" json:"version"`
	ModelTypeCode string  `gorm:"column:model_type_code;size:40;not null" json:"model_type_code"` // MONEYLINE / PLAYER_POINTS
	Description   *string `gorm:"column:description" json:"description,omitempty"`
	IsActive      bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	ModelRuns []ModelRun `gorm:"foreignKey:ModelID;references:ModelID" json:"runs,omitempty"`
}

// ModelRun 一次模型运行（实盘或回测）
type ModelRun struct {
	ModelRunID     int64          `gorm:"column:model_run_id;primaryKey;autoIncrement" json:"model_run_id"`
	ModelID        int            `gorm:"column:model_id;not null;index" json:"model_id"`
	RunType        string         `gorm:"column:run_type;size:20;not null;default:Live" json:"run_type"` // Live / Backtest
	FromDateUTC    *time.Time     `gorm:"column:from_date_utc" json:"from_date_utc,omitempty"`
	ToDateUTC      *time.Time     `gorm:"column:to_date_utc" json:"to_date_utc,omitempty"`
	StartedUTC     time.Time      `gorm:"column:started_utc;not null" json:"started_utc"`
	FinishedUTC    *time.Time     `gorm:"column:finished_utc" json:"finished_utc,omitempty"`
	ParametersJSON datatypes.JSON `gorm:"column:parameters_json" json:"parameters,omitempty"`

	Model *PredictionModel `gorm:"foreignKey:ModelID;references:ModelID" json:"model,omitempty"`
}

// ModelPrediction 模型对某选项给出的胜率
type ModelPrediction struct {
	ModelPredictionID int64               `gorm:"column:model_prediction_id;primaryKey;autoIncrement" json:"model_prediction_id"`
	ModelRunID        int64               `gorm:"column:model_run_id;not null;index" json:"model_run_id"`
	MarketOutcomeID   int64               `gorm:"column:market_outcome_id;not null;index" json:"market_outcome_id"`
	ProviderID        *int64              `gorm:"column:provider_id" json:"provider_id,omitempty"` // 为空表示与提供方无关
	WinProbability    decimal.Decimal     `gorm:"column:win_probability;type:decimal(6,5);not null" json:"win_probability"`
	FairDecimalOdds   decimal.NullDecimal `gorm:"column:fair_decimal_odds;type:decimal(10,4)" json:"fair_decimal_odds"`
	FairAmericanOdds  *int                `gorm:"column:fair_american_odds" json:"fair_american_odds,omitempty"`
	CreatedUTC        time.Time           `gorm:"column:created_utc;not null" json:"created_utc"`

	ModelRun      *ModelRun      `gorm:"foreignKey:ModelRunID;references:ModelRunID" json:"model_run,omitempty"`
	MarketOutcome *MarketOutcome `gorm:"foreignKey:MarketOutcomeID;references:MarketOutcomeID" json:"-"`
	Provider      *OddsProvider  `gorm:"foreignKey:ProviderID;references:ProviderID" json:"provider,omitempty"`
}

func (PredictionModel) TableName() string { return table("model") }
func (ModelRun) TableName() string        { return table("model_run") }
func (ModelPrediction) TableName() string { return table("model_prediction") }
