package model

// Schema 所有业务表所在的 schema
const Schema = "betting"

func table(name string) string { return Schema + "." + name }

// 比赛状态
const (
	GameStatusScheduled = "Scheduled"
	GameStatusLive      = "InProgress"
	GameStatusFinal     = "Final"
	GameStatusCancelled = "Cancelled"
)

// 盘口类型编码（market_type.code）
const (
	MarketTypeMoneyline   = "MONEYLINE"
	MarketTypeSpread      = "SPREAD"
	MarketTypeTotalPoints = "TOTAL_POINTS"
)

// 选项编码（market_outcome.outcome_code）
const (
	OutcomeHome  = "HOME"
	OutcomeAway  = "AWAY"
	OutcomeOver  = "OVER"
	OutcomeUnder = "UNDER"
)

// 盘口时段
const PeriodFullGame = "FULL_GAME"

// 模型运行类型
const (
	RunTypeLive     = "Live"
	RunTypeBacktest = "Backtest"
)

// 风险等级
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// 注单/注单腿状态
const (
	TicketStatusPending = "Pending"
	TicketStatusWon     = "Won"
	TicketStatusLost    = "Lost"
	TicketStatusPush    = "Push"
	TicketStatusVoid    = "Void"
)

// AllModels 按外键依赖顺序返回全部实体，供 AutoMigrate 使用
func AllModels() []interface{} {
	return []interface{}{
		&Sport{},
		&League{},
		&Team{},
		&Player{},
		&TeamRating{},
		&Game{},
		&GameResult{},
		&PlayerGameStats{},
		&MarketType{},
		&StatType{},
		&OddsProvider{},
		&Market{},
		&MarketOutcome{},
		&OddsSnapshot{},
		&PredictionModel{},
		&ModelRun{},
		&ModelPrediction{},
		&BetRecommendation{},
		&BetTicket{},
		&BetTicketLeg{},
	}
}
