package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game 比赛。主客队外键不级联删除
type Game struct {
	GameID       int64     `gorm:"column:game_id;primaryKey;autoIncrement" json:"game_id"`
	LeagueID     int       `gorm:"column:league_id;not null;index" json:"league_id"`
	Season       string    `gorm:"column:season;size:20;not null" json:"season"` // 2024-2025
	GameDateUTC  time.Time `gorm:"column:game_date_utc;not null;index" json:"game_date_utc"`
	StartTimeUTC time.Time `gorm:"column:start_time_utc;not null" json:"start_time_utc"`
	HomeTeamID   int       `gorm:"column:home_team_id;not null;index" json:"home_team_id"`
	AwayTeamID   int       `gorm:"column:away_team_id;not null;index" json:"away_team_id"`
	Status       string    `gorm:"column:status;size:20;not null;default:Scheduled" json:"status"`
	ExternalRef  *string   `gorm:"column:external_ref;size:100" json:"external_ref,omitempty"`

	League     *League     `gorm:"foreignKey:LeagueID;references:LeagueID" json:"league,omitempty"`
	HomeTeam   *Team       `gorm:"foreignKey:HomeTeamID;references:TeamID;constraint:OnDelete:NO ACTION" json:"home_team,omitempty"`
	AwayTeam   *Team       `gorm:"foreignKey:AwayTeamID;references:TeamID;constraint:OnDelete:NO ACTION" json:"away_team,omitempty"`
	GameResult *GameResult `gorm:"foreignKey:GameID;references:GameID" json:"result,omitempty"`
	Markets    []Market    `gorm:"foreignKey:GameID;references:GameID" json:"markets,omitempty"`
}

// GameResult 比赛结果
type GameResult struct {
	GameResultID int64     `gorm:"column:game_result_id;primaryKey;autoIncrement" json:"game_result_id"`
	GameID       int64     `gorm:"column:game_id;not null;uniqueIndex" json:"game_id"`
	HomeScore    int16     `gorm:"column:home_score;not null" json:"home_score"`
	AwayScore    int16     `gorm:"column:away_score;not null" json:"away_score"`
	FinalStatus  string    `gorm:"column:final_status;size:20;not null;default:Final" json:"final_status"` // Final / Cancelled
	IsOvertime   bool      `gorm:"column:is_overtime;not null;default:false" json:"is_overtime"`
	UpdatedUTC   time.Time `gorm:"column:updated_utc;not null" json:"updated_utc"`
}

// Winner 返回获胜方选项编码；平局返回 PUSH
func (r GameResult) Winner() string {
	switch {
	case r.HomeScore > r.AwayScore:
		return OutcomeHome
	case r.AwayScore > r.HomeScore:
		return OutcomeAway
	default:
		return "PUSH"
	}
}

// TotalPoints 双方总分
func (r GameResult) TotalPoints() int {
	return int(r.HomeScore) + int(r.AwayScore)
}

// PlayerGameStats 球员单场数据
type PlayerGameStats struct {
	PlayerGameStatsID int64               `gorm:"column:player_game_stats_id;primaryKey;autoIncrement" json:"player_game_stats_id"`
	GameID            int64               `gorm:"column:game_id;not null;index" json:"game_id"`
	PlayerID          int                 `gorm:"column:player_id;not null;index" json:"player_id"`
	Minutes           decimal.NullDecimal `gorm:"column:minutes;type:decimal(5,2)" json:"minutes"`
	Points            *int16              `gorm:"column:points" json:"points,omitempty"`
	Rebounds          *int16              `gorm:"column:rebounds" json:"rebounds,omitempty"`
	Assists           *int16              `gorm:"column:assists" json:"assists,omitempty"`
	Blocks            *int16              `gorm:"column:blocks" json:"blocks,omitempty"`
	Steals            *int16              `gorm:"column:steals" json:"steals,omitempty"`
	Turnovers         *int16              `gorm:"column:turnovers" json:"turnovers,omitempty"`
	CreatedUTC        time.Time           `gorm:"column:created_utc;not null" json:"created_utc"`
	UpdatedUTC        time.Time           `gorm:"column:updated_utc;not null" json:"updated_utc"`

	Game   *Game   `gorm:"foreignKey:GameID;references:GameID" json:"-"`
	Player *Player `gorm:"foreignKey:PlayerID;references:PlayerID" json:"player,omitempty"`
}

func (Game) TableName() string            { return table("game") }
func (GameResult) TableName() string      { return table("game_result") }
func (PlayerGameStats) TableName() string { return table("player_game_stats") }
