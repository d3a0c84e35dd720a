package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sport 运动项目，如 BASKETBALL
type Sport struct {
	SportID int    `gorm:"column:sport_id;primaryKey;autoIncrement" json:"sport_id"`
	Name    string `gorm:"column:name;size:100;not null" json:"name"`
	Code    string `gorm:"column:code;size:20;not null;uniqueIndex" json:"code"`

	Leagues []League `gorm:"foreignKey:SportID;references:SportID" json:"leagues,omitempty"`
}

// League 联赛，如 NBA
type League struct {
	LeagueID int     `gorm:"column:league_id;primaryKey;autoIncrement" json:"league_id"`
	SportID  int     `gorm:"column:sport_id;not null;index" json:"sport_id"`
	Name     string  `gorm:"column:name;size:100;not null" json:"name"`
	Code     string  `gorm:"column:code;size:20;not null;uniqueIndex" json:"code"`
	TimeZone *string `gorm:"column:time_zone;size:50" json:"time_zone,omitempty"` // 如 America/New_York

	Sport *Sport `gorm:"foreignKey:SportID;references:SportID" json:"sport,omitempty"`
	Teams []Team `gorm:"foreignKey:LeagueID;references:LeagueID" json:"teams,omitempty"`
}

// Team 球队
type Team struct {
	TeamID       int     `gorm:"column:team_id;primaryKey;autoIncrement" json:"team_id"`
	LeagueID     int     `gorm:"column:league_id;not null;index" json:"league_id"`
	Name         string  `gorm:"column:name;size:100;not null" json:"name"`                 // Boston Celtics
	Abbreviation string  `gorm:"column:abbreviation;size:10;not null" json:"abbreviation"` // BOS
	ExternalRef  *string `gorm:"column:external_ref;size:100" json:"external_ref,omitempty"`
	IsActive     bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	League      *League      `gorm:"foreignKey:LeagueID;references:LeagueID" json:"league,omitempty"`
	TeamRatings []TeamRating `gorm:"foreignKey:TeamID;references:TeamID" json:"ratings,omitempty"`
}

// Player 球员
type Player struct {
	PlayerID    int     `gorm:"column:player_id;primaryKey;autoIncrement" json:"player_id"`
	TeamID      int     `gorm:"column:team_id;not null;index" json:"team_id"`
	FullName    string  `gorm:"column:full_name;size:120;not null" json:"full_name"`
	FirstName   *string `gorm:"column:first_name;size:60" json:"first_name,omitempty"`
	LastName    *string `gorm:"column:last_name;size:60" json:"last_name,omitempty"`
	Position    *string `gorm:"column:position;size:10" json:"position,omitempty"` // G / F / C
	ExternalRef *string `gorm:"column:external_ref;size:100" json:"external_ref,omitempty"`
	IsActive    bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TeamRating 球队赛季评分
type TeamRating struct {
	TeamRatingID   int             `gorm:"column:team_rating_id;primaryKey;autoIncrement" json:"team_rating_id"`
	TeamID         int             `gorm:"column:team_id;not null;index" json:"team_id"`
	Season         string          `gorm:"column:season;size:20;not null" json:"season"`
	Rating         decimal.Decimal `gorm:"column:rating;type:decimal(18,4);not null" json:"rating"`
	LastUpdatedUTC time.Time       `gorm:"column:last_updated_utc;not null" json:"last_updated_utc"`
}

func (Sport) TableName() string      { return table("sport") }
func (League) TableName() string     { return table("league") }
func (Team) TableName() string       { return table("team") }
func (Player) TableName() string     { return table("player") }
func (TeamRating) TableName() string { return table("team_rating") }
