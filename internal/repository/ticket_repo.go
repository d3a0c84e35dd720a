package repository

import (
	"context"
	"time"

	"SmartBetting/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketFilter 注单列表筛选
type TicketFilter struct {
	Status      string
	StrategyTag string
	FromTime    *time.Time // placed_utc 起
	ToTime      *time.Time // placed_utc 止
}

// TicketRepository 注单查询仓储
type TicketRepository interface {
	GetTicketByRef(ctx context.Context, ref uuid.UUID) (*model.BetTicket, error)
	ListTickets(ctx context.Context, filter TicketFilter, page, pageSize int) ([]*model.BetTicket, int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) GetTicketByRef(ctx context.Context, ref uuid.UUID) (*model.BetTicket, error) {
	var ticket model.BetTicket
	err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB {
			return db.Order("bet_ticket_leg_id ASC")
		}).
		Preload("Legs.MarketOutcome").
		Preload("Legs.Provider").
		Where("ticket_ref = ?", ref.String()).
		First(&ticket).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &ticket, nil
}

func (r *ticketRepository) ListTickets(ctx context.Context, filter TicketFilter, page, pageSize int) ([]*model.BetTicket, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.BetTicket{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StrategyTag != "" {
		db = db.Where("strategy_tag = ?", filter.StrategyTag)
	}
	if filter.FromTime != nil {
		db = db.Where("placed_utc >= ?", *filter.FromTime)
	}
	if filter.ToTime != nil {
		db = db.Where("placed_utc <= ?", *filter.ToTime)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []*model.BetTicket
	if err := db.
		Order("placed_utc DESC").
		Order("bet_ticket_id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
