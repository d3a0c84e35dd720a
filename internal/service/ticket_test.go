package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"SmartBetting/internal/model"
	"SmartBetting/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTicket(t *testing.T) {
	ref := uuid.New()
	repo := &fakeTicketRepo{tickets: map[uuid.UUID]*model.BetTicket{
		ref: {BetTicketID: 1, TicketRef: ref, Status: model.TicketStatusPending},
	}}
	svc := NewTicketService(repo, quietLogger())

	ticket, err := svc.GetTicket(context.Background(), ref.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), ticket.BetTicketID)

	_, err = svc.GetTicket(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = svc.GetTicket(context.Background(), uuid.New().String())
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestListTickets(t *testing.T) {
	repo := &fakeTicketRepo{total: 0}
	svc := NewTicketService(repo, quietLogger())

	res, err := svc.ListTickets(context.Background(), TicketQuery{Status: model.TicketStatusWon, Page: -1, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.PageSize)
	assert.NotNil(t, res.Items)
	assert.Equal(t, model.TicketStatusWon, repo.filter.Status)
	assert.Equal(t, 1, repo.page)

	_, err = svc.ListTickets(context.Background(), TicketQuery{Status: "Cashed"})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err = svc.ListTickets(context.Background(), TicketQuery{From: &from, To: &to})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestReferenceEnsureDefaults(t *testing.T) {
	repo := &fakeReferenceRepo{}
	svc := NewReferenceService(repo, quietLogger())

	require.NoError(t, svc.EnsureDefaults(context.Background()))
	require.Len(t, repo.ensured, 3)
	assert.Equal(t, model.MarketTypeMoneyline, repo.ensured[0].Code)

	_, err := svc.Teams(context.Background(), "NBA", true)
	require.NoError(t, err)
	assert.Equal(t, repository.TeamFilter{LeagueCode: "NBA", ActiveOnly: true}, repo.teams)
}
