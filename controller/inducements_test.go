package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/manugarri/bb-league/db/mockdb"
	"github.com/manugarri/bb-league/model"
)

// expectPrematch wires the mocks every ledger mutation goes through: the
// match lookup, the submission check and the value recomputation of both
// sides.
func expectPrematch(mockDB *mockdb.DB, m *model.Match, home, away *model.Team) {
	mockDB.On("GetMatch", mock.Anything, m.ID).Return(m, nil)
	mockDB.On("GetPreMatchSubmission", mock.Anything, m.ID, mock.Anything).Return(nil, nil)
	mockDB.On("GetTeam", mock.Anything, home.ID).Return(home, nil)
	mockDB.On("GetTeam", mock.Anything, away.ID).Return(away, nil)
	mockDB.On("SaveTeamValues", mock.Anything, home).Return(nil)
	mockDB.On("SaveTeamValues", mock.Anything, away).Return(nil)
}

func TestAddInducement(t *testing.T) {
	// Home TV 200000, away TV 240000: home gets 40000 petty cash, and
	// with 5000 treasury a 45000 budget.
	home := rosterTeam(1, "Reikland Reavers", 4, 0, 5000)
	away := rosterTeam(2, "Gouged Eye", 4, 4, 0)

	tests := map[string]struct {
		inducementID string
		quantity     int
		ledger       []model.MatchInducement
		exErr        error
		exTotal      int
	}{
		"within budget": {inducementID: "weather_mage", quantity: 1, exTotal: 30000},
		"exact budget spend": {inducementID: "part_time_assistant_coaches", quantity: 1,
			ledger:  []model.MatchInducement{{InducementID: "weather_mage", Quantity: 1, TotalCost: 25000}},
			exTotal: 20000},
		"over budget": {inducementID: "bloodweiser_keg", quantity: 1, exErr: ErrBudgetExceeded,
			ledger: []model.MatchInducement{{InducementID: "weather_mage", Quantity: 1, TotalCost: 30000}}},
		"unknown entry": {inducementID: "chainsaw", quantity: 1, exErr: ErrUnknownInducement},
		"quantity cap": {inducementID: "bloodweiser_keg", quantity: 2, exErr: ErrQuantityExceeded,
			ledger: []model.MatchInducement{{InducementID: "bloodweiser_keg", Quantity: 1, TotalCost: 50000}}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)

			m := scheduledMatch(5, 1, 2)
			expectPrematch(mockDB, m, home, away)
			if tc.exErr != ErrUnknownInducement {
				mockDB.On("ListMatchInducements", mock.Anything, int32(5), int32(1)).Return(tc.ledger, nil)
			}
			if tc.exErr == nil {
				mockDB.On("UpsertInducement", mock.Anything, mock.AnythingOfType("*model.MatchInducement")).Return(nil)
			}

			mi, err := ctrl.AddInducement(context.Background(), 5, 1, tc.inducementID, tc.quantity, "en")
			if tc.exErr != nil {
				if !errors.Is(err, tc.exErr) {
					t.Fatalf("expected error %v, got %v", tc.exErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mi.TotalCost != tc.exTotal {
				t.Errorf("total cost: expected %d, got %d", tc.exTotal, mi.TotalCost)
			}
			if mi.InducementID != tc.inducementID {
				t.Errorf("inducement id: expected %s, got %s", tc.inducementID, mi.InducementID)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestAddInducementAfterSubmission(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	m := scheduledMatch(5, 1, 2)
	mockDB.On("GetMatch", mock.Anything, int32(5)).Return(m, nil)
	mockDB.On("GetPreMatchSubmission", mock.Anything, int32(5), int32(1)).
		Return(&model.PreMatchSubmission{MatchID: 5, TeamID: 1, Submitted: true}, nil)

	_, err := ctrl.AddInducement(context.Background(), 5, 1, "weather_mage", 1, "en")
	if !errors.Is(err, ErrInducementsSubmitted) {
		t.Errorf("expected ErrInducementsSubmitted, got %v", err)
	}
}

func TestAddInducementMatchNotOpen(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	m := scheduledMatch(5, 1, 2)
	m.Status = model.MatchCompleted
	mockDB.On("GetMatch", mock.Anything, int32(5)).Return(m, nil)

	_, err := ctrl.AddInducement(context.Background(), 5, 1, "weather_mage", 1, "en")
	if !errors.Is(err, ErrMatchNotOpen) {
		t.Errorf("expected ErrMatchNotOpen, got %v", err)
	}
}

func TestAddInducementSpanishName(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	home := rosterTeam(1, "Reikland Reavers", 4, 0, 50000)
	away := rosterTeam(2, "Gouged Eye", 4, 0, 0)

	m := scheduledMatch(5, 1, 2)
	expectPrematch(mockDB, m, home, away)
	mockDB.On("ListMatchInducements", mock.Anything, int32(5), int32(1)).Return([]model.MatchInducement{}, nil)
	mockDB.On("UpsertInducement", mock.Anything, mock.AnythingOfType("*model.MatchInducement")).Return(nil)

	mi, err := ctrl.AddInducement(context.Background(), 5, 1, "weather_mage", 1, "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mi.Name != "Mago del Clima" {
		t.Errorf("expected spanish name, got %q", mi.Name)
	}
}

func TestHireStarPlayer(t *testing.T) {
	// Home has 40000 petty cash plus 100000 treasury.
	home := rosterTeam(1, "Reikland Reavers", 4, 0, 100000)
	away := rosterTeam(2, "Gouged Eye", 4, 4, 0)

	star := &model.StarPlayer{ID: 30, Name: "Griff Oberwald", Cost: 120000, RaceIDs: []int32{1}}

	tests := map[string]struct {
		star   *model.StarPlayer
		ledger []model.MatchInducement
		exErr  error
	}{
		"success": {star: star},
		"ineligible race": {
			star:  &model.StarPlayer{ID: 31, Name: "Morg 'n' Thorg", Cost: 380000, RaceIDs: []int32{4}},
			exErr: ErrStarPlayerIneligible,
		},
		"duplicate": {star: star, exErr: ErrStarPlayerDuplicate,
			ledger: []model.MatchInducement{
				{InducementID: model.StarPlayerInducementID, StarPlayerID: 30, TotalCost: 120000},
			}},
		"limit reached": {star: star, exErr: ErrStarPlayerLimit,
			ledger: []model.MatchInducement{
				{InducementID: model.StarPlayerInducementID, StarPlayerID: 31, TotalCost: 60000},
				{InducementID: model.StarPlayerInducementID, StarPlayerID: 32, TotalCost: 60000},
			}},
		"over budget": {star: &model.StarPlayer{ID: 33, Name: "Zug", Cost: 260000, RaceIDs: []int32{1}},
			exErr: ErrBudgetExceeded},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)

			m := scheduledMatch(5, 1, 2)
			expectPrematch(mockDB, m, home, away)
			mockDB.On("GetStarPlayer", mock.Anything, tc.star.ID).Return(tc.star, nil)
			if tc.exErr != ErrStarPlayerIneligible {
				mockDB.On("ListMatchInducements", mock.Anything, int32(5), int32(1)).Return(tc.ledger, nil)
			}
			if tc.exErr == nil {
				mockDB.On("UpsertInducement", mock.Anything, mock.AnythingOfType("*model.MatchInducement")).Return(nil)
			}

			mi, err := ctrl.HireStarPlayer(context.Background(), 5, 1, tc.star.ID)
			if tc.exErr != nil {
				if !errors.Is(err, tc.exErr) {
					t.Fatalf("expected error %v, got %v", tc.exErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !mi.IsStarPlayer() || mi.StarPlayerID != tc.star.ID || mi.TotalCost != tc.star.Cost {
				t.Errorf("unexpected entry: %+v", mi)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestRemoveInducementOwnership(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	home := rosterTeam(1, "Reikland Reavers", 4, 0, 0)
	away := rosterTeam(2, "Gouged Eye", 4, 0, 0)
	m := scheduledMatch(5, 1, 2)
	expectPrematch(mockDB, m, home, away)

	// Entry belongs to the other team.
	mockDB.On("GetInducement", mock.Anything, int32(77)).
		Return(&model.MatchInducement{ID: 77, MatchID: 5, TeamID: 2, InducementID: "weather_mage"}, nil)

	err := ctrl.RemoveInducement(context.Background(), 5, 1, 77)
	if !errors.Is(err, ErrTeamNotInMatch) {
		t.Errorf("expected ErrTeamNotInMatch, got %v", err)
	}
}

func TestSubmitInducements(t *testing.T) {
	// Petty cash 40000; a 70000 bill needs 30000 from the treasury.
	tests := map[string]struct {
		treasury int
		exErr    error
		exDebit  int
	}{
		"treasury covers the rest": {treasury: 30000, exDebit: 30000},
		"treasury too small":       {treasury: 20000, exErr: ErrInsufficientTreasury},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)

			home := rosterTeam(1, "Reikland Reavers", 4, 0, tc.treasury)
			away := rosterTeam(2, "Gouged Eye", 4, 4, 0)
			m := scheduledMatch(5, 1, 2)
			expectPrematch(mockDB, m, home, away)

			ledger := []model.MatchInducement{
				{InducementID: "bloodweiser_keg", Quantity: 1, TotalCost: 50000},
				{InducementID: "part_time_assistant_coaches", Quantity: 1, TotalCost: 20000},
			}
			mockDB.On("ListMatchInducements", mock.Anything, int32(5), int32(1)).Return(ledger, nil)
			if tc.exErr == nil {
				mockDB.On("SubmitPreMatch", mock.Anything, int32(5), int32(1), 70000, tc.exDebit).Return(nil)
			}

			err := ctrl.SubmitInducements(context.Background(), 5, 1)
			if !errors.Is(err, tc.exErr) {
				t.Fatalf("expected error %v, got %v", tc.exErr, err)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestSkipInducements(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	home := rosterTeam(1, "Reikland Reavers", 4, 0, 0)
	away := rosterTeam(2, "Gouged Eye", 4, 0, 0)
	m := scheduledMatch(5, 1, 2)
	expectPrematch(mockDB, m, home, away)
	mockDB.On("SubmitPreMatch", mock.Anything, int32(5), int32(1), 0, 0).Return(nil)

	if err := ctrl.SkipInducements(context.Background(), 5, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mockDB.AssertExpectations(t)
}

func TestPrematchOverview(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	home := rosterTeam(1, "Reikland Reavers", 4, 0, 15000)
	away := rosterTeam(2, "Gouged Eye", 4, 4, 80000)

	m := scheduledMatch(5, 1, 2)
	mockDB.On("GetMatch", mock.Anything, int32(5)).Return(m, nil)
	mockDB.On("GetTeam", mock.Anything, int32(1)).Return(home, nil)
	mockDB.On("GetTeam", mock.Anything, int32(2)).Return(away, nil)
	mockDB.On("SaveTeamValues", mock.Anything, home).Return(nil)
	mockDB.On("SaveTeamValues", mock.Anything, away).Return(nil)

	ledger := []model.MatchInducement{{InducementID: "weather_mage", Quantity: 1, TotalCost: 30000}}
	mockDB.On("ListMatchInducements", mock.Anything, int32(5), int32(1)).Return(ledger, nil)
	mockDB.On("ListMatchInducements", mock.Anything, int32(5), int32(2)).Return([]model.MatchInducement{}, nil)
	mockDB.On("GetPreMatchSubmission", mock.Anything, int32(5), int32(1)).Return(nil, nil)
	mockDB.On("GetPreMatchSubmission", mock.Anything, int32(5), int32(2)).
		Return(&model.PreMatchSubmission{MatchID: 5, TeamID: 2, Submitted: true}, nil)

	state, err := ctrl.PrematchOverview(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Home is 40000 down on team value.
	if expected, got := 40000, state.Home.PettyCash; expected != got {
		t.Errorf("home petty cash: expected %d, got %d", expected, got)
	}
	if expected, got := 0, state.Away.PettyCash; expected != got {
		t.Errorf("away petty cash: expected %d, got %d", expected, got)
	}
	if expected, got := 30000, state.Home.TotalCost; expected != got {
		t.Errorf("home total cost: expected %d, got %d", expected, got)
	}
	if state.Home.Submitted || !state.Away.Submitted {
		t.Errorf("submission flags: home=%v away=%v", state.Home.Submitted, state.Away.Submitted)
	}
	if len(state.Home.Available) == 0 {
		t.Error("expected a non-empty available catalog for the home side")
	}
	mockDB.AssertExpectations(t)
}
