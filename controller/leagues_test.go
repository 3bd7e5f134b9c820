package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/db/mockdb"
	"github.com/manugarri/bb-league/model"
)

func leagueTeams(ids ...int32) []model.LeagueTeam {
	teams := make([]model.LeagueTeam, 0, len(ids))
	for i, id := range ids {
		teams = append(teams, model.LeagueTeam{LeagueID: 3, TeamID: id, Seed: i + 1})
	}
	return teams
}

func TestCreateLeagueDefaults(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("AddLeague", mock.Anything, mock.AnythingOfType("*model.League")).Return(nil)

	l := &model.League{Name: "  Old World League  "}
	if err := ctrl.CreateLeague(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l.Name != "Old World League" {
		t.Errorf("name not trimmed: %q", l.Name)
	}
	if l.Format != model.FormatRoundRobin {
		t.Errorf("expected round robin default, got %s", l.Format)
	}
	if l.Scoring != model.DefaultScoring {
		t.Errorf("expected default scoring, got %+v", l.Scoring)
	}
	if l.Status != model.LeagueRegistration {
		t.Errorf("expected registration status, got %s", l.Status)
	}
}

func TestCreateLeagueRequiresName(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	if err := ctrl.CreateLeague(context.Background(), &model.League{Name: "   "}); err == nil {
		t.Error("expected an error for a nameless league")
	}
}

func TestAddTeamToLeagueFull(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("GetLeague", mock.Anything, int32(3)).
		Return(&model.League{ID: 3, Name: "Old World League", MaxTeams: 2}, nil)
	mockDB.On("ListLeagueTeams", mock.Anything, int32(3)).Return(leagueTeams(1, 2), nil)

	err := ctrl.AddTeamToLeague(context.Background(), 3, 8, 3)
	if err == nil {
		t.Error("expected an error adding to a full league")
	}
}

func TestStartSeason(t *testing.T) {
	tests := map[string]struct {
		teams    []model.LeagueTeam
		active   *model.Season
		name     string
		exErr    error
		exNumber int
		exName   string
	}{
		"first season": {teams: leagueTeams(1, 2, 3, 4), name: "Inaugural Season",
			exNumber: 1, exName: "Inaugural Season"},
		"follow-up season numbering": {teams: leagueTeams(1, 2, 3, 4),
			active:   &model.Season{ID: 9, LeagueID: 3, Number: 2},
			exNumber: 3, exName: "Season 3"},
		"not enough teams": {teams: leagueTeams(1, 2), exErr: ErrNotEnoughTeams},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)

			mockDB.On("GetLeague", mock.Anything, int32(3)).
				Return(&model.League{ID: 3, MinTeams: 4, MaxTeams: 16}, nil)
			mockDB.On("ListLeagueTeams", mock.Anything, int32(3)).Return(tc.teams, nil)
			if tc.exErr == nil {
				if tc.active != nil {
					mockDB.On("GetActiveSeason", mock.Anything, int32(3)).Return(tc.active, nil)
				} else {
					mockDB.On("GetActiveSeason", mock.Anything, int32(3)).Return(nil, db.ErrSeasonNotFound)
				}
				mockDB.On("AddSeason", mock.Anything, mock.AnythingOfType("*model.Season")).Return(nil)
			}

			s, err := ctrl.StartSeason(context.Background(), 3, tc.name)
			if tc.exErr != nil {
				if !errors.Is(err, tc.exErr) {
					t.Fatalf("expected error %v, got %v", tc.exErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Number != tc.exNumber || s.Name != tc.exName || !s.Active {
				t.Errorf("unexpected season: %+v", s)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestGetStandingsSorted(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("GetSeason", mock.Anything, int32(9)).Return(&model.Season{ID: 9, LeagueID: 3}, nil)
	mockDB.On("ListStandings", mock.Anything, int32(9)).Return([]model.Standing{
		{TeamID: 1, Points: 6, TouchdownsFor: 5, TouchdownsAgainst: 5},
		{TeamID: 2, Points: 9},
		{TeamID: 3, Points: 6, TouchdownsFor: 8, TouchdownsAgainst: 4},
	}, nil)

	standings, err := ctrl.GetStandings(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int32{2, 3, 1}
	for i, teamID := range expected {
		if standings[i].TeamID != teamID {
			t.Errorf("position %d: expected team %d, got %d", i+1, teamID, standings[i].TeamID)
		}
		if standings[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i+1, i+1, standings[i].Rank)
		}
	}
}

func TestGenerateScheduleRoundRobin(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("GetLeague", mock.Anything, int32(3)).
		Return(&model.League{ID: 3, Format: model.FormatRoundRobin}, nil)
	mockDB.On("GetActiveSeason", mock.Anything, int32(3)).
		Return(&model.Season{ID: 9, LeagueID: 3, Number: 1, Active: true}, nil)
	mockDB.On("ListLeagueTeams", mock.Anything, int32(3)).Return(leagueTeams(1, 2, 3, 4), nil)
	mockDB.On("AddMatches", mock.Anything, mock.AnythingOfType("[]model.Match")).Return(nil)

	matches, err := ctrl.GenerateSchedule(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expected, got := 6, len(matches); expected != got {
		t.Fatalf("matches: expected %d, got %d", expected, got)
	}
	rounds := make(map[int]int)
	for _, m := range matches {
		if m.LeagueID != 3 || m.SeasonID != 9 || m.Status != model.MatchScheduled {
			t.Errorf("unexpected match fields: %+v", m)
		}
		rounds[m.RoundNumber]++
	}
	for r := 1; r <= 3; r++ {
		if rounds[r] != 2 {
			t.Errorf("round %d: expected 2 matches, got %d", r, rounds[r])
		}
	}
	mockDB.AssertExpectations(t)
}

func TestGenerateScheduleSwissRound(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("GetLeague", mock.Anything, int32(3)).
		Return(&model.League{ID: 3, Format: model.FormatSwiss}, nil)
	mockDB.On("GetActiveSeason", mock.Anything, int32(3)).
		Return(&model.Season{ID: 9, LeagueID: 3, Number: 1, Active: true, CurrentRound: 2}, nil)
	mockDB.On("ListLeagueTeams", mock.Anything, int32(3)).Return(leagueTeams(1, 2, 3, 4), nil)
	mockDB.On("ListStandings", mock.Anything, int32(9)).Return([]model.Standing{
		{TeamID: 1, Points: 6},
		{TeamID: 2, Points: 6},
		{TeamID: 3, Points: 0},
		{TeamID: 4, Points: 0},
	}, nil)
	mockDB.On("ListSeasonMatches", mock.Anything, int32(9)).Return([]model.Match{
		{HomeTeamID: 1, AwayTeamID: 3, Status: model.MatchCompleted},
		{HomeTeamID: 2, AwayTeamID: 4, Status: model.MatchCompleted},
	}, nil)
	mockDB.On("AddMatches", mock.Anything, mock.AnythingOfType("[]model.Match")).Return(nil)

	matches, err := ctrl.GenerateSchedule(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expected, got := 2, len(matches); expected != got {
		t.Fatalf("matches: expected %d, got %d", expected, got)
	}
	for _, m := range matches {
		// The next round after the two already played.
		if m.RoundNumber != 3 {
			t.Errorf("expected round 3, got %d", m.RoundNumber)
		}
	}
	// Leaders pair with leaders.
	if matches[0].HomeTeamID != 1 || matches[0].AwayTeamID != 2 {
		t.Errorf("top pairing: expected 1 vs 2, got %d vs %d", matches[0].HomeTeamID, matches[0].AwayTeamID)
	}
	mockDB.AssertExpectations(t)
}

func TestGenerateScheduleKnockout(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("GetLeague", mock.Anything, int32(3)).
		Return(&model.League{ID: 3, Format: model.FormatKnockout}, nil)
	mockDB.On("GetActiveSeason", mock.Anything, int32(3)).
		Return(&model.Season{ID: 9, LeagueID: 3, Number: 1, Active: true}, nil)
	// Six entrants: the two top seeds get opening-round byes.
	mockDB.On("ListLeagueTeams", mock.Anything, int32(3)).Return(leagueTeams(1, 2, 3, 4, 5, 6), nil)
	mockDB.On("AddMatches", mock.Anything, mock.AnythingOfType("[]model.Match")).Return(nil)

	matches, err := ctrl.GenerateSchedule(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expected, got := 2, len(matches); expected != got {
		t.Fatalf("matches: expected %d, got %d", expected, got)
	}
	if matches[0].HomeTeamID != 3 || matches[0].AwayTeamID != 6 {
		t.Errorf("first pairing: expected 3 vs 6, got %d vs %d", matches[0].HomeTeamID, matches[0].AwayTeamID)
	}
	if matches[1].HomeTeamID != 4 || matches[1].AwayTeamID != 5 {
		t.Errorf("second pairing: expected 4 vs 5, got %d vs %d", matches[1].HomeTeamID, matches[1].AwayTeamID)
	}
	mockDB.AssertExpectations(t)
}

func TestGenerateScheduleNotEnoughTeams(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("GetLeague", mock.Anything, int32(3)).
		Return(&model.League{ID: 3, Format: model.FormatRoundRobin}, nil)
	mockDB.On("GetActiveSeason", mock.Anything, int32(3)).
		Return(&model.Season{ID: 9, LeagueID: 3, Active: true}, nil)
	mockDB.On("ListLeagueTeams", mock.Anything, int32(3)).Return(leagueTeams(1), nil)

	_, err := ctrl.GenerateSchedule(context.Background(), 3)
	if !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("expected ErrNotEnoughTeams, got %v", err)
	}
}
