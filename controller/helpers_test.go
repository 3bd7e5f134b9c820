package controller

import (
	"testing"

	"github.com/itbasis/go-clock"

	"github.com/manugarri/bb-league/db/mockdb"
	"github.com/manugarri/bb-league/estimator/mockestimator"
	"github.com/manugarri/bb-league/gamedata"
	"github.com/manugarri/bb-league/model"
)

// newTestController wires a controller to mocks and the real inducement
// catalog.
func newTestController(t *testing.T, mockDB *mockdb.DB, est *mockestimator.Estimator) C {
	t.Helper()

	catalog, err := gamedata.Load()
	if err != nil {
		t.Fatalf("error loading inducement catalog: %v", err)
	}

	ctrl, err := New(clock.New(), mockDB, est, catalog)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	return ctrl
}

func humanRace() *model.Race {
	return &model.Race{ID: 1, Name: "Human", RerollCost: 50000, ApothecaryAllowed: true}
}

// rosterTeam builds a team whose value comes only from rerolls and staff,
// so test team values are exact multiples of 10000.
func rosterTeam(id int32, name string, rerolls, coaches, treasury int) *model.Team {
	return &model.Team{
		ID:               id,
		Name:             name,
		Race:             humanRace(),
		Rerolls:          rerolls,
		AssistantCoaches: coaches,
		Treasury:         treasury,
		Active:           true,
	}
}

func lineman(id, teamID int32, number int) *model.Player {
	return &model.Player{
		ID:     id,
		TeamID: teamID,
		Name:   "Lineman",
		Number: number,
		Level:  1,
		Active: true,
		Position: &model.Position{
			ID:       1,
			RaceID:   1,
			Name:     "Lineman",
			Movement: 6,
			Strength: 3,
			Agility:  3,
			Passing:  4,
			Armor:    9,
			Cost:     50000,
		},
	}
}

func scheduledMatch(id, homeTeamID, awayTeamID int32) *model.Match {
	return &model.Match{
		ID:         id,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Status:     model.MatchScheduled,
	}
}

func intp(v int) *int          { return &v }
func stringp(v string) *string { return &v }
