package testutils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/manugarri/bb-league/containers"
	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/model"
)

// Positions matching the reference rows loaded from schema.sql. IDs are
// stable because the seed inserts run before anything else touches the
// sequence.
var (
	HumanLineman = &model.Position{
		ID: 1, RaceID: 1, Name: "Lineman",
		Movement: 6, Strength: 3, Agility: 3, Passing: 4, Armor: 9,
		MaxCount: 16, Cost: 50000,
	}
	HumanThrower = &model.Position{
		ID: 2, RaceID: 1, Name: "Thrower",
		Movement: 6, Strength: 3, Agility: 3, Passing: 2, Armor: 9,
		MaxCount: 2, Cost: 80000,
		StartingSkills: []string{"Pass", "Sure Hands"},
	}
	HumanCatcher = &model.Position{
		ID: 3, RaceID: 1, Name: "Catcher",
		Movement: 8, Strength: 2, Agility: 3, Passing: 5, Armor: 8,
		MaxCount: 4, Cost: 65000,
		StartingSkills: []string{"Catch", "Dodge"},
	}
	HumanBlitzer = &model.Position{
		ID: 4, RaceID: 1, Name: "Blitzer",
		Movement: 7, Strength: 3, Agility: 3, Passing: 4, Armor: 9,
		MaxCount: 4, Cost: 85000,
		StartingSkills: []string{"Block"},
	}
	OrcLineman = &model.Position{
		ID: 5, RaceID: 2, Name: "Lineman",
		Movement: 5, Strength: 3, Agility: 3, Passing: 4, Armor: 10,
		MaxCount: 16, Cost: 50000,
	}
)

const (
	HumanRaceID int32 = 1
	OrcRaceID   int32 = 2
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// SeedCoach inserts a user to own test teams.
func (tdb *TestDB) SeedCoach(username string) (*model.User, error) {
	ctx, cancel := testContext()
	defer cancel()

	u := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Lang:     "en",
	}
	if err := tdb.DB.AddUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SeedTeam inserts a team for coachID with eleven linemen of the given
// race and returns it fully loaded.
func (tdb *TestDB) SeedTeam(coachID int32, name string, raceID int32) (*model.Team, error) {
	ctx, cancel := testContext()
	defer cancel()

	race, err := tdb.DB.GetRace(ctx, raceID)
	if err != nil {
		return nil, err
	}

	t := &model.Team{
		Name:     name,
		CoachID:  coachID,
		Race:     race,
		Treasury: 100000,
		Rerolls:  2,
		Active:   true,
	}
	if err := tdb.DB.AddTeam(ctx, t); err != nil {
		return nil, err
	}

	pos := HumanLineman
	if raceID == OrcRaceID {
		pos = OrcLineman
	}
	for n := 1; n <= 11; n++ {
		p := &model.Player{
			TeamID:   t.ID,
			Position: pos,
			Name:     fmt.Sprintf("%s #%d", pos.Name, n),
			Number:   n,
			Value:    pos.Cost,
		}
		if err := tdb.DB.AddPlayer(ctx, p); err != nil {
			return nil, err
		}
	}

	return tdb.DB.GetTeam(ctx, t.ID)
}

// SeedLeague inserts a league with an active season and registers the
// given teams, seeded in order.
func (tdb *TestDB) SeedLeague(name string, commissionerID int32, teamIDs ...int32) (*model.League, *model.Season, error) {
	ctx, cancel := testContext()
	defer cancel()

	l := &model.League{
		Name:             name,
		CommissionerID:   commissionerID,
		Format:           model.FormatRoundRobin,
		Scoring:          model.DefaultScoring,
		Status:           model.LeagueActive,
		MaxTeams:         16,
		MinTeams:         2,
		MinRosterSize:    11,
		MaxRosterSize:    16,
		AllowStarPlayers: true,
	}
	if err := tdb.DB.AddLeague(ctx, l); err != nil {
		return nil, nil, err
	}

	for i, id := range teamIDs {
		if err := tdb.DB.AddLeagueTeam(ctx, l.ID, id, i+1); err != nil {
			return nil, nil, err
		}
	}

	s := &model.Season{
		LeagueID: l.ID,
		Name:     "Season 1",
		Number:   1,
		Active:   true,
	}
	if err := tdb.DB.AddSeason(ctx, s); err != nil {
		return nil, nil, err
	}
	return l, s, nil
}

// SeedMatch inserts a scheduled league match between two teams.
func (tdb *TestDB) SeedMatch(leagueID, seasonID, homeTeamID, awayTeamID int32) (*model.Match, error) {
	ctx, cancel := testContext()
	defer cancel()

	m := &model.Match{
		LeagueID:    leagueID,
		SeasonID:    seasonID,
		HomeTeamID:  homeTeamID,
		AwayTeamID:  awayTeamID,
		RoundNumber: 1,
		Status:      model.MatchScheduled,
	}
	if err := tdb.DB.AddMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func testContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
