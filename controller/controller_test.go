package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/gamedata"
	"github.com/manugarri/bb-league/model"
	"github.com/manugarri/bb-league/testutils"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

func newIntegrationController(t *testing.T) C {
	t.Helper()
	catalog, err := gamedata.Load()
	if err != nil {
		t.Fatalf("error loading game data: %v", err)
	}
	ctrl, err := New(testDB.Clock, testDB.DB, nil, catalog)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return ctrl
}

func TestSeasonFlow(t *testing.T) {
	ctx := context.Background()
	ctrl := newIntegrationController(t)

	coach, err := testDB.SeedCoach("flow-coach")
	if err != nil {
		t.Fatalf("error seeding coach: %v", err)
	}

	teams := make([]*model.Team, 0, 4)
	for _, name := range []string{"Flow Reavers", "Flow Raiders", "Flow Gougers", "Flow Crushers"} {
		tm, err := testDB.SeedTeam(coach.ID, name, testutils.HumanRaceID)
		if err != nil {
			t.Fatalf("error seeding team %s: %v", name, err)
		}
		teams = append(teams, tm)
	}

	league := &model.League{Name: "Flow League", CommissionerID: coach.ID, MaxTeams: 8, MinTeams: 2}
	if err := ctrl.CreateLeague(ctx, league); err != nil {
		t.Fatalf("error creating league: %v", err)
	}
	if league.Format != model.FormatRoundRobin {
		t.Errorf("expected default format round_robin, got %s", league.Format)
	}

	for i, tm := range teams {
		if err := ctrl.AddTeamToLeague(ctx, league.ID, tm.ID, i+1); err != nil {
			t.Fatalf("error adding team %d to league: %v", tm.ID, err)
		}
	}

	season, err := ctrl.StartSeason(ctx, league.ID, "")
	if err != nil {
		t.Fatalf("error starting season: %v", err)
	}
	if season.Number != 1 || season.Name != "Season 1" || !season.Active {
		t.Errorf("unexpected season: %+v", season)
	}

	matches, err := ctrl.GenerateSchedule(ctx, league.ID)
	if err != nil {
		t.Fatalf("error generating schedule: %v", err)
	}
	if len(matches) != 6 {
		t.Fatalf("expected 6 matches for 4 teams, got %d", len(matches))
	}

	first := matches[0]
	home, err := ctrl.GetTeam(ctx, first.HomeTeamID)
	if err != nil {
		t.Fatalf("error loading home team: %v", err)
	}
	away, err := ctrl.GetTeam(ctx, first.AwayTeamID)
	if err != nil {
		t.Fatalf("error loading away team: %v", err)
	}
	scorer := home.Players[0]
	victim := away.Players[1]

	result := &MatchResult{
		HomeScore:      2,
		AwayScore:      1,
		HomeCasualties: 1,
		HomeWinnings:   30000,
		AwayWinnings:   10000,
		PlayerStats: []model.MatchPlayerStats{
			{PlayerID: scorer.ID, TeamID: home.ID, Touchdowns: 2, CasualtiesInflicted: 1, IsMVP: true},
			{PlayerID: victim.ID, TeamID: away.ID, Injury: model.InjuryMissNextGame},
		},
	}
	done, err := ctrl.RecordMatchResult(ctx, first.ID, result)
	if err != nil {
		t.Fatalf("error recording result: %v", err)
	}
	if done.Status != model.MatchCompleted {
		t.Errorf("expected completed, got %s", done.Status)
	}

	// Recording the same match twice is rejected.
	if _, err := ctrl.RecordMatchResult(ctx, first.ID, result); !errors.Is(err, ErrMatchAlreadyCompleted) {
		t.Errorf("expected ErrMatchAlreadyCompleted, got %v", err)
	}

	standings, err := ctrl.GetStandings(ctx, season.ID)
	if err != nil {
		t.Fatalf("error getting standings: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected standings for the 2 teams that played, got %d", len(standings))
	}
	if standings[0].TeamID != home.ID || standings[0].Points != 3 || standings[0].Rank != 1 {
		t.Errorf("unexpected leader: %+v", standings[0])
	}
	if standings[1].TeamID != away.ID || standings[1].Points != 0 {
		t.Errorf("unexpected runner up: %+v", standings[1])
	}

	gotScorer, err := ctrl.GetPlayer(ctx, scorer.ID)
	if err != nil {
		t.Fatalf("error loading scorer: %v", err)
	}
	// 2 touchdowns, 1 casualty and the MVP award.
	if gotScorer.SPP != 12 {
		t.Errorf("expected 12 SPP, got %d", gotScorer.SPP)
	}
	if gotScorer.Touchdowns != 2 || gotScorer.GamesPlayed != 1 {
		t.Errorf("unexpected career counters: %+v", gotScorer)
	}

	gotVictim, err := ctrl.GetPlayer(ctx, victim.ID)
	if err != nil {
		t.Fatalf("error loading victim: %v", err)
	}
	if !gotVictim.MissNextGame {
		t.Errorf("expected victim to miss the next game")
	}
	if len(gotVictim.Injuries) != 1 {
		t.Errorf("expected 1 injury record, got %d", len(gotVictim.Injuries))
	}

	gotHome, err := ctrl.GetTeam(ctx, home.ID)
	if err != nil {
		t.Fatalf("error reloading home team: %v", err)
	}
	if gotHome.Treasury != 130000 {
		t.Errorf("expected winnings banked, treasury %d", gotHome.Treasury)
	}
	if gotHome.Wins != 1 || gotHome.GamesPlayed != 1 {
		t.Errorf("unexpected team record: %+v", gotHome)
	}
}

func TestPrematchFlow(t *testing.T) {
	ctx := context.Background()
	ctrl := newIntegrationController(t)

	coach, err := testDB.SeedCoach("prematch-coach")
	if err != nil {
		t.Fatalf("error seeding coach: %v", err)
	}
	home, err := testDB.SeedTeam(coach.ID, "Prematch Harriers", testutils.HumanRaceID)
	if err != nil {
		t.Fatalf("error seeding team: %v", err)
	}
	away, err := testDB.SeedTeam(coach.ID, "Prematch Maulers", testutils.OrcRaceID)
	if err != nil {
		t.Fatalf("error seeding team: %v", err)
	}

	m, err := ctrl.CreateFriendly(ctx, home.ID, away.ID)
	if err != nil {
		t.Fatalf("error creating friendly: %v", err)
	}

	state, err := ctrl.PrematchOverview(ctx, m.ID)
	if err != nil {
		t.Fatalf("error getting prematch overview: %v", err)
	}
	// Identical rosters, no value gap, no petty cash.
	if state.Home.PettyCash != 0 || state.Away.PettyCash != 0 {
		t.Errorf("expected no petty cash, got %d/%d", state.Home.PettyCash, state.Away.PettyCash)
	}
	if len(state.Home.Available) == 0 {
		t.Errorf("expected an inducement catalog for the home side")
	}

	entry, err := ctrl.AddInducement(ctx, m.ID, home.ID, "weather_mage", 1, "en")
	if err != nil {
		t.Fatalf("error adding inducement: %v", err)
	}
	if entry.TotalCost != 30000 {
		t.Errorf("expected 30000 total cost, got %d", entry.TotalCost)
	}

	if err := ctrl.SubmitInducements(ctx, m.ID, home.ID); err != nil {
		t.Fatalf("error submitting inducements: %v", err)
	}
	gotHome, err := ctrl.GetTeam(ctx, home.ID)
	if err != nil {
		t.Fatalf("error reloading team: %v", err)
	}
	if gotHome.Treasury != 70000 {
		t.Errorf("expected treasury debited to 70000, got %d", gotHome.Treasury)
	}

	// Submitting locks the ledger.
	if _, err := ctrl.AddInducement(ctx, m.ID, home.ID, "bloodweiser_keg", 1, "en"); !errors.Is(err, ErrInducementsSubmitted) {
		t.Errorf("expected ErrInducementsSubmitted, got %v", err)
	}

	if err := ctrl.SkipInducements(ctx, m.ID, away.ID); err != nil {
		t.Fatalf("error skipping inducements: %v", err)
	}
	gotMatch, err := ctrl.GetMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("error reloading match: %v", err)
	}
	if gotMatch.Status != model.MatchPrematch {
		t.Errorf("expected prematch status, got %s", gotMatch.Status)
	}
}

func TestBetSettlement(t *testing.T) {
	ctx := context.Background()
	ctrl := newIntegrationController(t)

	coach, err := testDB.SeedCoach("bet-coach")
	if err != nil {
		t.Fatalf("error seeding coach: %v", err)
	}
	punter, err := testDB.SeedCoach("bet-punter")
	if err != nil {
		t.Fatalf("error seeding punter: %v", err)
	}
	home, err := testDB.SeedTeam(coach.ID, "Bet Bruisers", testutils.HumanRaceID)
	if err != nil {
		t.Fatalf("error seeding team: %v", err)
	}
	away, err := testDB.SeedTeam(coach.ID, "Bet Breakers", testutils.HumanRaceID)
	if err != nil {
		t.Fatalf("error seeding team: %v", err)
	}

	m, err := ctrl.CreateFriendly(ctx, home.ID, away.ID)
	if err != nil {
		t.Fatalf("error creating friendly: %v", err)
	}

	bet, err := ctrl.PlaceBet(ctx, punter.ID, m.ID, home.ID, model.BetWin, 0, 10000)
	if err != nil {
		t.Fatalf("error placing bet: %v", err)
	}
	if bet.Status != model.BetPending {
		t.Errorf("expected pending bet, got %s", bet.Status)
	}

	// One bet per punter per match.
	if _, err := ctrl.PlaceBet(ctx, punter.ID, m.ID, away.ID, model.BetWin, 0, 5000); !errors.Is(err, db.ErrDuplicateBet) {
		t.Errorf("expected ErrDuplicateBet, got %v", err)
	}

	result := &MatchResult{HomeScore: 1, AwayScore: 0, HomeWinnings: 10000, AwayWinnings: 10000}
	if _, err := ctrl.RecordMatchResult(ctx, m.ID, result); err != nil {
		t.Fatalf("error recording result: %v", err)
	}

	gotBet, err := ctrl.GetBet(ctx, bet.ID)
	if err != nil {
		t.Fatalf("error reloading bet: %v", err)
	}
	if gotBet.Status != model.BetWon {
		t.Errorf("expected won bet, got %s", gotBet.Status)
	}
	if gotBet.Payout != 20000 {
		t.Errorf("expected 20000 payout, got %d", gotBet.Payout)
	}

	notifications, err := ctrl.ListNotifications(ctx, punter.ID, true)
	if err != nil {
		t.Fatalf("error listing notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if err := ctrl.MarkNotificationRead(ctx, notifications[0].ID); err != nil {
		t.Fatalf("error marking notification read: %v", err)
	}
	notifications, err = ctrl.ListNotifications(ctx, punter.ID, true)
	if err != nil {
		t.Fatalf("error listing notifications: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("expected no unread notifications, got %d", len(notifications))
	}
}

func TestAIBetWithoutEstimator(t *testing.T) {
	ctx := context.Background()
	ctrl := newIntegrationController(t)

	coach, err := testDB.SeedCoach("ai-coach")
	if err != nil {
		t.Fatalf("error seeding coach: %v", err)
	}
	punter, err := testDB.SeedCoach("ai-punter")
	if err != nil {
		t.Fatalf("error seeding punter: %v", err)
	}
	home, err := testDB.SeedTeam(coach.ID, "AI Hurlers", testutils.HumanRaceID)
	if err != nil {
		t.Fatalf("error seeding team: %v", err)
	}
	away, err := testDB.SeedTeam(coach.ID, "AI Grinders", testutils.HumanRaceID)
	if err != nil {
		t.Fatalf("error seeding team: %v", err)
	}

	m, err := ctrl.CreateFriendly(ctx, home.ID, away.ID)
	if err != nil {
		t.Fatalf("error creating friendly: %v", err)
	}

	bet, err := ctrl.PlaceAIBet(ctx, punter.ID, m.ID, home.ID, "a lineman scores the winning touchdown", 5000)
	if err != nil {
		t.Fatalf("error placing ai bet: %v", err)
	}
	if bet.Estimate == nil || bet.Estimate.Multiplier != model.DefaultAIMultiplier {
		t.Fatalf("expected the default multiplier without an estimator, got %+v", bet.Estimate)
	}

	// AI bets stay pending through the result pipeline.
	result := &MatchResult{HomeScore: 2, AwayScore: 0}
	if _, err := ctrl.RecordMatchResult(ctx, m.ID, result); err != nil {
		t.Fatalf("error recording result: %v", err)
	}
	gotBet, err := ctrl.GetBet(ctx, bet.ID)
	if err != nil {
		t.Fatalf("error reloading bet: %v", err)
	}
	if gotBet.Status != model.BetPending {
		t.Fatalf("expected ai bet to stay pending, got %s", gotBet.Status)
	}

	// A human judgement settles it.
	settled, err := ctrl.ResolveAIBet(ctx, bet.ID, true)
	if err != nil {
		t.Fatalf("error resolving ai bet: %v", err)
	}
	if settled.Status != model.BetWon || settled.Payout != 10000 {
		t.Errorf("unexpected settlement: %+v", settled)
	}
}

func TestLevelUpPlayer_persisted(t *testing.T) {
	ctx := context.Background()
	ctrl := newIntegrationController(t)

	coach, err := testDB.SeedCoach("levelup-coach")
	if err != nil {
		t.Fatalf("error seeding coach: %v", err)
	}
	team, err := testDB.SeedTeam(coach.ID, "Levelup Leapers", testutils.HumanRaceID)
	if err != nil {
		t.Fatalf("error seeding team: %v", err)
	}

	p := team.Players[0]
	p.SPP = 6
	if err := testDB.DB.SavePlayer(ctx, p); err != nil {
		t.Fatalf("error saving player: %v", err)
	}

	leveled, err := ctrl.LevelUpPlayer(ctx, p.ID, "Dodge", "")
	if err != nil {
		t.Fatalf("error leveling up player: %v", err)
	}
	if leveled.Level != 2 {
		t.Errorf("expected level 2, got %d", leveled.Level)
	}

	got, err := ctrl.GetPlayer(ctx, p.ID)
	if err != nil {
		t.Fatalf("error reloading player: %v", err)
	}
	if len(got.Skills) != 1 || got.Skills[0].Name != "Dodge" {
		t.Errorf("expected Dodge to be persisted, got %+v", got.Skills)
	}
	if got.Level != 2 {
		t.Errorf("expected level 2 persisted, got %d", got.Level)
	}
}
