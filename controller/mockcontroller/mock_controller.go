package mockcontroller

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/manugarri/bb-league/controller"
	"github.com/manugarri/bb-league/model"
)

type C struct {
	mock.Mock
}

func (c *C) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	args := c.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (c *C) ListTeams(ctx context.Context) ([]model.Team, error) {
	args := c.Called(ctx)

	var teams []model.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]model.Team)
	}
	return teams, args.Error(1)
}

func (c *C) RecalculateTeamValue(ctx context.Context, teamID int32) (*model.Team, error) {
	args := c.Called(ctx, teamID)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (c *C) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (c *C) LevelUpPlayer(ctx context.Context, playerID int32, skillName string, stat model.StatAxis) (*model.Player, error) {
	args := c.Called(ctx, playerID, skillName, stat)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (c *C) CreateLeague(ctx context.Context, l *model.League) error {
	args := c.Called(ctx, l)
	return args.Error(0)
}

func (c *C) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := c.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := c.Called(ctx)

	var leagues []model.League
	if args.Get(0) != nil {
		leagues = args.Get(0).([]model.League)
	}
	return leagues, args.Error(1)
}

func (c *C) AddTeamToLeague(ctx context.Context, leagueID, teamID int32, seed int) error {
	args := c.Called(ctx, leagueID, teamID, seed)
	return args.Error(0)
}

func (c *C) StartSeason(ctx context.Context, leagueID int32, name string) (*model.Season, error) {
	args := c.Called(ctx, leagueID, name)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}
	return s, args.Error(1)
}

func (c *C) GetStandings(ctx context.Context, seasonID int32) ([]model.Standing, error) {
	args := c.Called(ctx, seasonID)

	var standings []model.Standing
	if args.Get(0) != nil {
		standings = args.Get(0).([]model.Standing)
	}
	return standings, args.Error(1)
}

func (c *C) GenerateSchedule(ctx context.Context, leagueID int32) ([]model.Match, error) {
	args := c.Called(ctx, leagueID)

	var matches []model.Match
	if args.Get(0) != nil {
		matches = args.Get(0).([]model.Match)
	}
	return matches, args.Error(1)
}

func (c *C) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	args := c.Called(ctx, id)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (c *C) ListSeasonMatches(ctx context.Context, seasonID int32) ([]model.Match, error) {
	args := c.Called(ctx, seasonID)

	var matches []model.Match
	if args.Get(0) != nil {
		matches = args.Get(0).([]model.Match)
	}
	return matches, args.Error(1)
}

func (c *C) ListTeamMatches(ctx context.Context, teamID int32) ([]model.Match, error) {
	args := c.Called(ctx, teamID)

	var matches []model.Match
	if args.Get(0) != nil {
		matches = args.Get(0).([]model.Match)
	}
	return matches, args.Error(1)
}

func (c *C) CreateFriendly(ctx context.Context, homeTeamID, awayTeamID int32) (*model.Match, error) {
	args := c.Called(ctx, homeTeamID, awayTeamID)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (c *C) RecordMatchResult(ctx context.Context, matchID int32, result *controller.MatchResult) (*model.Match, error) {
	args := c.Called(ctx, matchID, result)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (c *C) AmendMatchResult(ctx context.Context, matchID int32, amend *controller.MatchAmendment) (*model.Match, error) {
	args := c.Called(ctx, matchID, amend)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (c *C) GetMatchChanges(ctx context.Context, matchID int32) ([]model.Change, error) {
	args := c.Called(ctx, matchID)

	var changes []model.Change
	if args.Get(0) != nil {
		changes = args.Get(0).([]model.Change)
	}
	return changes, args.Error(1)
}

func (c *C) GetMatchPlayerStats(ctx context.Context, matchID int32) ([]model.MatchPlayerStats, error) {
	args := c.Called(ctx, matchID)

	var stats []model.MatchPlayerStats
	if args.Get(0) != nil {
		stats = args.Get(0).([]model.MatchPlayerStats)
	}
	return stats, args.Error(1)
}

func (c *C) PrematchOverview(ctx context.Context, matchID int32) (*controller.PrematchState, error) {
	args := c.Called(ctx, matchID)

	var state *controller.PrematchState
	if args.Get(0) != nil {
		state = args.Get(0).(*controller.PrematchState)
	}
	return state, args.Error(1)
}

func (c *C) AddInducement(ctx context.Context, matchID, teamID int32, inducementID string, quantity int, lang string) (*model.MatchInducement, error) {
	args := c.Called(ctx, matchID, teamID, inducementID, quantity, lang)

	var mi *model.MatchInducement
	if args.Get(0) != nil {
		mi = args.Get(0).(*model.MatchInducement)
	}
	return mi, args.Error(1)
}

func (c *C) HireStarPlayer(ctx context.Context, matchID, teamID, starPlayerID int32) (*model.MatchInducement, error) {
	args := c.Called(ctx, matchID, teamID, starPlayerID)

	var mi *model.MatchInducement
	if args.Get(0) != nil {
		mi = args.Get(0).(*model.MatchInducement)
	}
	return mi, args.Error(1)
}

func (c *C) RemoveInducement(ctx context.Context, matchID, teamID, entryID int32) error {
	args := c.Called(ctx, matchID, teamID, entryID)
	return args.Error(0)
}

func (c *C) SubmitInducements(ctx context.Context, matchID, teamID int32) error {
	args := c.Called(ctx, matchID, teamID)
	return args.Error(0)
}

func (c *C) SkipInducements(ctx context.Context, matchID, teamID int32) error {
	args := c.Called(ctx, matchID, teamID)
	return args.Error(0)
}

func (c *C) ListStarPlayers(ctx context.Context, raceID int32) ([]model.StarPlayer, error) {
	args := c.Called(ctx, raceID)

	var stars []model.StarPlayer
	if args.Get(0) != nil {
		stars = args.Get(0).([]model.StarPlayer)
	}
	return stars, args.Error(1)
}

func (c *C) PlaceBet(ctx context.Context, userID, matchID, teamID int32, kind model.BetKind, targetValue, amount int) (*model.Bet, error) {
	args := c.Called(ctx, userID, matchID, teamID, kind, targetValue, amount)

	var b *model.Bet
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Bet)
	}
	return b, args.Error(1)
}

func (c *C) PlaceAIBet(ctx context.Context, userID, matchID, teamID int32, description string, amount int) (*model.Bet, error) {
	args := c.Called(ctx, userID, matchID, teamID, description, amount)

	var b *model.Bet
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Bet)
	}
	return b, args.Error(1)
}

func (c *C) ResolveAIBet(ctx context.Context, betID int32, won bool) (*model.Bet, error) {
	args := c.Called(ctx, betID, won)

	var b *model.Bet
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Bet)
	}
	return b, args.Error(1)
}

func (c *C) GetBet(ctx context.Context, id int32) (*model.Bet, error) {
	args := c.Called(ctx, id)

	var b *model.Bet
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Bet)
	}
	return b, args.Error(1)
}

func (c *C) ListUserBets(ctx context.Context, userID int32) ([]model.Bet, error) {
	args := c.Called(ctx, userID)

	var bets []model.Bet
	if args.Get(0) != nil {
		bets = args.Get(0).([]model.Bet)
	}
	return bets, args.Error(1)
}

func (c *C) ListMatchBets(ctx context.Context, matchID int32) ([]model.Bet, error) {
	args := c.Called(ctx, matchID)

	var bets []model.Bet
	if args.Get(0) != nil {
		bets = args.Get(0).([]model.Bet)
	}
	return bets, args.Error(1)
}

func (c *C) ListNotifications(ctx context.Context, userID int32, unreadOnly bool) ([]model.BetNotification, error) {
	args := c.Called(ctx, userID, unreadOnly)

	var notifications []model.BetNotification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]model.BetNotification)
	}
	return notifications, args.Error(1)
}

func (c *C) MarkNotificationRead(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}
