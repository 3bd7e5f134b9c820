package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/model"
)

type DB struct {
	mock.Mock
}

func (m *DB) GetUser(ctx context.Context, id int32) (*model.User, error) {
	args := m.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (m *DB) AddUser(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *DB) GetRace(ctx context.Context, id int32) (*model.Race, error) {
	args := m.Called(ctx, id)

	var r *model.Race
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Race)
	}
	return r, args.Error(1)
}

func (m *DB) ListRaces(ctx context.Context) ([]model.Race, error) {
	args := m.Called(ctx)

	var r []model.Race
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Race)
	}
	return r, args.Error(1)
}

func (m *DB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	args := m.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (m *DB) ListTeams(ctx context.Context) ([]model.Team, error) {
	args := m.Called(ctx)

	var t []model.Team
	if args.Get(0) != nil {
		t = args.Get(0).([]model.Team)
	}
	return t, args.Error(1)
}

func (m *DB) AddTeam(ctx context.Context, t *model.Team) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *DB) SaveTeam(ctx context.Context, t *model.Team) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *DB) SaveTeamValues(ctx context.Context, t *model.Team) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *DB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	args := m.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (m *DB) AddPlayer(ctx context.Context, p *model.Player) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *DB) SavePlayer(ctx context.Context, p *model.Player) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *DB) AddPlayerSkill(ctx context.Context, playerID int32, skillName string) error {
	args := m.Called(ctx, playerID, skillName)
	return args.Error(0)
}

func (m *DB) GetSkill(ctx context.Context, name string) (*model.Skill, error) {
	args := m.Called(ctx, name)

	var s *model.Skill
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Skill)
	}
	return s, args.Error(1)
}

func (m *DB) GetStarPlayer(ctx context.Context, id int32) (*model.StarPlayer, error) {
	args := m.Called(ctx, id)

	var s *model.StarPlayer
	if args.Get(0) != nil {
		s = args.Get(0).(*model.StarPlayer)
	}
	return s, args.Error(1)
}

func (m *DB) ListStarPlayersForRace(ctx context.Context, raceID int32) ([]model.StarPlayer, error) {
	args := m.Called(ctx, raceID)

	var s []model.StarPlayer
	if args.Get(0) != nil {
		s = args.Get(0).([]model.StarPlayer)
	}
	return s, args.Error(1)
}

func (m *DB) AddLeague(ctx context.Context, l *model.League) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *DB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := m.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (m *DB) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := m.Called(ctx)

	var l []model.League
	if args.Get(0) != nil {
		l = args.Get(0).([]model.League)
	}
	return l, args.Error(1)
}

func (m *DB) AddLeagueTeam(ctx context.Context, leagueID, teamID int32, seed int) error {
	args := m.Called(ctx, leagueID, teamID, seed)
	return args.Error(0)
}

func (m *DB) ListLeagueTeams(ctx context.Context, leagueID int32) ([]model.LeagueTeam, error) {
	args := m.Called(ctx, leagueID)

	var lt []model.LeagueTeam
	if args.Get(0) != nil {
		lt = args.Get(0).([]model.LeagueTeam)
	}
	return lt, args.Error(1)
}

func (m *DB) AddSeason(ctx context.Context, s *model.Season) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *DB) GetSeason(ctx context.Context, id int32) (*model.Season, error) {
	args := m.Called(ctx, id)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}
	return s, args.Error(1)
}

func (m *DB) GetActiveSeason(ctx context.Context, leagueID int32) (*model.Season, error) {
	args := m.Called(ctx, leagueID)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}
	return s, args.Error(1)
}

func (m *DB) UpsertStanding(ctx context.Context, s *model.Standing) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *DB) ListStandings(ctx context.Context, seasonID int32) ([]model.Standing, error) {
	args := m.Called(ctx, seasonID)

	var s []model.Standing
	if args.Get(0) != nil {
		s = args.Get(0).([]model.Standing)
	}
	return s, args.Error(1)
}

func (m *DB) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	args := m.Called(ctx, id)

	var match *model.Match
	if args.Get(0) != nil {
		match = args.Get(0).(*model.Match)
	}
	return match, args.Error(1)
}

func (m *DB) AddMatch(ctx context.Context, match *model.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *DB) AddMatches(ctx context.Context, matches []model.Match) error {
	args := m.Called(ctx, matches)
	return args.Error(0)
}

func (m *DB) ListSeasonMatches(ctx context.Context, seasonID int32) ([]model.Match, error) {
	args := m.Called(ctx, seasonID)

	var matches []model.Match
	if args.Get(0) != nil {
		matches = args.Get(0).([]model.Match)
	}
	return matches, args.Error(1)
}

func (m *DB) ListTeamMatches(ctx context.Context, teamID int32) ([]model.Match, error) {
	args := m.Called(ctx, teamID)

	var matches []model.Match
	if args.Get(0) != nil {
		matches = args.Get(0).([]model.Match)
	}
	return matches, args.Error(1)
}

func (m *DB) SaveMatch(ctx context.Context, match *model.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *DB) CompleteMatch(ctx context.Context, res *db.CompletedMatch) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *DB) AmendMatch(ctx context.Context, match *model.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *DB) GetMatchChanges(ctx context.Context, matchID int32) ([]model.Change, error) {
	args := m.Called(ctx, matchID)

	var c []model.Change
	if args.Get(0) != nil {
		c = args.Get(0).([]model.Change)
	}
	return c, args.Error(1)
}

func (m *DB) ListMatchPlayerStats(ctx context.Context, matchID int32) ([]model.MatchPlayerStats, error) {
	args := m.Called(ctx, matchID)

	var s []model.MatchPlayerStats
	if args.Get(0) != nil {
		s = args.Get(0).([]model.MatchPlayerStats)
	}
	return s, args.Error(1)
}

func (m *DB) ListMatchInducements(ctx context.Context, matchID, teamID int32) ([]model.MatchInducement, error) {
	args := m.Called(ctx, matchID, teamID)

	var mi []model.MatchInducement
	if args.Get(0) != nil {
		mi = args.Get(0).([]model.MatchInducement)
	}
	return mi, args.Error(1)
}

func (m *DB) UpsertInducement(ctx context.Context, mi *model.MatchInducement) error {
	args := m.Called(ctx, mi)
	return args.Error(0)
}

func (m *DB) GetInducement(ctx context.Context, id int32) (*model.MatchInducement, error) {
	args := m.Called(ctx, id)

	var mi *model.MatchInducement
	if args.Get(0) != nil {
		mi = args.Get(0).(*model.MatchInducement)
	}
	return mi, args.Error(1)
}

func (m *DB) DeleteInducement(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DB) GetPreMatchSubmission(ctx context.Context, matchID, teamID int32) (*model.PreMatchSubmission, error) {
	args := m.Called(ctx, matchID, teamID)

	var s *model.PreMatchSubmission
	if args.Get(0) != nil {
		s = args.Get(0).(*model.PreMatchSubmission)
	}
	return s, args.Error(1)
}

func (m *DB) SubmitPreMatch(ctx context.Context, matchID, teamID int32, totalCost, treasuryDebit int) error {
	args := m.Called(ctx, matchID, teamID, totalCost, treasuryDebit)
	return args.Error(0)
}

func (m *DB) AddBet(ctx context.Context, b *model.Bet) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *DB) GetBet(ctx context.Context, id int32) (*model.Bet, error) {
	args := m.Called(ctx, id)

	var b *model.Bet
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Bet)
	}
	return b, args.Error(1)
}

func (m *DB) SaveBetEstimate(ctx context.Context, b *model.Bet) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *DB) ListMatchBets(ctx context.Context, matchID int32) ([]model.Bet, error) {
	args := m.Called(ctx, matchID)

	var b []model.Bet
	if args.Get(0) != nil {
		b = args.Get(0).([]model.Bet)
	}
	return b, args.Error(1)
}

func (m *DB) ListUserBets(ctx context.Context, userID int32) ([]model.Bet, error) {
	args := m.Called(ctx, userID)

	var b []model.Bet
	if args.Get(0) != nil {
		b = args.Get(0).([]model.Bet)
	}
	return b, args.Error(1)
}

func (m *DB) ResolveBet(ctx context.Context, b *model.Bet, n *model.BetNotification) error {
	args := m.Called(ctx, b, n)
	return args.Error(0)
}

func (m *DB) ListNotifications(ctx context.Context, userID int32, unreadOnly bool) ([]model.BetNotification, error) {
	args := m.Called(ctx, userID, unreadOnly)

	var n []model.BetNotification
	if args.Get(0) != nil {
		n = args.Get(0).([]model.BetNotification)
	}
	return n, args.Error(1)
}

func (m *DB) MarkNotificationRead(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
