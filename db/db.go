package db

import (
	"context"

	"github.com/manugarri/bb-league/model"
)

// CompletedMatch bundles everything a finished match changes. All of it
// is persisted in a single transaction so a crash can never leave the
// league half-updated.
type CompletedMatch struct {
	Match    *model.Match
	HomeTeam *model.Team
	AwayTeam *model.Team

	PlayerStats []model.MatchPlayerStats
	Injuries    []model.Injury

	// Standings is empty for friendlies.
	Standings []*model.Standing

	// Bets are the mechanically resolved fixed-kind bets; AI bets stay
	// pending and are absent here.
	Bets          []*model.Bet
	Notifications []model.BetNotification
}

type DB interface {
	GetUser(ctx context.Context, id int32) (*model.User, error)
	AddUser(ctx context.Context, u *model.User) error

	GetRace(ctx context.Context, id int32) (*model.Race, error)
	ListRaces(ctx context.Context) ([]model.Race, error)

	GetTeam(ctx context.Context, id int32) (*model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	AddTeam(ctx context.Context, t *model.Team) error
	SaveTeam(ctx context.Context, t *model.Team) error
	// SaveTeamValues persists a recomputed team value along with every
	// active player's recomputed value in one transaction.
	SaveTeamValues(ctx context.Context, t *model.Team) error

	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	AddPlayer(ctx context.Context, p *model.Player) error
	SavePlayer(ctx context.Context, p *model.Player) error
	AddPlayerSkill(ctx context.Context, playerID int32, skillName string) error
	GetSkill(ctx context.Context, name string) (*model.Skill, error)

	GetStarPlayer(ctx context.Context, id int32) (*model.StarPlayer, error)
	ListStarPlayersForRace(ctx context.Context, raceID int32) ([]model.StarPlayer, error)

	AddLeague(ctx context.Context, l *model.League) error
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	ListLeagues(ctx context.Context) ([]model.League, error)
	AddLeagueTeam(ctx context.Context, leagueID, teamID int32, seed int) error
	ListLeagueTeams(ctx context.Context, leagueID int32) ([]model.LeagueTeam, error)

	AddSeason(ctx context.Context, s *model.Season) error
	GetSeason(ctx context.Context, id int32) (*model.Season, error)
	GetActiveSeason(ctx context.Context, leagueID int32) (*model.Season, error)

	UpsertStanding(ctx context.Context, s *model.Standing) error
	// ListStandings returns the season standings joined with team names,
	// unsorted. Classification order is applied by the caller.
	ListStandings(ctx context.Context, seasonID int32) ([]model.Standing, error)

	GetMatch(ctx context.Context, id int32) (*model.Match, error)
	AddMatch(ctx context.Context, m *model.Match) error
	// AddMatches inserts a full schedule in one transaction.
	AddMatches(ctx context.Context, matches []model.Match) error
	ListSeasonMatches(ctx context.Context, seasonID int32) ([]model.Match, error)
	ListTeamMatches(ctx context.Context, teamID int32) ([]model.Match, error)
	SaveMatch(ctx context.Context, m *model.Match) error

	CompleteMatch(ctx context.Context, res *CompletedMatch) error
	// AmendMatch updates score and casualty fields of a completed match
	// and records an audit row per changed property. It never touches
	// standings or bets.
	AmendMatch(ctx context.Context, m *model.Match) error
	GetMatchChanges(ctx context.Context, matchID int32) ([]model.Change, error)
	ListMatchPlayerStats(ctx context.Context, matchID int32) ([]model.MatchPlayerStats, error)

	ListMatchInducements(ctx context.Context, matchID, teamID int32) ([]model.MatchInducement, error)
	UpsertInducement(ctx context.Context, mi *model.MatchInducement) error
	GetInducement(ctx context.Context, id int32) (*model.MatchInducement, error)
	DeleteInducement(ctx context.Context, id int32) error
	GetPreMatchSubmission(ctx context.Context, matchID, teamID int32) (*model.PreMatchSubmission, error)
	// SubmitPreMatch locks a team's inducement ledger: it upserts the
	// submission, debits the treasury, flips the team's ready flag and
	// moves the match to prematch when both sides are ready.
	SubmitPreMatch(ctx context.Context, matchID, teamID int32, totalCost, treasuryDebit int) error

	AddBet(ctx context.Context, b *model.Bet) error
	GetBet(ctx context.Context, id int32) (*model.Bet, error)
	SaveBetEstimate(ctx context.Context, b *model.Bet) error
	ListMatchBets(ctx context.Context, matchID int32) ([]model.Bet, error)
	ListUserBets(ctx context.Context, userID int32) ([]model.Bet, error)
	// ResolveBet persists a settled bet and its notification together.
	ResolveBet(ctx context.Context, b *model.Bet, n *model.BetNotification) error

	ListNotifications(ctx context.Context, userID int32, unreadOnly bool) ([]model.BetNotification, error)
	MarkNotificationRead(ctx context.Context, id int32) error
}
