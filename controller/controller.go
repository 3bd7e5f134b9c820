package controller

import (
	"context"
	"errors"

	"github.com/itbasis/go-clock"

	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/estimator"
	"github.com/manugarri/bb-league/gamedata"
	"github.com/manugarri/bb-league/model"
)

// Validation rejections surfaced to users. Handlers map these to 4xx.
var (
	ErrMatchAlreadyCompleted = errors.New("match is already completed")
	ErrMatchNotCompleted     = errors.New("match is not completed")
	ErrMatchNotOpen          = errors.New("match can no longer be modified")
	ErrTeamNotInMatch        = errors.New("team is not playing in this match")
	ErrInducementsSubmitted  = errors.New("inducements have already been submitted")
	ErrUnknownInducement     = errors.New("inducement is not available to this team")
	ErrQuantityExceeded      = errors.New("inducement quantity limit exceeded")
	ErrBudgetExceeded        = errors.New("not enough gold for this inducement")
	ErrInsufficientTreasury  = errors.New("treasury cannot cover the inducement bill")
	ErrStarPlayerLimit       = errors.New("star player limit reached for this match")
	ErrStarPlayerDuplicate   = errors.New("star player already hired for this match")
	ErrStarPlayerIneligible  = errors.New("star player is not available to this race")
	ErrBetAmountInvalid      = errors.New("bet amount must be between 1 and 50000")
	ErrBetTargetRequired     = errors.New("this bet kind requires a target value")
	ErrBetDescriptionNeeded  = errors.New("an ai bet requires a prediction text")
	ErrBetNotAI              = errors.New("bet is not an ai bet")
	ErrNotEligibleForLevelUp = errors.New("player has not earned enough spp to level up")
	ErrNotEnoughTeams        = errors.New("league does not have enough teams to schedule")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	GetTeam(ctx context.Context, id int32) (*model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	// RecalculateTeamValue recomputes and persists the team's value and
	// every active player's value. Call before any budget decision.
	RecalculateTeamValue(ctx context.Context, teamID int32) (*model.Team, error)
	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	// LevelUpPlayer promotes an eligible player, granting either a new
	// skill (skillName set) or a permanent +1 to a stat axis.
	LevelUpPlayer(ctx context.Context, playerID int32, skillName string, stat model.StatAxis) (*model.Player, error)

	CreateLeague(ctx context.Context, l *model.League) error
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	ListLeagues(ctx context.Context) ([]model.League, error)
	AddTeamToLeague(ctx context.Context, leagueID, teamID int32, seed int) error
	StartSeason(ctx context.Context, leagueID int32, name string) (*model.Season, error)
	// GetStandings returns the season table in classification order with
	// ranks assigned.
	GetStandings(ctx context.Context, seasonID int32) ([]model.Standing, error)
	// GenerateSchedule creates the season's matches according to the
	// league format. Round robin builds the full season; swiss builds
	// one round from current standings; knockout builds the first
	// bracket round from seeds.
	GenerateSchedule(ctx context.Context, leagueID int32) ([]model.Match, error)

	GetMatch(ctx context.Context, id int32) (*model.Match, error)
	ListSeasonMatches(ctx context.Context, seasonID int32) ([]model.Match, error)
	ListTeamMatches(ctx context.Context, teamID int32) ([]model.Match, error)
	CreateFriendly(ctx context.Context, homeTeamID, awayTeamID int32) (*model.Match, error)
	// RecordMatchResult runs the full result pipeline: stats, SPP,
	// injuries, career and standings updates, fixed bet resolution and
	// treasury winnings, all persisted atomically. Completed matches are
	// rejected; use AmendMatchResult for corrections.
	RecordMatchResult(ctx context.Context, matchID int32, result *MatchResult) (*model.Match, error)
	// AmendMatchResult is the audited admin correction path. It never
	// re-triggers standings or bet updates.
	AmendMatchResult(ctx context.Context, matchID int32, amend *MatchAmendment) (*model.Match, error)
	GetMatchChanges(ctx context.Context, matchID int32) ([]model.Change, error)
	GetMatchPlayerStats(ctx context.Context, matchID int32) ([]model.MatchPlayerStats, error)

	PrematchOverview(ctx context.Context, matchID int32) (*PrematchState, error)
	AddInducement(ctx context.Context, matchID, teamID int32, inducementID string, quantity int, lang string) (*model.MatchInducement, error)
	HireStarPlayer(ctx context.Context, matchID, teamID, starPlayerID int32) (*model.MatchInducement, error)
	RemoveInducement(ctx context.Context, matchID, teamID, entryID int32) error
	SubmitInducements(ctx context.Context, matchID, teamID int32) error
	// SkipInducements submits with an empty ledger.
	SkipInducements(ctx context.Context, matchID, teamID int32) error
	ListStarPlayers(ctx context.Context, raceID int32) ([]model.StarPlayer, error)

	PlaceBet(ctx context.Context, userID, matchID, teamID int32, kind model.BetKind, targetValue, amount int) (*model.Bet, error)
	// PlaceAIBet prices the wager through the estimation service. The
	// service failing is absorbed: the bet is placed with the default
	// multiplier and a rationale stating the estimate was unavailable.
	PlaceAIBet(ctx context.Context, userID, matchID, teamID int32, description string, amount int) (*model.Bet, error)
	// ResolveAIBet settles an ai bet from a human judgement. Idempotent.
	ResolveAIBet(ctx context.Context, betID int32, won bool) (*model.Bet, error)
	GetBet(ctx context.Context, id int32) (*model.Bet, error)
	ListUserBets(ctx context.Context, userID int32) ([]model.Bet, error)
	ListMatchBets(ctx context.Context, matchID int32) ([]model.Bet, error)
	ListNotifications(ctx context.Context, userID int32, unreadOnly bool) ([]model.BetNotification, error)
	MarkNotificationRead(ctx context.Context, id int32) error
}

type controller struct {
	clock     clock.Clock
	db        db.DB
	estimator estimator.Client
	catalog   *gamedata.Catalog
}

func New(clock clock.Clock, db db.DB, estimator estimator.Client, catalog *gamedata.Catalog) (C, error) {
	c := &controller{
		clock:     clock,
		db:        db,
		estimator: estimator,
		catalog:   catalog,
	}
	return c, nil
}
