package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/model"
)

// MatchResult is the full report submitted when a match finishes.
// Casualty totals are reported per side rather than derived from stat
// lines, since not every casualty is credited to a player.
type MatchResult struct {
	HomeScore int
	AwayScore int

	HomeCasualties int
	AwayCasualties int

	HomeWinnings int
	AwayWinnings int

	Notes string

	PlayerStats []model.MatchPlayerStats
}

// MatchAmendment corrects fields of a completed match. Nil fields are
// left untouched. Amendments are audited and never re-trigger standings
// or bet updates.
type MatchAmendment struct {
	HomeScore      *int
	AwayScore      *int
	HomeCasualties *int
	AwayCasualties *int
	HomeWinnings   *int
	AwayWinnings   *int
	Notes          *string
}

func (c *controller) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	return c.db.GetMatch(ctx, id)
}

func (c *controller) ListSeasonMatches(ctx context.Context, seasonID int32) ([]model.Match, error) {
	return c.db.ListSeasonMatches(ctx, seasonID)
}

func (c *controller) ListTeamMatches(ctx context.Context, teamID int32) ([]model.Match, error) {
	return c.db.ListTeamMatches(ctx, teamID)
}

func (c *controller) GetMatchChanges(ctx context.Context, matchID int32) ([]model.Change, error) {
	return c.db.GetMatchChanges(ctx, matchID)
}

func (c *controller) GetMatchPlayerStats(ctx context.Context, matchID int32) ([]model.MatchPlayerStats, error) {
	return c.db.ListMatchPlayerStats(ctx, matchID)
}

func (c *controller) CreateFriendly(ctx context.Context, homeTeamID, awayTeamID int32) (*model.Match, error) {
	if homeTeamID == awayTeamID {
		return nil, fmt.Errorf("a team cannot play itself")
	}
	if _, err := c.db.GetTeam(ctx, homeTeamID); err != nil {
		return nil, err
	}
	if _, err := c.db.GetTeam(ctx, awayTeamID); err != nil {
		return nil, err
	}

	m := &model.Match{
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Status:     model.MatchScheduled,
	}
	if err := c.db.AddMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *controller) RecordMatchResult(ctx context.Context, matchID int32, result *MatchResult) (*model.Match, error) {
	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted() {
		return nil, ErrMatchAlreadyCompleted
	}
	if m.Status == model.MatchCancelled {
		return nil, ErrMatchNotOpen
	}

	home, err := c.db.GetTeam(ctx, m.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := c.db.GetTeam(ctx, m.AwayTeamID)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()

	m.HomeScore = result.HomeScore
	m.AwayScore = result.AwayScore
	m.HomeCasualties = result.HomeCasualties
	m.AwayCasualties = result.AwayCasualties
	m.HomeWinnings = result.HomeWinnings
	m.AwayWinnings = result.AwayWinnings
	m.Notes = result.Notes
	m.Status = model.MatchCompleted
	m.Played = now

	players := make(map[int32]*model.Player)
	for _, t := range []*model.Team{home, away} {
		for _, p := range t.Players {
			players[p.ID] = p
			// Anyone flagged out sat this match out; the flag is spent.
			p.MissNextGame = false
		}
	}

	var injuries []model.Injury
	stats := make([]model.MatchPlayerStats, 0, len(result.PlayerStats))
	for _, s := range result.PlayerStats {
		p, ok := players[s.PlayerID]
		if !ok {
			return nil, fmt.Errorf("player %d does not play for either team", s.PlayerID)
		}

		s.MatchID = m.ID
		s.TeamID = p.TeamID
		p.AddSPP(s.CalculateSPP())

		p.GamesPlayed++
		p.Touchdowns += s.Touchdowns
		p.CasualtiesInflicted += s.CasualtiesInflicted
		p.Completions += s.Completions
		p.Interceptions += s.Interceptions
		p.Deflections += s.Deflections
		if s.IsMVP {
			p.MVPAwards++
		}

		if s.Injury != "" {
			if _, ok := model.ParseInjuryKind(string(s.Injury)); !ok {
				return nil, fmt.Errorf("unknown injury kind %q", s.Injury)
			}
			if inj := p.ApplyInjury(s.Injury, m.ID, now); inj != nil {
				injuries = append(injuries, *inj)
			}
		}

		stats = append(stats, s)
	}

	updateTeamRecord(home, true, m, result.HomeWinnings)
	updateTeamRecord(away, false, m, result.AwayWinnings)

	var standings []*model.Standing
	if !m.IsFriendly() {
		standings, err = c.updatedStandings(ctx, m)
		if err != nil {
			return nil, err
		}
	}

	bets, notifications, err := c.settleFixedBets(ctx, m, home, away, now)
	if err != nil {
		return nil, err
	}

	// Player values changed with SPP and injuries; refresh both sides.
	home.CalculateTV()
	away.CalculateTV()

	completed := &db.CompletedMatch{
		Match:         m,
		HomeTeam:      home,
		AwayTeam:      away,
		PlayerStats:   stats,
		Injuries:      injuries,
		Standings:     standings,
		Bets:          bets,
		Notifications: notifications,
	}
	if err := c.db.CompleteMatch(ctx, completed); err != nil {
		return nil, err
	}
	return m, nil
}

func updateTeamRecord(t *model.Team, isHome bool, m *model.Match, winnings int) {
	t.GamesPlayed++
	t.Treasury += winnings

	var tdsFor, tdsAgainst, casFor, casAgainst int
	if isHome {
		tdsFor, tdsAgainst = m.HomeScore, m.AwayScore
		casFor, casAgainst = m.HomeCasualties, m.AwayCasualties
	} else {
		tdsFor, tdsAgainst = m.AwayScore, m.HomeScore
		casFor, casAgainst = m.AwayCasualties, m.HomeCasualties
	}

	t.TouchdownsFor += tdsFor
	t.TouchdownsAgainst += tdsAgainst
	t.CasualtiesInflicted += casFor
	t.CasualtiesSuffered += casAgainst

	switch {
	case tdsFor > tdsAgainst:
		t.Wins++
	case tdsFor < tdsAgainst:
		t.Losses++
	default:
		t.Draws++
	}
}

// updatedStandings folds the match into both teams' season standings,
// creating rows for teams without one yet.
func (c *controller) updatedStandings(ctx context.Context, m *model.Match) ([]*model.Standing, error) {
	l, err := c.db.GetLeague(ctx, m.LeagueID)
	if err != nil {
		return nil, err
	}
	existing, err := c.db.ListStandings(ctx, m.SeasonID)
	if err != nil {
		return nil, err
	}

	find := func(teamID int32) *model.Standing {
		for i := range existing {
			if existing[i].TeamID == teamID {
				return &existing[i]
			}
		}
		return &model.Standing{SeasonID: m.SeasonID, TeamID: teamID}
	}

	homeStanding := find(m.HomeTeamID)
	awayStanding := find(m.AwayTeamID)
	homeStanding.UpdateFromMatch(true, m, l.Scoring)
	awayStanding.UpdateFromMatch(false, m, l.Scoring)

	return []*model.Standing{homeStanding, awayStanding}, nil
}

// settleFixedBets resolves the match's pending fixed-kind bets and builds
// their notifications. AI bets stay pending for human judgement.
func (c *controller) settleFixedBets(ctx context.Context, m *model.Match, home, away *model.Team, now time.Time) ([]*model.Bet, []model.BetNotification, error) {
	all, err := c.db.ListMatchBets(ctx, m.ID)
	if err != nil {
		return nil, nil, err
	}

	resultString := fmt.Sprintf("%s %d - %d %s", home.Name, m.HomeScore, m.AwayScore, away.Name)

	var resolved []*model.Bet
	var notifications []model.BetNotification
	for i := range all {
		b := &all[i]
		if b.IsAI() || b.Status != model.BetPending {
			continue
		}
		b.Resolve(m, now)

		n, err := c.betNotification(ctx, b, home, away, resultString)
		if err != nil {
			return nil, nil, err
		}

		resolved = append(resolved, b)
		notifications = append(notifications, *n)
	}
	return resolved, notifications, nil
}

func (c *controller) betNotification(ctx context.Context, b *model.Bet, home, away *model.Team, resultString string) (*model.BetNotification, error) {
	u, err := c.db.GetUser(ctx, b.UserID)
	if err != nil {
		return nil, err
	}

	teamName := home.Name
	if b.TeamID == away.ID {
		teamName = away.Name
	}

	return &model.BetNotification{
		UserID:  b.UserID,
		BetID:   b.ID,
		Message: model.NotificationMessage(b, b.Describe(teamName, u.Lang), resultString, u.Lang),
	}, nil
}

func (c *controller) AmendMatchResult(ctx context.Context, matchID int32, amend *MatchAmendment) (*model.Match, error) {
	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsCompleted() {
		return nil, ErrMatchNotCompleted
	}

	if amend.HomeScore != nil {
		m.HomeScore = *amend.HomeScore
	}
	if amend.AwayScore != nil {
		m.AwayScore = *amend.AwayScore
	}
	if amend.HomeCasualties != nil {
		m.HomeCasualties = *amend.HomeCasualties
	}
	if amend.AwayCasualties != nil {
		m.AwayCasualties = *amend.AwayCasualties
	}
	if amend.HomeWinnings != nil {
		m.HomeWinnings = *amend.HomeWinnings
	}
	if amend.AwayWinnings != nil {
		m.AwayWinnings = *amend.AwayWinnings
	}
	if amend.Notes != nil {
		m.Notes = *amend.Notes
	}

	if err := c.db.AmendMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
