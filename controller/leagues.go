package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/model"
)

func (c *controller) CreateLeague(ctx context.Context, l *model.League) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return errors.New("league name must be provided")
	}
	if l.Format == "" {
		l.Format = model.FormatRoundRobin
	}
	if l.Scoring.WinPoints == 0 && l.Scoring.DrawPoints == 0 {
		l.Scoring = model.DefaultScoring
	}
	if l.Status == "" {
		l.Status = model.LeagueRegistration
	}
	return c.db.AddLeague(ctx, l)
}

func (c *controller) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	return c.db.GetLeague(ctx, id)
}

func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	return c.db.ListLeagues(ctx)
}

func (c *controller) AddTeamToLeague(ctx context.Context, leagueID, teamID int32, seed int) error {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}

	teams, err := c.db.ListLeagueTeams(ctx, leagueID)
	if err != nil {
		return err
	}
	if len(teams) >= l.MaxTeams {
		return fmt.Errorf("league %s is full (%d teams)", l.Name, l.MaxTeams)
	}

	// Verify the team exists before linking it.
	if _, err := c.db.GetTeam(ctx, teamID); err != nil {
		return err
	}
	return c.db.AddLeagueTeam(ctx, leagueID, teamID, seed)
}

func (c *controller) StartSeason(ctx context.Context, leagueID int32, name string) (*model.Season, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := c.db.ListLeagueTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if len(teams) < l.MinTeams {
		return nil, ErrNotEnoughTeams
	}

	number := 1
	if prev, err := c.db.GetActiveSeason(ctx, leagueID); err == nil {
		number = prev.Number + 1
	} else if !errors.Is(err, db.ErrSeasonNotFound) {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Season %d", number)
	}

	s := &model.Season{
		LeagueID: leagueID,
		Name:     name,
		Number:   number,
		Active:   true,
	}
	if err := c.db.AddSeason(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetStandings returns the season table in classification order: points
// desc, touchdown differential desc, casualty differential desc, team ID
// asc. Ranks are assigned 1..n.
func (c *controller) GetStandings(ctx context.Context, seasonID int32) ([]model.Standing, error) {
	if _, err := c.db.GetSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	standings, err := c.db.ListStandings(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	model.SortStandings(standings)
	return standings, nil
}

// GenerateSchedule builds the season's matches for the league's format.
// Round robin emits the full season at once; swiss emits the next round
// paired from current standings; knockout emits the first bracket round.
func (c *controller) GenerateSchedule(ctx context.Context, leagueID int32) ([]model.Match, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	season, err := c.db.GetActiveSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	leagueTeams, err := c.db.ListLeagueTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if len(leagueTeams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	teamIDs := make([]int32, 0, len(leagueTeams))
	for _, lt := range leagueTeams {
		teamIDs = append(teamIDs, lt.TeamID)
	}

	var rounds [][]pairing
	firstRound := season.CurrentRound + 1
	switch l.Format {
	case model.FormatSwiss:
		standings, err := c.db.ListStandings(ctx, season.ID)
		if err != nil {
			return nil, err
		}
		played, err := c.playedPairs(ctx, season.ID)
		if err != nil {
			return nil, err
		}
		rounds = [][]pairing{swissPairings(teamIDs, standings, played)}
	case model.FormatKnockout:
		slices.SortFunc(leagueTeams, func(a, b model.LeagueTeam) int {
			if a.Seed != b.Seed {
				return a.Seed - b.Seed
			}
			return int(a.TeamID - b.TeamID)
		})
		seeded := make([]int32, 0, len(leagueTeams))
		for _, lt := range leagueTeams {
			seeded = append(seeded, lt.TeamID)
		}
		rounds = [][]pairing{knockoutBracket(seeded)}
	default:
		rounds = roundRobin(teamIDs)
		firstRound = 1
	}

	matches := make([]model.Match, 0, len(teamIDs)*len(rounds)/2)
	for i, round := range rounds {
		for _, p := range round {
			matches = append(matches, model.Match{
				LeagueID:    leagueID,
				SeasonID:    season.ID,
				HomeTeamID:  p.home,
				AwayTeamID:  p.away,
				RoundNumber: firstRound + i,
				Status:      model.MatchScheduled,
			})
		}
	}

	if err := c.db.AddMatches(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// playedPairs collects every pair of teams that already met this season,
// so swiss pairing can avoid rematches.
func (c *controller) playedPairs(ctx context.Context, seasonID int32) (map[[2]int32]bool, error) {
	matches, err := c.db.ListSeasonMatches(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	played := make(map[[2]int32]bool, len(matches))
	for _, m := range matches {
		played[pairKey(m.HomeTeamID, m.AwayTeamID)] = true
	}
	return played, nil
}
