package model

import (
	"slices"
	"time"
)

type LeagueFormat string

const (
	FormatRoundRobin LeagueFormat = "round_robin"
	FormatSwiss      LeagueFormat = "swiss"
	FormatKnockout   LeagueFormat = "knockout"
)

type LeagueStatus string

const (
	LeagueRegistration LeagueStatus = "registration"
	LeagueActive       LeagueStatus = "active"
	LeaguePlayoffs     LeagueStatus = "playoffs"
	LeagueCompleted    LeagueStatus = "completed"
)

// LeagueScoring holds the per-league point values awarded for each match
// result. These are configured per league, not fixed.
type LeagueScoring struct {
	WinPoints  int
	DrawPoints int
	LossPoints int
}

// DefaultScoring is the classic 3/1/0 table used when a league does not
// configure its own point values.
var DefaultScoring = LeagueScoring{WinPoints: 3, DrawPoints: 1, LossPoints: 0}

type League struct {
	ID             int32
	Name           string
	CommissionerID int32
	Description    string

	Format   LeagueFormat
	MaxTeams int
	MinTeams int

	MinRosterSize    int
	MaxRosterSize    int
	AllowStarPlayers bool

	Scoring LeagueScoring

	Status           LeagueStatus
	RegistrationOpen bool

	Created time.Time
	Updated time.Time
}

type Season struct {
	ID       int32
	LeagueID int32
	Name     string
	Number   int

	Active    bool
	Completed bool

	CurrentRound int
	TotalRounds  int

	Created time.Time
}

// LeagueTeam is a team's registration in a league, with a seed used for
// knockout brackets.
type LeagueTeam struct {
	LeagueID int32
	TeamID   int32

	Seed   int
	Joined time.Time
}

// Standing is a team's cumulative record within one season. Rows are
// created lazily the first time one of the team's matches resolves.
type Standing struct {
	ID       int32
	SeasonID int32
	TeamID   int32
	TeamName string

	Rank int

	Played int
	Wins   int
	Draws  int
	Losses int
	Points int

	TouchdownsFor       int
	TouchdownsAgainst   int
	CasualtiesInflicted int
	CasualtiesSuffered  int
}

func (s *Standing) TouchdownDiff() int {
	return s.TouchdownsFor - s.TouchdownsAgainst
}

func (s *Standing) CasualtyDiff() int {
	return s.CasualtiesInflicted - s.CasualtiesSuffered
}

// UpdateFromMatch folds one completed match into the standing from the
// given side's perspective. Win/draw/loss is classified by touchdowns
// only; casualties feed the tiebreaker stats.
func (s *Standing) UpdateFromMatch(isHome bool, m *Match, scoring LeagueScoring) {
	s.Played++

	var tdsFor, tdsAgainst, casFor, casAgainst int
	if isHome {
		tdsFor, tdsAgainst = m.HomeScore, m.AwayScore
		casFor, casAgainst = m.HomeCasualties, m.AwayCasualties
	} else {
		tdsFor, tdsAgainst = m.AwayScore, m.HomeScore
		casFor, casAgainst = m.AwayCasualties, m.HomeCasualties
	}

	s.TouchdownsFor += tdsFor
	s.TouchdownsAgainst += tdsAgainst
	s.CasualtiesInflicted += casFor
	s.CasualtiesSuffered += casAgainst

	switch {
	case tdsFor > tdsAgainst:
		s.Wins++
		s.Points += scoring.WinPoints
	case tdsFor < tdsAgainst:
		s.Losses++
		s.Points += scoring.LossPoints
	default:
		s.Draws++
		s.Points += scoring.DrawPoints
	}
}

// SortStandings orders standings for ranking: points desc, touchdown
// differential desc, casualty differential desc, then team ID asc so the
// order is total and deterministic. Rank values are assigned 1..n.
func SortStandings(standings []Standing) {
	slices.SortFunc(standings, func(a, b Standing) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		if a.TouchdownDiff() != b.TouchdownDiff() {
			return b.TouchdownDiff() - a.TouchdownDiff()
		}
		if a.CasualtyDiff() != b.CasualtyDiff() {
			return b.CasualtyDiff() - a.CasualtyDiff()
		}
		return int(a.TeamID - b.TeamID)
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
}
