package model

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchPrematch   MatchStatus = "prematch"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
)

// Match references two teams and, for league play, a season. Friendlies
// have LeagueID and SeasonID of zero. Score and casualty fields are only
// meaningful once the status is completed.
type Match struct {
	ID       int32
	LeagueID int32
	SeasonID int32

	HomeTeamID int32
	AwayTeamID int32

	RoundNumber int
	Scheduled   time.Time
	Played      time.Time

	HomeScore int
	AwayScore int

	HomeCasualties int
	AwayCasualties int

	HomeWinnings int
	AwayWinnings int

	HomePrematchReady bool
	AwayPrematchReady bool

	Status MatchStatus
	Notes  string

	Created time.Time
	Updated time.Time
}

func (m *Match) IsCompleted() bool {
	return m.Status == MatchCompleted
}

func (m *Match) IsFriendly() bool {
	return m.LeagueID == 0
}

// WinnerTeamID returns the winning team's ID, or 0 for a draw or an
// unfinished match.
func (m *Match) WinnerTeamID() int32 {
	if !m.IsCompleted() {
		return 0
	}
	switch {
	case m.HomeScore > m.AwayScore:
		return m.HomeTeamID
	case m.AwayScore > m.HomeScore:
		return m.AwayTeamID
	}
	return 0
}

func (m *Match) IsDraw() bool {
	return m.IsCompleted() && m.HomeScore == m.AwayScore
}

func (m *Match) ScoreString() string {
	return fmt.Sprintf("%d - %d", m.HomeScore, m.AwayScore)
}

// HasTeam reports whether the given team plays in this match.
func (m *Match) HasTeam(teamID int32) bool {
	return teamID == m.HomeTeamID || teamID == m.AwayTeamID
}

// SPP award schedule. MVP is a flat bonus, not per-event.
const (
	sppPerTouchdown    = 3
	sppPerCasualty     = 2
	sppPerCompletion   = 1
	sppPerInterception = 2
	sppPerDeflection   = 1
	sppPerMVP          = 4
)

// MatchPlayerStats is one player's performance line in one match.
type MatchPlayerStats struct {
	ID       int32
	MatchID  int32
	PlayerID int32
	TeamID   int32

	Touchdowns          int
	Completions         int
	Interceptions       int
	Deflections         int
	CasualtiesInflicted int
	CasualtiesSuffered  int

	IsMVP bool

	// Injury suffered this match, empty when unhurt.
	Injury InjuryKind

	SPPEarned int
}

// CalculateSPP computes the star player points earned from this stat line
// and stores the result on the stats record.
func (s *MatchPlayerStats) CalculateSPP() int {
	spp := 0
	spp += s.Touchdowns * sppPerTouchdown
	spp += s.CasualtiesInflicted * sppPerCasualty
	spp += s.Completions * sppPerCompletion
	spp += s.Interceptions * sppPerInterception
	spp += s.Deflections * sppPerDeflection
	if s.IsMVP {
		spp += sppPerMVP
	}

	s.SPPEarned = spp
	return spp
}

// Change is an audit entry recording a single property edit. Used for
// admin amendments of completed matches, which never re-trigger standings
// or bet updates.
type Change struct {
	Time         time.Time
	PropertyName string
	OldValue     string
	NewValue     string
}

func (c *Change) String() string {
	return fmt.Sprintf("%s changed from '%s' to '%s'", c.PropertyName, c.OldValue, c.NewValue)
}
