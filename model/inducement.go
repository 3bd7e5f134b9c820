package model

import (
	"time"
)

// StarPlayerInducementID marks the star player entries in the per-match
// inducement ledger; regular entries reference the gamedata catalog.
const StarPlayerInducementID = "star_player"

// MaxStarPlayersPerMatch caps star hires per team per match.
const MaxStarPlayersPerMatch = 2

// MatchInducement is one purchased inducement line for one team in one
// match. Rows are keyed by (match, team, inducement id) except star
// players, which get one row per hire.
type MatchInducement struct {
	ID      int32
	MatchID int32
	TeamID  int32

	InducementID string
	Name         string
	Quantity     int
	CostPerUnit  int
	TotalCost    int

	// StarPlayerID is set only for star player hires.
	StarPlayerID int32

	Created time.Time
}

func (mi *MatchInducement) IsStarPlayer() bool {
	return mi.InducementID == StarPlayerInducementID
}

// PreMatchSubmission is the per-(match, team) negotiation lock. Once a
// side submits, its inducement ledger is frozen.
type PreMatchSubmission struct {
	ID      int32
	MatchID int32
	TeamID  int32

	Submitted   bool
	SubmittedAt time.Time

	TotalCost int
	Notes     string

	Created time.Time
	Updated time.Time
}

// TotalInducementCost sums the committed cost of a team's ledger.
func TotalInducementCost(inducements []MatchInducement) int {
	total := 0
	for _, ind := range inducements {
		total += ind.TotalCost
	}
	return total
}

// TreasuryDebit computes how much of the inducement bill is not covered
// by petty cash and must come out of the treasury, floored at zero.
func TreasuryDebit(totalCost, pettyCash int) int {
	debit := totalCost - pettyCash
	if debit < 0 {
		return 0
	}
	return debit
}
