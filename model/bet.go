package model

import (
	"fmt"
	"time"
)

type BetKind string

const (
	// BetWin pays out when the targeted team outscores its opponent.
	BetWin BetKind = "win"
	// BetTouchdowns pays out on an exact touchdown count.
	BetTouchdowns BetKind = "touchdowns"
	// BetCasualties pays out on an exact casualties-inflicted count.
	BetCasualties BetKind = "casualties"
	// BetAI is a free-text wager whose multiplier is estimated externally
	// and whose outcome is confirmed by a human after the match.
	BetAI BetKind = "ai"
)

type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// FixedMultipliers is the closed payout table for non-AI bet kinds.
var FixedMultipliers = map[BetKind]int{
	BetWin:        2,
	BetTouchdowns: 5,
	BetCasualties: 7,
}

const MaxBetAmount = 50000

// Multiplier bounds and fallback for AI-estimated bets.
const (
	MinAIMultiplier     = 1.01
	MaxAIMultiplier     = 100.0
	DefaultAIMultiplier = 2.0
)

// MultiplierEstimate is the externally estimated payout multiplier for an
// AI bet, cached once computed.
type MultiplierEstimate struct {
	Multiplier float64
	Confidence float64
	Rationale  string
}

// ClampAIMultiplier bounds a raw multiplier to the allowed range.
func ClampAIMultiplier(m float64) float64 {
	if m < MinAIMultiplier {
		return MinAIMultiplier
	}
	if m > MaxAIMultiplier {
		return MaxAIMultiplier
	}
	return m
}

// Bet is a wager on a match. Exactly one bet per (user, match) is
// allowed. Fixed kinds resolve mechanically from match fields; the AI
// kind carries an Estimate and a free-text Description and resolves only
// through explicit human confirmation.
type Bet struct {
	ID      int32
	UserID  int32
	MatchID int32
	TeamID  int32

	Kind BetKind
	// TargetValue is the exact count predicted for touchdown/casualty
	// bets. Ignored for win and AI bets.
	TargetValue int
	// Description is the free-text prediction of an AI bet.
	Description string
	Amount      int

	Status BetStatus
	Payout int

	Estimate *MultiplierEstimate

	Placed   time.Time
	Resolved time.Time
}

func (b *Bet) IsAI() bool {
	return b.Kind == BetAI
}

// Multiplier returns the payout multiplier for this bet. AI bets without
// a cached estimate fall back to the default.
func (b *Bet) Multiplier() float64 {
	if b.IsAI() {
		if b.Estimate != nil {
			return b.Estimate.Multiplier
		}
		return DefaultAIMultiplier
	}
	if m, ok := FixedMultipliers[b.Kind]; ok {
		return float64(m)
	}
	return 1
}

// PotentialPayout is the amount returned to the user if the bet wins.
func (b *Bet) PotentialPayout() int {
	return int(float64(b.Amount) * b.Multiplier())
}

// Resolve settles a fixed-kind bet against a completed match. Resolution
// is idempotent: a bet that already left pending returns its decided
// outcome without recomputation. AI bets are never resolved here; use
// ResolveManual once a human has judged the prediction.
func (b *Bet) Resolve(m *Match, now time.Time) bool {
	if b.Status != BetPending {
		return b.Status == BetWon
	}
	if b.IsAI() {
		return false
	}

	isHome := b.TeamID == m.HomeTeamID

	won := false
	switch b.Kind {
	case BetWin:
		if isHome {
			won = m.HomeScore > m.AwayScore
		} else {
			won = m.AwayScore > m.HomeScore
		}
	case BetTouchdowns:
		if isHome {
			won = m.HomeScore == b.TargetValue
		} else {
			won = m.AwayScore == b.TargetValue
		}
	case BetCasualties:
		if isHome {
			won = m.HomeCasualties == b.TargetValue
		} else {
			won = m.AwayCasualties == b.TargetValue
		}
	}

	b.settle(won, now)
	return won
}

// ResolveManual settles an AI bet from a human won/lost judgement.
// Idempotent in the same way as Resolve.
func (b *Bet) ResolveManual(won bool, now time.Time) bool {
	if b.Status != BetPending {
		return b.Status == BetWon
	}
	b.settle(won, now)
	return won
}

func (b *Bet) settle(won bool, now time.Time) {
	b.Resolved = now
	if won {
		b.Status = BetWon
		b.Payout = b.PotentialPayout()
	} else {
		b.Status = BetLost
		b.Payout = 0
	}
}

// Description of the wager for notifications. Language is an explicit
// parameter; only "es" and "en" are supported, anything else falls back
// to English.
func (b *Bet) Describe(teamName, lang string) string {
	if lang == "es" {
		switch b.Kind {
		case BetWin:
			return fmt.Sprintf("%s gana el partido", teamName)
		case BetTouchdowns:
			return fmt.Sprintf("%s anota exactamente %d touchdown(s)", teamName, b.TargetValue)
		case BetCasualties:
			return fmt.Sprintf("%s causa exactamente %d baja(s)", teamName, b.TargetValue)
		case BetAI:
			return b.Description
		}
		return "Apuesta desconocida"
	}

	switch b.Kind {
	case BetWin:
		return fmt.Sprintf("%s wins the match", teamName)
	case BetTouchdowns:
		return fmt.Sprintf("%s scores exactly %d touchdown(s)", teamName, b.TargetValue)
	case BetCasualties:
		return fmt.Sprintf("%s inflicts exactly %d casualty(ies)", teamName, b.TargetValue)
	case BetAI:
		return b.Description
	}
	return "Unknown bet"
}

// BetNotification records the outcome summary for a settled bet.
// Delivery and read state are a simple flag; nothing more is in scope.
type BetNotification struct {
	ID     int32
	UserID int32
	BetID  int32

	Message string
	Read    bool

	Created time.Time
	ReadAt  time.Time
}

// NotificationMessage formats the outcome summary for a settled bet.
func NotificationMessage(b *Bet, betDescription, matchResult, lang string) string {
	if lang == "es" {
		if b.Status == BetWon {
			return fmt.Sprintf("¡Ganaste tu apuesta! %s (%s). Apostaste %dg y ganaste %dg.",
				betDescription, matchResult, b.Amount, b.Payout)
		}
		return fmt.Sprintf("Perdiste tu apuesta. %s (%s). Perdiste %dg.",
			betDescription, matchResult, b.Amount)
	}

	if b.Status == BetWon {
		return fmt.Sprintf("You won your bet! %s (%s). You bet %dg and won %dg.",
			betDescription, matchResult, b.Amount, b.Payout)
	}
	return fmt.Sprintf("You lost your bet. %s (%s). You lost %dg.",
		betDescription, matchResult, b.Amount)
}
