package model

import (
	"fmt"
	"time"
)

// Race is the roster template a team is built from. SpecialRules gate and
// discount inducements; their order matters when resolving discounts.
type Race struct {
	ID                int32
	Name              string
	RerollCost        int
	ApothecaryAllowed bool
	SpecialRules      []string
	Tier              int
}

// HasSpecialRule reports whether the race carries the named special rule.
func (r *Race) HasSpecialRule(name string) bool {
	for _, rule := range r.SpecialRules {
		if rule == name {
			return true
		}
	}
	return false
}

// Fixed asset prices used in team valuation.
const (
	assistantCoachCost = 10000
	cheerleaderCost    = 10000
	apothecaryCost     = 50000
)

type Team struct {
	ID      int32
	Name    string
	CoachID int32
	Race    *Race

	Treasury         int
	Rerolls          int
	FanFactor        int
	AssistantCoaches int
	Cheerleaders     int
	HasApothecary    bool

	// CurrentTV is a cached snapshot of the last CalculateTV call. It is
	// never the source of truth: recompute before any budget decision.
	CurrentTV int

	GamesPlayed         int
	Wins                int
	Draws               int
	Losses              int
	TouchdownsFor       int
	TouchdownsAgainst   int
	CasualtiesInflicted int
	CasualtiesSuffered  int

	Active  bool
	Players []*Player
	// StarPlayers are permanently signed stars, priced into team value at
	// their fixed cost. Match-scoped star hires live in MatchInducement.
	StarPlayers []StarPlayer

	Created time.Time
	Updated time.Time
}

// CalculateTV recomputes the team value from current roster and assets.
// Every active player's value is recomputed (and stored on the player) as
// a side effect, so a CalculateTV call followed by a batch save keeps the
// cached values consistent.
func (t *Team) CalculateTV() int {
	tv := 0

	for _, p := range t.Players {
		if !p.Active {
			continue
		}
		tv += p.CalculateValue()
	}

	for _, s := range t.StarPlayers {
		tv += s.Cost
	}

	tv += t.Rerolls * t.Race.RerollCost
	tv += t.AssistantCoaches * assistantCoachCost
	tv += t.Cheerleaders * cheerleaderCost
	if t.HasApothecary {
		tv += apothecaryCost
	}

	t.CurrentTV = tv
	return tv
}

// ActivePlayers returns the roster minus dead and retired players.
func (t *Team) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// RecordString formats the team's career record as W-D-L.
func (t *Team) RecordString() string {
	return fmt.Sprintf("%d-%d-%d", t.Wins, t.Draws, t.Losses)
}

// PettyCash computes the inducement gold granted before a match. The
// lower-value side receives the full team-value gap; the higher side
// receives nothing. Both inputs must be freshly recomputed team values.
func PettyCash(homeTV, awayTV int) (home, away int) {
	switch {
	case homeTV < awayTV:
		return awayTV - homeTV, 0
	case awayTV < homeTV:
		return 0, homeTV - awayTV
	default:
		return 0, 0
	}
}
