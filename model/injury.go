package model

import (
	"time"
)

// InjuryKind is the closed set of casualty outcomes a player can suffer.
type InjuryKind string

const (
	InjuryBadlyHurt    InjuryKind = "badly_hurt"
	InjuryMissNextGame InjuryKind = "miss_next_game"
	InjuryNiggling     InjuryKind = "niggling"
	InjuryMovementBust InjuryKind = "-1ma"
	InjuryStrengthBust InjuryKind = "-1st"
	InjuryAgilityBust  InjuryKind = "-1ag"
	InjuryPassingBust  InjuryKind = "-1pa"
	InjuryArmorBust    InjuryKind = "-1av"
	InjuryDead         InjuryKind = "dead"
)

// injuryEffect describes what an injury kind does to a player.
type injuryEffect struct {
	missNextGame bool
	niggling     bool
	statAxis     StatAxis // empty when no stat is affected
	fatal        bool
	permanent    bool
}

var injuryEffects = map[InjuryKind]injuryEffect{
	InjuryBadlyHurt:    {},
	InjuryMissNextGame: {missNextGame: true},
	InjuryNiggling:     {niggling: true, permanent: true},
	InjuryMovementBust: {statAxis: StatMovement, permanent: true},
	InjuryStrengthBust: {statAxis: StatStrength, permanent: true},
	InjuryAgilityBust:  {statAxis: StatAgility, permanent: true},
	InjuryPassingBust:  {statAxis: StatPassing, permanent: true},
	InjuryArmorBust:    {statAxis: StatArmor, permanent: true},
	InjuryDead:         {fatal: true, permanent: true},
}

// ParseInjuryKind validates a raw injury string against the closed set.
func ParseInjuryKind(s string) (InjuryKind, bool) {
	k := InjuryKind(s)
	_, ok := injuryEffects[k]
	return k, ok
}

// Injury is an immutable record of a casualty suffered in a match.
type Injury struct {
	ID        int32
	PlayerID  int32
	MatchID   int32
	Kind      InjuryKind
	Permanent bool
	Occurred  time.Time
}

// ApplyInjury mutates the player according to the injury kind and returns
// the history record to persist. Badly hurt has no lasting effect and
// returns nil. Stat decrements are skipped when the effective stat is
// already at the floor of 1.
func (p *Player) ApplyInjury(kind InjuryKind, matchID int32, now time.Time) *Injury {
	eff, ok := injuryEffects[kind]
	if !ok {
		return nil
	}

	switch {
	case eff.fatal:
		p.Active = false
		p.Dead = true
	case eff.missNextGame:
		p.MissNextGame = true
	case eff.niggling:
		p.NigglingInjuries++
	case eff.statAxis != "":
		if p.Stat(eff.statAxis) > statFloor {
			*p.statMod(eff.statAxis)--
		}
	default:
		// badly hurt: nothing to record
		return nil
	}

	injury := Injury{
		PlayerID:  p.ID,
		MatchID:   matchID,
		Kind:      kind,
		Permanent: eff.permanent,
		Occurred:  now,
	}
	p.Injuries = append(p.Injuries, injury)
	return &injury
}
