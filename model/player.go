package model

import (
	"time"
)

// StatAxis identifies one of the five player statistics.
type StatAxis string

const (
	StatMovement StatAxis = "movement"
	StatStrength StatAxis = "strength"
	StatAgility  StatAxis = "agility"
	StatPassing  StatAxis = "passing"
	StatArmor    StatAxis = "armor"
)

// Effective stats never drop below 1 no matter how many injuries a
// player accumulates.
const statFloor = 1

// Position is the read-only base-stat template a player is hired from.
type Position struct {
	ID     int32
	RaceID int32
	Name   string

	Movement int
	Strength int
	Agility  int
	Passing  int
	Armor    int

	MaxCount int
	MinCount int
	Cost     int

	StartingSkills []string
}

type SkillCategory string

const (
	SkillGeneral  SkillCategory = "General"
	SkillAgility  SkillCategory = "Agility"
	SkillStrength SkillCategory = "Strength"
	SkillPassing  SkillCategory = "Passing"
	SkillMutation SkillCategory = "Mutation"
)

// Skill is a catalog entry from the skills table.
type Skill struct {
	ID       int32
	Name     string
	Category SkillCategory
}

// PlayerSkill is a skill attached to a player. Starting skills come free
// with the position template and never count toward player value; learned
// skills are priced in.
type PlayerSkill struct {
	ID         int32
	SkillID    int32
	Name       string
	Category   SkillCategory
	IsStarting bool
	Acquired   time.Time
}

// Player stats are stored as signed modifiers relative to the position
// base stats. Injuries push a modifier down, permanent stat increases push
// it up. The effective stat is base+mod, floored at 1.
type Player struct {
	ID     int32
	TeamID int32
	Name   string
	Number int

	Position *Position

	MovementMod int
	StrengthMod int
	AgilityMod  int
	PassingMod  int
	ArmorMod    int

	SPP   int
	Level int

	GamesPlayed         int
	Touchdowns          int
	CasualtiesInflicted int
	Completions         int
	Interceptions       int
	Deflections         int
	MVPAwards           int

	Active           bool
	Dead             bool
	MissNextGame     bool
	NigglingInjuries int

	Value int

	Skills   []PlayerSkill
	Injuries []Injury

	Hired   time.Time
	Updated time.Time
}

func effectiveStat(base, mod int) int {
	v := base + mod
	if v < statFloor {
		return statFloor
	}
	return v
}

func (p *Player) Movement() int { return effectiveStat(p.Position.Movement, p.MovementMod) }
func (p *Player) Strength() int { return effectiveStat(p.Position.Strength, p.StrengthMod) }
func (p *Player) Agility() int  { return effectiveStat(p.Position.Agility, p.AgilityMod) }
func (p *Player) Passing() int  { return effectiveStat(p.Position.Passing, p.PassingMod) }
func (p *Player) Armor() int    { return effectiveStat(p.Position.Armor, p.ArmorMod) }

// Stat returns the effective value for the given axis.
func (p *Player) Stat(axis StatAxis) int {
	switch axis {
	case StatMovement:
		return p.Movement()
	case StatStrength:
		return p.Strength()
	case StatAgility:
		return p.Agility()
	case StatPassing:
		return p.Passing()
	case StatArmor:
		return p.Armor()
	}
	return 0
}

func (p *Player) statMod(axis StatAxis) *int {
	switch axis {
	case StatMovement:
		return &p.MovementMod
	case StatStrength:
		return &p.StrengthMod
	case StatAgility:
		return &p.AgilityMod
	case StatPassing:
		return &p.PassingMod
	case StatArmor:
		return &p.ArmorMod
	}
	return nil
}

// RaiseStat grants a permanent +1 to the given stat axis, as picked on a
// level up.
func (p *Player) RaiseStat(axis StatAxis) {
	if mod := p.statMod(axis); mod != nil {
		*mod++
	}
}

// Per-skill prices used in player valuation. A small set of skills is
// always worth having and carries a premium; everything else learned uses
// the general price.
const (
	generalSkillValue = 20000
	premiumSkillValue = 30000
)

var premiumSkills = map[string]bool{
	"Block":       true,
	"Dodge":       true,
	"Guard":       true,
	"Mighty Blow": true,
}

// Per-point prices for positive stat modifiers. Movement and armor are
// cheaper than strength and agility. Negative modifiers (injuries) never
// reduce value.
var statPointValue = map[StatAxis]int{
	StatMovement: 10000,
	StatStrength: 20000,
	StatAgility:  20000,
	StatPassing:  10000,
	StatArmor:    10000,
}

// CalculateValue computes the player's current value from the position
// cost, learned skills, and positive stat modifiers, and stores it on the
// player. The caller must have loaded the position; a player without one
// is a data-integrity violation that the db layer rejects before this
// point.
func (p *Player) CalculateValue() int {
	value := p.Position.Cost

	for _, s := range p.Skills {
		if s.IsStarting {
			continue
		}
		if premiumSkills[s.Name] {
			value += premiumSkillValue
		} else {
			value += generalSkillValue
		}
	}

	for axis, price := range statPointValue {
		if mod := *p.statMod(axis); mod > 0 {
			value += price * mod
		}
	}

	p.Value = value
	return value
}

// SPP totals needed to reach each level. Index i holds the requirement
// for level i+1, so a level-1 player needs sppThresholds[1] points to be
// eligible for level 2.
var sppThresholds = []int{0, 6, 16, 31, 51, 76, 176}

// AddSPP accumulates star player points. It never promotes the player;
// leveling up is a separate human decision driven by CheckLevelUp.
func (p *Player) AddSPP(amount int) {
	p.SPP += amount
}

// CheckLevelUp reports whether the player has accumulated enough SPP to
// advance to the next level.
func (p *Player) CheckLevelUp() bool {
	if p.Level < len(sppThresholds) {
		return p.SPP >= sppThresholds[p.Level]
	}
	return false
}

// SPPBreakdown returns the player's career SPP contribution by source.
func (p *Player) SPPBreakdown() map[string]int {
	return map[string]int{
		"touchdowns":    p.Touchdowns * sppPerTouchdown,
		"casualties":    p.CasualtiesInflicted * sppPerCasualty,
		"completions":   p.Completions * sppPerCompletion,
		"interceptions": p.Interceptions * sppPerInterception,
		"deflections":   p.Deflections * sppPerDeflection,
		"mvps":          p.MVPAwards * sppPerMVP,
		"total":         p.SPP,
	}
}

// SkillNames returns the names of all skills the player has.
func (p *Player) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// StarPlayer is a famous player hireable as a one-match inducement.
// RaceIDs lists the races allowed to field them.
type StarPlayer struct {
	ID   int32
	Name string
	Cost int

	Movement int
	Strength int
	Agility  int
	Passing  int
	Armor    int

	Skills  []string
	RaceIDs []int32
}

// EligibleFor reports whether the star player can be hired by a team of
// the given race.
func (s *StarPlayer) EligibleFor(raceID int32) bool {
	for _, id := range s.RaceIDs {
		if id == raceID {
			return true
		}
	}
	return false
}
