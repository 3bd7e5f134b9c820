package model

import (
	"fmt"
	"testing"
	"time"
)

func testPosition() *Position {
	return &Position{
		ID:       1,
		Name:     "Blitzer",
		Movement: 7,
		Strength: 3,
		Agility:  3,
		Passing:  4,
		Armor:    9,
		Cost:     85000,
	}
}

func TestEffectiveStats(t *testing.T) {
	p := &Player{Position: testPosition(), MovementMod: -2, StrengthMod: 1, ArmorMod: -10}

	if got := p.Movement(); got != 5 {
		t.Errorf("expected movement 5, got %d", got)
	}
	if got := p.Strength(); got != 4 {
		t.Errorf("expected strength 4, got %d", got)
	}
	// Effective stats are floored at 1 even when the modifier would push
	// them below.
	if got := p.Armor(); got != 1 {
		t.Errorf("expected armor floored at 1, got %d", got)
	}
}

func TestCalculateValue(t *testing.T) {
	tests := []struct {
		name     string
		player   *Player
		expected int
	}{
		{
			name:     "rookie is worth position cost",
			player:   &Player{Position: testPosition()},
			expected: 85000,
		},
		{
			name: "starting skills are free",
			player: &Player{
				Position: testPosition(),
				Skills:   []PlayerSkill{{Name: "Block", IsStarting: true}},
			},
			expected: 85000,
		},
		{
			name: "learned general skill",
			player: &Player{
				Position: testPosition(),
				Skills:   []PlayerSkill{{Name: "Sure Hands"}},
			},
			expected: 105000,
		},
		{
			name: "learned premium skill",
			player: &Player{
				Position: testPosition(),
				Skills:   []PlayerSkill{{Name: "Dodge"}},
			},
			expected: 115000,
		},
		{
			name: "positive stat modifiers are priced per axis",
			player: &Player{
				Position:    testPosition(),
				MovementMod: 1,
				StrengthMod: 1,
			},
			expected: 115000,
		},
		{
			name: "injuries never reduce value",
			player: &Player{
				Position:    testPosition(),
				MovementMod: -1,
				ArmorMod:    -1,
			},
			expected: 85000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.player.CalculateValue(); got != tc.expected {
				t.Errorf("expected value %d, got %d", tc.expected, got)
			}
			if tc.player.Value != tc.expected {
				t.Errorf("expected value to be stored on player, got %d", tc.player.Value)
			}
		})
	}
}

func TestCalculateValueIsIdempotent(t *testing.T) {
	p := &Player{
		Position:    testPosition(),
		Skills:      []PlayerSkill{{Name: "Guard"}, {Name: "Sure Hands"}},
		StrengthMod: 1,
	}

	first := p.CalculateValue()
	second := p.CalculateValue()
	if first != second {
		t.Errorf("expected identical values on repeated calls, got %d then %d", first, second)
	}
}

func TestCheckLevelUp(t *testing.T) {
	tests := []struct {
		spp      int
		level    int
		expected bool
	}{
		{spp: 0, level: 1, expected: false},
		{spp: 5, level: 1, expected: false},
		{spp: 6, level: 1, expected: true},
		{spp: 15, level: 2, expected: false},
		{spp: 16, level: 2, expected: true},
		{spp: 176, level: 6, expected: true},
		{spp: 500, level: 7, expected: false}, // already at the top
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("spp=%d,level=%d", tc.spp, tc.level), func(t *testing.T) {
			p := &Player{SPP: tc.spp, Level: tc.level}
			if got := p.CheckLevelUp(); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestAddSPPDoesNotPromote(t *testing.T) {
	p := &Player{Level: 1}
	p.AddSPP(10)

	if p.SPP != 10 {
		t.Errorf("expected 10 SPP, got %d", p.SPP)
	}
	if p.Level != 1 {
		t.Errorf("expected level unchanged, got %d", p.Level)
	}
	if !p.CheckLevelUp() {
		t.Error("expected player to be eligible for level 2")
	}
}

func TestApplyInjury(t *testing.T) {
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	t.Run("badly hurt has no effect and no record", func(t *testing.T) {
		p := &Player{ID: 7, Position: testPosition(), Active: true}
		injury := p.ApplyInjury(InjuryBadlyHurt, 3, now)
		if injury != nil {
			t.Errorf("expected no injury record, got %+v", injury)
		}
		if len(p.Injuries) != 0 {
			t.Errorf("expected no history entries, got %d", len(p.Injuries))
		}
	})

	t.Run("miss next game", func(t *testing.T) {
		p := &Player{ID: 7, Position: testPosition(), Active: true}
		injury := p.ApplyInjury(InjuryMissNextGame, 3, now)
		if !p.MissNextGame {
			t.Error("expected miss next game flag to be set")
		}
		if injury == nil || injury.Permanent {
			t.Errorf("expected a non-permanent injury record, got %+v", injury)
		}
	})

	t.Run("niggling increments counter", func(t *testing.T) {
		p := &Player{ID: 7, Position: testPosition(), Active: true, NigglingInjuries: 1}
		p.ApplyInjury(InjuryNiggling, 3, now)
		if p.NigglingInjuries != 2 {
			t.Errorf("expected 2 niggling injuries, got %d", p.NigglingInjuries)
		}
	})

	t.Run("stat bust decrements modifier", func(t *testing.T) {
		p := &Player{ID: 7, Position: testPosition(), Active: true}
		p.ApplyInjury(InjuryMovementBust, 3, now)
		if p.MovementMod != -1 {
			t.Errorf("expected movement mod -1, got %d", p.MovementMod)
		}
		if got := p.Movement(); got != 6 {
			t.Errorf("expected effective movement 6, got %d", got)
		}
	})

	t.Run("stat bust is skipped at the floor", func(t *testing.T) {
		pos := testPosition()
		p := &Player{ID: 7, Position: pos, Active: true, ArmorMod: -(pos.Armor - 1)}
		if got := p.Armor(); got != 1 {
			t.Fatalf("expected armor at floor before injury, got %d", got)
		}

		p.ApplyInjury(InjuryArmorBust, 3, now)
		if got := p.Armor(); got != 1 {
			t.Errorf("expected armor to stay at 1, got %d", got)
		}
		if p.ArmorMod != -(pos.Armor - 1) {
			t.Errorf("expected modifier unchanged, got %d", p.ArmorMod)
		}
		// The injury is still recorded even though the decrement was
		// skipped.
		if len(p.Injuries) != 1 {
			t.Errorf("expected 1 history entry, got %d", len(p.Injuries))
		}
	})

	t.Run("death deactivates the player", func(t *testing.T) {
		p := &Player{ID: 7, Position: testPosition(), Active: true}
		injury := p.ApplyInjury(InjuryDead, 3, now)
		if p.Active || !p.Dead {
			t.Errorf("expected dead inactive player, got active=%v dead=%v", p.Active, p.Dead)
		}
		if injury == nil || !injury.Permanent {
			t.Errorf("expected a permanent injury record, got %+v", injury)
		}
	})
}

func TestParseInjuryKind(t *testing.T) {
	if _, ok := ParseInjuryKind("-1av"); !ok {
		t.Error("expected -1av to be a valid injury kind")
	}
	if _, ok := ParseInjuryKind("hangnail"); ok {
		t.Error("expected hangnail to be rejected")
	}
}

func TestStarPlayerEligibleFor(t *testing.T) {
	star := &StarPlayer{Name: "Griff Oberwald", RaceIDs: []int32{1, 3}}

	if !star.EligibleFor(1) {
		t.Error("expected star to be eligible for race 1")
	}
	if star.EligibleFor(2) {
		t.Error("expected star to be ineligible for race 2")
	}
}
