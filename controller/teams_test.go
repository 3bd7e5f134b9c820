package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/manugarri/bb-league/db/mockdb"
	"github.com/manugarri/bb-league/model"
)

func TestRecalculateTeamValue(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	team := rosterTeam(1, "Reikland Reavers", 3, 2, 0)
	team.Players = []*model.Player{lineman(11, 1, 1)}
	team.CurrentTV = 999 // stale cache, must be ignored

	mockDB.On("GetTeam", mock.Anything, int32(1)).Return(team, nil)
	mockDB.On("SaveTeamValues", mock.Anything, team).Return(nil)

	got, err := ctrl.RecalculateTeamValue(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 rerolls at 50000, 2 coaches at 10000, one 50000 lineman.
	if expected := 220000; got.CurrentTV != expected {
		t.Errorf("team value: expected %d, got %d", expected, got.CurrentTV)
	}
	if expected := 50000; team.Players[0].Value != expected {
		t.Errorf("player value: expected %d, got %d", expected, team.Players[0].Value)
	}
	mockDB.AssertExpectations(t)
}

func TestLevelUpPlayerNotEligible(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	p := lineman(11, 1, 1)
	p.SPP = 5 // one short of the level 2 threshold
	mockDB.On("GetPlayer", mock.Anything, int32(11)).Return(p, nil)

	_, err := ctrl.LevelUpPlayer(context.Background(), 11, "Block", "")
	if !errors.Is(err, ErrNotEligibleForLevelUp) {
		t.Errorf("expected ErrNotEligibleForLevelUp, got %v", err)
	}
}

func TestLevelUpPlayerWithSkill(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	p := lineman(11, 1, 1)
	p.SPP = 6
	team := rosterTeam(1, "Reikland Reavers", 3, 0, 0)
	team.Players = []*model.Player{p}

	mockDB.On("GetPlayer", mock.Anything, int32(11)).Return(p, nil)
	mockDB.On("GetSkill", mock.Anything, "Block").
		Return(&model.Skill{ID: 4, Name: "Block", Category: model.SkillGeneral}, nil)
	mockDB.On("AddPlayerSkill", mock.Anything, int32(11), "Block").Return(nil)
	mockDB.On("SavePlayer", mock.Anything, p).Return(nil)
	mockDB.On("GetTeam", mock.Anything, int32(1)).Return(team, nil)
	mockDB.On("SaveTeamValues", mock.Anything, team).Return(nil)

	got, err := ctrl.LevelUpPlayer(context.Background(), 11, "Block", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expected := 2; got.Level != expected {
		t.Errorf("level: expected %d, got %d", expected, got.Level)
	}
	// Block is a premium skill: 50000 base + 30000.
	if expected := 80000; got.Value != expected {
		t.Errorf("player value: expected %d, got %d", expected, got.Value)
	}
	if len(got.Skills) != 1 || got.Skills[0].Name != "Block" {
		t.Errorf("skill not attached: %+v", got.Skills)
	}
	mockDB.AssertExpectations(t)
}

func TestLevelUpPlayerWithStat(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	p := lineman(11, 1, 1)
	p.SPP = 6
	team := rosterTeam(1, "Reikland Reavers", 3, 0, 0)
	team.Players = []*model.Player{p}

	mockDB.On("GetPlayer", mock.Anything, int32(11)).Return(p, nil)
	mockDB.On("SavePlayer", mock.Anything, p).Return(nil)
	mockDB.On("GetTeam", mock.Anything, int32(1)).Return(team, nil)
	mockDB.On("SaveTeamValues", mock.Anything, team).Return(nil)

	got, err := ctrl.LevelUpPlayer(context.Background(), 11, "", model.StatStrength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expected := 4; got.Strength() != expected {
		t.Errorf("strength: expected %d, got %d", expected, got.Strength())
	}
	// 50000 base + 20000 for the strength point.
	if expected := 70000; got.Value != expected {
		t.Errorf("player value: expected %d, got %d", expected, got.Value)
	}
	mockDB.AssertExpectations(t)
}
