package controller

import (
	"context"
	"fmt"

	"github.com/manugarri/bb-league/model"
)

func (c *controller) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	return c.db.GetTeam(ctx, id)
}

func (c *controller) ListTeams(ctx context.Context) ([]model.Team, error) {
	return c.db.ListTeams(ctx)
}

// RecalculateTeamValue recomputes the team value from the live roster and
// persists it together with every active player's value. The cached
// current_tv column is never trusted; every budget decision goes through
// here first.
func (c *controller) RecalculateTeamValue(ctx context.Context, teamID int32) (*model.Team, error) {
	t, err := c.db.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	t.CalculateTV()
	if err := c.db.SaveTeamValues(ctx, t); err != nil {
		return nil, fmt.Errorf("error persisting recomputed values for team %d: %w", teamID, err)
	}
	return t, nil
}

func (c *controller) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

// LevelUpPlayer promotes a level-up-eligible player. The reward is either
// a named skill or a permanent +1 to a stat axis; both raise the player's
// value, so the team value is recomputed afterwards.
func (c *controller) LevelUpPlayer(ctx context.Context, playerID int32, skillName string, stat model.StatAxis) (*model.Player, error) {
	p, err := c.db.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !p.CheckLevelUp() {
		return nil, ErrNotEligibleForLevelUp
	}

	if skillName != "" {
		skill, err := c.db.GetSkill(ctx, skillName)
		if err != nil {
			return nil, err
		}
		if err := c.db.AddPlayerSkill(ctx, p.ID, skill.Name); err != nil {
			return nil, err
		}
		p.Skills = append(p.Skills, model.PlayerSkill{
			SkillID:  skill.ID,
			Name:     skill.Name,
			Category: skill.Category,
		})
	} else {
		p.RaiseStat(stat)
	}

	p.Level++
	p.CalculateValue()
	if err := c.db.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("error saving leveled player %d: %w", p.ID, err)
	}

	if _, err := c.RecalculateTeamValue(ctx, p.TeamID); err != nil {
		return nil, err
	}
	return p, nil
}
