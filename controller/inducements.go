package controller

import (
	"context"

	"github.com/manugarri/bb-league/gamedata"
	"github.com/manugarri/bb-league/model"
)

// TeamPrematch is one side's view of the negotiation: its budget and its
// committed ledger so far.
type TeamPrematch struct {
	Team      *model.Team
	PettyCash int
	Treasury  int

	Inducements []model.MatchInducement
	TotalCost   int
	Submitted   bool

	// Available is the catalog filtered to this team, with race
	// discounts applied.
	Available []gamedata.Inducement
}

// PrematchState is the negotiation overview for both sides of a match.
// Team values are recomputed before petty cash is derived, so the budget
// always reflects the current rosters.
type PrematchState struct {
	Match *model.Match
	Home  TeamPrematch
	Away  TeamPrematch
}

func (c *controller) PrematchOverview(ctx context.Context, matchID int32) (*PrematchState, error) {
	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted() || m.Status == model.MatchCancelled {
		return nil, ErrMatchNotOpen
	}

	home, err := c.RecalculateTeamValue(ctx, m.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := c.RecalculateTeamValue(ctx, m.AwayTeamID)
	if err != nil {
		return nil, err
	}

	var league *model.League
	if !m.IsFriendly() {
		if league, err = c.db.GetLeague(ctx, m.LeagueID); err != nil {
			return nil, err
		}
	}

	homePetty, awayPetty := model.PettyCash(home.CurrentTV, away.CurrentTV)

	state := &PrematchState{Match: m}
	state.Home, err = c.teamPrematch(ctx, m, home, homePetty, league)
	if err != nil {
		return nil, err
	}
	state.Away, err = c.teamPrematch(ctx, m, away, awayPetty, league)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (c *controller) teamPrematch(ctx context.Context, m *model.Match, t *model.Team, pettyCash int, league *model.League) (TeamPrematch, error) {
	ledger, err := c.db.ListMatchInducements(ctx, m.ID, t.ID)
	if err != nil {
		return TeamPrematch{}, err
	}
	sub, err := c.db.GetPreMatchSubmission(ctx, m.ID, t.ID)
	if err != nil {
		return TeamPrematch{}, err
	}

	return TeamPrematch{
		Team:        t,
		PettyCash:   pettyCash,
		Treasury:    t.Treasury,
		Inducements: ledger,
		TotalCost:   model.TotalInducementCost(ledger),
		Submitted:   sub != nil && sub.Submitted,
		Available:   c.catalog.AvailableTo(t, league),
	}, nil
}

// prematchContext loads and validates everything a ledger mutation needs:
// the match must still be open, the team must play in it and must not
// have submitted yet. The returned budget is petty cash plus treasury.
func (c *controller) prematchContext(ctx context.Context, matchID, teamID int32) (m *model.Match, t *model.Team, budget int, err error) {
	m, err = c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, nil, 0, err
	}
	if m.Status != model.MatchScheduled && m.Status != model.MatchPrematch {
		return nil, nil, 0, ErrMatchNotOpen
	}
	if !m.HasTeam(teamID) {
		return nil, nil, 0, ErrTeamNotInMatch
	}

	sub, err := c.db.GetPreMatchSubmission(ctx, matchID, teamID)
	if err != nil {
		return nil, nil, 0, err
	}
	if sub != nil && sub.Submitted {
		return nil, nil, 0, ErrInducementsSubmitted
	}

	home, err := c.RecalculateTeamValue(ctx, m.HomeTeamID)
	if err != nil {
		return nil, nil, 0, err
	}
	away, err := c.RecalculateTeamValue(ctx, m.AwayTeamID)
	if err != nil {
		return nil, nil, 0, err
	}

	homePetty, awayPetty := model.PettyCash(home.CurrentTV, away.CurrentTV)
	if teamID == m.HomeTeamID {
		t, budget = home, homePetty+home.Treasury
	} else {
		t, budget = away, awayPetty+away.Treasury
	}
	return m, t, budget, nil
}

func (c *controller) AddInducement(ctx context.Context, matchID, teamID int32, inducementID string, quantity int, lang string) (*model.MatchInducement, error) {
	if quantity < 1 {
		quantity = 1
	}

	m, t, budget, err := c.prematchContext(ctx, matchID, teamID)
	if err != nil {
		return nil, err
	}

	var league *model.League
	if !m.IsFriendly() {
		if league, err = c.db.GetLeague(ctx, m.LeagueID); err != nil {
			return nil, err
		}
	}

	var entry *gamedata.Inducement
	for _, ind := range c.catalog.AvailableTo(t, league) {
		if ind.ID == inducementID {
			entry = &ind
			break
		}
	}
	if entry == nil {
		return nil, ErrUnknownInducement
	}

	ledger, err := c.db.ListMatchInducements(ctx, matchID, teamID)
	if err != nil {
		return nil, err
	}

	owned := 0
	for _, mi := range ledger {
		if mi.InducementID == inducementID {
			owned = mi.Quantity
			break
		}
	}
	if owned+quantity > entry.MaxQuantity {
		return nil, ErrQuantityExceeded
	}

	cost := entry.Cost * quantity
	if model.TotalInducementCost(ledger)+cost > budget {
		return nil, ErrBudgetExceeded
	}

	mi := &model.MatchInducement{
		MatchID:      matchID,
		TeamID:       teamID,
		InducementID: entry.ID,
		Name:         entry.LocalizedName(lang),
		Quantity:     quantity,
		CostPerUnit:  entry.Cost,
		TotalCost:    cost,
	}
	if err := c.db.UpsertInducement(ctx, mi); err != nil {
		return nil, err
	}
	return mi, nil
}

func (c *controller) HireStarPlayer(ctx context.Context, matchID, teamID, starPlayerID int32) (*model.MatchInducement, error) {
	_, t, budget, err := c.prematchContext(ctx, matchID, teamID)
	if err != nil {
		return nil, err
	}

	star, err := c.db.GetStarPlayer(ctx, starPlayerID)
	if err != nil {
		return nil, err
	}
	if !star.EligibleFor(t.Race.ID) {
		return nil, ErrStarPlayerIneligible
	}

	ledger, err := c.db.ListMatchInducements(ctx, matchID, teamID)
	if err != nil {
		return nil, err
	}

	stars := 0
	for _, mi := range ledger {
		if !mi.IsStarPlayer() {
			continue
		}
		if mi.StarPlayerID == starPlayerID {
			return nil, ErrStarPlayerDuplicate
		}
		stars++
	}
	if stars >= model.MaxStarPlayersPerMatch {
		return nil, ErrStarPlayerLimit
	}

	if model.TotalInducementCost(ledger)+star.Cost > budget {
		return nil, ErrBudgetExceeded
	}

	mi := &model.MatchInducement{
		MatchID:      matchID,
		TeamID:       teamID,
		InducementID: model.StarPlayerInducementID,
		Name:         star.Name,
		Quantity:     1,
		CostPerUnit:  star.Cost,
		TotalCost:    star.Cost,
		StarPlayerID: starPlayerID,
	}
	if err := c.db.UpsertInducement(ctx, mi); err != nil {
		return nil, err
	}
	return mi, nil
}

func (c *controller) RemoveInducement(ctx context.Context, matchID, teamID, entryID int32) error {
	if _, _, _, err := c.prematchContext(ctx, matchID, teamID); err != nil {
		return err
	}

	mi, err := c.db.GetInducement(ctx, entryID)
	if err != nil {
		return err
	}
	if mi.MatchID != matchID || mi.TeamID != teamID {
		return ErrTeamNotInMatch
	}
	return c.db.DeleteInducement(ctx, entryID)
}

// SubmitInducements freezes the team's ledger, debits the treasury for
// whatever petty cash did not cover and marks the side ready. The match
// moves to prematch once both sides have submitted.
func (c *controller) SubmitInducements(ctx context.Context, matchID, teamID int32) error {
	_, t, budget, err := c.prematchContext(ctx, matchID, teamID)
	if err != nil {
		return err
	}

	ledger, err := c.db.ListMatchInducements(ctx, matchID, teamID)
	if err != nil {
		return err
	}
	total := model.TotalInducementCost(ledger)

	pettyCash := budget - t.Treasury
	debit := model.TreasuryDebit(total, pettyCash)
	if debit > t.Treasury {
		return ErrInsufficientTreasury
	}

	return c.db.SubmitPreMatch(ctx, matchID, teamID, total, debit)
}

// SkipInducements submits an empty ledger, declining to induce anything.
func (c *controller) SkipInducements(ctx context.Context, matchID, teamID int32) error {
	if _, _, _, err := c.prematchContext(ctx, matchID, teamID); err != nil {
		return err
	}
	return c.db.SubmitPreMatch(ctx, matchID, teamID, 0, 0)
}

func (c *controller) ListStarPlayers(ctx context.Context, raceID int32) ([]model.StarPlayer, error) {
	return c.db.ListStarPlayersForRace(ctx, raceID)
}
