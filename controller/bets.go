package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/manugarri/bb-league/model"
)

// estimateTimeout bounds a single call to the multiplier estimation
// service so a slow model never blocks bet placement.
const estimateTimeout = 20 * time.Second

func (c *controller) GetBet(ctx context.Context, id int32) (*model.Bet, error) {
	return c.db.GetBet(ctx, id)
}

func (c *controller) ListUserBets(ctx context.Context, userID int32) ([]model.Bet, error) {
	return c.db.ListUserBets(ctx, userID)
}

func (c *controller) ListMatchBets(ctx context.Context, matchID int32) ([]model.Bet, error) {
	return c.db.ListMatchBets(ctx, matchID)
}

func (c *controller) ListNotifications(ctx context.Context, userID int32, unreadOnly bool) ([]model.BetNotification, error) {
	return c.db.ListNotifications(ctx, userID, unreadOnly)
}

func (c *controller) MarkNotificationRead(ctx context.Context, id int32) error {
	return c.db.MarkNotificationRead(ctx, id)
}

// betContext validates the common placement rules: the match must not be
// finished or cancelled, the backed team must play in it, the amount must
// be in range and the user must exist.
func (c *controller) betContext(ctx context.Context, userID, matchID, teamID int32, amount int) (*model.Match, error) {
	if amount < 1 || amount > model.MaxBetAmount {
		return nil, ErrBetAmountInvalid
	}

	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted() {
		return nil, ErrMatchAlreadyCompleted
	}
	if m.Status == model.MatchCancelled {
		return nil, ErrMatchNotOpen
	}
	if !m.HasTeam(teamID) {
		return nil, ErrTeamNotInMatch
	}

	if _, err := c.db.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *controller) PlaceBet(ctx context.Context, userID, matchID, teamID int32, kind model.BetKind, targetValue, amount int) (*model.Bet, error) {
	if _, ok := model.FixedMultipliers[kind]; !ok {
		return nil, fmt.Errorf("unknown bet kind %q", kind)
	}
	if kind != model.BetWin && targetValue < 0 {
		return nil, ErrBetTargetRequired
	}

	if _, err := c.betContext(ctx, userID, matchID, teamID, amount); err != nil {
		return nil, err
	}

	b := &model.Bet{
		UserID:      userID,
		MatchID:     matchID,
		TeamID:      teamID,
		Kind:        kind,
		TargetValue: targetValue,
		Amount:      amount,
		Status:      model.BetPending,
	}
	if err := c.db.AddBet(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *controller) PlaceAIBet(ctx context.Context, userID, matchID, teamID int32, description string, amount int) (*model.Bet, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrBetDescriptionNeeded
	}

	m, err := c.betContext(ctx, userID, matchID, teamID, amount)
	if err != nil {
		return nil, err
	}

	b := &model.Bet{
		UserID:      userID,
		MatchID:     matchID,
		TeamID:      teamID,
		Kind:        model.BetAI,
		Description: description,
		Amount:      amount,
		Status:      model.BetPending,
		Estimate:    c.estimateBetMultiplier(ctx, m, teamID, description),
	}
	if err := c.db.AddBet(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// estimateBetMultiplier prices an AI bet through the estimation service.
// Any failure falls back to the default multiplier so placement never
// depends on the service being up.
func (c *controller) estimateBetMultiplier(ctx context.Context, m *model.Match, teamID int32, description string) *model.MultiplierEstimate {
	fallback := &model.MultiplierEstimate{
		Multiplier: model.DefaultAIMultiplier,
		Confidence: 0,
		Rationale:  "estimate unavailable, default multiplier applied",
	}
	if c.estimator == nil {
		return fallback
	}

	prompt, err := c.buildEstimatePrompt(ctx, m, teamID, description)
	if err != nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, estimateTimeout)
	defer cancel()

	est, err := c.estimator.EstimateMultiplier(ctx, prompt)
	if err != nil {
		return fallback
	}
	return est
}

// buildEstimatePrompt summarizes both teams' records and rosters so the
// estimation service has context to price the prediction.
func (c *controller) buildEstimatePrompt(ctx context.Context, m *model.Match, teamID int32, description string) (string, error) {
	home, err := c.db.GetTeam(ctx, m.HomeTeamID)
	if err != nil {
		return "", err
	}
	away, err := c.db.GetTeam(ctx, m.AwayTeamID)
	if err != nil {
		return "", err
	}

	backed := home
	if teamID == away.ID {
		backed = away
	}

	var sb strings.Builder
	sb.WriteString("You are setting odds for a Blood Bowl league bet.\n\n")
	fmt.Fprintf(&sb, "Upcoming match: %s (home) vs %s (away).\n", home.Name, away.Name)
	writeTeamSummary(&sb, home)
	writeTeamSummary(&sb, away)
	fmt.Fprintf(&sb, "\nThe bettor backs %s with this prediction: %q\n\n", backed.Name, description)
	sb.WriteString("Reply with a JSON object with fields \"multiplier\" (payout multiplier, " +
		"higher for unlikely predictions), \"confidence\" (0 to 1) and \"rationale\" (one sentence).")
	return sb.String(), nil
}

func writeTeamSummary(sb *strings.Builder, t *model.Team) {
	fmt.Fprintf(sb, "\n%s (%s): record %s, TD %d-%d, CAS %d-%d, team value %dg.\n",
		t.Name, t.Race.Name, t.RecordString(),
		t.TouchdownsFor, t.TouchdownsAgainst,
		t.CasualtiesInflicted, t.CasualtiesSuffered,
		t.CurrentTV)
	for _, p := range t.ActivePlayers() {
		fmt.Fprintf(sb, "  #%d %s, %s, %d SPP", p.Number, p.Name, p.Position.Name, p.SPP)
		if skills := p.SkillNames(); len(skills) > 0 {
			fmt.Fprintf(sb, ", skills: %s", strings.Join(skills, ", "))
		}
		sb.WriteString("\n")
	}
}

// ResolveAIBet settles an AI bet from a human won/lost judgement and
// notifies the bettor. Calling it again on a settled bet keeps the
// original outcome.
func (c *controller) ResolveAIBet(ctx context.Context, betID int32, won bool) (*model.Bet, error) {
	b, err := c.db.GetBet(ctx, betID)
	if err != nil {
		return nil, err
	}
	if !b.IsAI() {
		return nil, ErrBetNotAI
	}

	m, err := c.db.GetMatch(ctx, b.MatchID)
	if err != nil {
		return nil, err
	}
	if !m.IsCompleted() {
		return nil, ErrMatchNotCompleted
	}

	if b.Status != model.BetPending {
		return b, nil
	}
	b.ResolveManual(won, c.clock.Now())

	home, err := c.db.GetTeam(ctx, m.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := c.db.GetTeam(ctx, m.AwayTeamID)
	if err != nil {
		return nil, err
	}

	resultString := fmt.Sprintf("%s %d - %d %s", home.Name, m.HomeScore, m.AwayScore, away.Name)
	n, err := c.betNotification(ctx, b, home, away, resultString)
	if err != nil {
		return nil, err
	}

	if err := c.db.ResolveBet(ctx, b, n); err != nil {
		return nil, err
	}
	return b, nil
}
