package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/manugarri/bb-league/model"
)

func (db *postgresDB) ListMatchInducements(ctx context.Context, matchID, teamID int32) ([]model.MatchInducement, error) {
	const query = `SELECT id, match_id, team_id, inducement_id, name, quantity,
			cost_per_unit, total_cost, star_player_id, created
		FROM match_inducements
		WHERE match_id=@matchID AND team_id=@teamID
		ORDER BY created, id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"matchID": matchID, "teamID": teamID})
	if err != nil {
		return nil, fmt.Errorf("error listing inducements for match %d team %d: %w", matchID, teamID, err)
	}

	inducements := make([]model.MatchInducement, 0, 8)
	for rows.Next() {
		mi, err := scanInducement(rows)
		if err != nil {
			return nil, err
		}
		inducements = append(inducements, *mi)
	}
	return inducements, nil
}

func (db *postgresDB) GetInducement(ctx context.Context, id int32) (*model.MatchInducement, error) {
	const query = `SELECT id, match_id, team_id, inducement_id, name, quantity,
			cost_per_unit, total_cost, star_player_id, created
		FROM match_inducements WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	mi, err := scanInducement(row)
	if err != nil {
		return nil, notFound(err, ErrInducementNotFound)
	}
	return mi, nil
}

// UpsertInducement inserts a ledger line, folding repeat purchases of the
// same catalog entry into one row. Star player rows never fold; a repeat
// hire of the same star fails the partial unique index instead.
func (db *postgresDB) UpsertInducement(ctx context.Context, mi *model.MatchInducement) error {
	const query = `INSERT INTO match_inducements (match_id, team_id, inducement_id, name,
			quantity, cost_per_unit, total_cost, star_player_id)
		VALUES (@matchID, @teamID, @inducementID, @name,
			@quantity, @costPerUnit, @totalCost, @starPlayerID)
		ON CONFLICT (match_id, team_id, inducement_id) WHERE inducement_id <> 'star_player'
		DO UPDATE
		SET quantity = match_inducements.quantity + EXCLUDED.quantity,
			total_cost = match_inducements.total_cost + EXCLUDED.total_cost
		RETURNING id, quantity, total_cost`

	args := pgx.NamedArgs{
		"matchID":      mi.MatchID,
		"teamID":       mi.TeamID,
		"inducementID": mi.InducementID,
		"name":         mi.Name,
		"quantity":     mi.Quantity,
		"costPerUnit":  mi.CostPerUnit,
		"totalCost":    mi.TotalCost,
		"starPlayerID": mi.StarPlayerID,
	}
	err := db.pool.QueryRow(ctx, query, args).Scan(&mi.ID, &mi.Quantity, &mi.TotalCost)
	if err != nil {
		return fmt.Errorf("error upserting inducement %s: %w", mi.InducementID, err)
	}
	return nil
}

func (db *postgresDB) DeleteInducement(ctx context.Context, id int32) error {
	const query = `DELETE FROM match_inducements WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting inducement %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInducementNotFound
	}
	return nil
}

func (db *postgresDB) GetPreMatchSubmission(ctx context.Context, matchID, teamID int32) (*model.PreMatchSubmission, error) {
	const query = `SELECT id, match_id, team_id, submitted, submitted_at, total_cost, notes, created, updated
					FROM prematch_submissions
					WHERE match_id=@matchID AND team_id=@teamID`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"matchID": matchID, "teamID": teamID})

	var s model.PreMatchSubmission
	var submittedAt, created, updated pgtype.Timestamptz
	err := row.Scan(&s.ID, &s.MatchID, &s.TeamID, &s.Submitted, &submittedAt,
		&s.TotalCost, &s.Notes, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No submission yet is a normal state.
			return nil, nil
		}
		return nil, err
	}
	s.SubmittedAt = submittedAt.Time
	s.Created = created.Time
	s.Updated = updated.Time
	return &s, nil
}

// SubmitPreMatch locks in a team's inducements: it upserts the
// submission row, debits the treasury, flips the team's ready flag on
// the match and moves the match to prematch once both sides are ready.
// All in one transaction.
func (db *postgresDB) SubmitPreMatch(ctx context.Context, matchID, teamID int32, totalCost, treasuryDebit int) error {
	const upsertSubmission = `INSERT INTO prematch_submissions (match_id, team_id, submitted, submitted_at, total_cost, updated)
		VALUES (@matchID, @teamID, TRUE, @now, @totalCost, @now)
		ON CONFLICT (match_id, team_id) DO UPDATE
		SET submitted=TRUE,
			submitted_at=@now,
			total_cost=@totalCost,
			updated=@now`

	const debitTreasury = `UPDATE teams SET treasury = treasury - @debit, updated=@now WHERE id=@teamID`

	const setReady = `UPDATE matches
		SET home_prematch_ready = home_prematch_ready OR (home_team_id = @teamID),
			away_prematch_ready = away_prematch_ready OR (away_team_id = @teamID),
			updated=@now
		WHERE id=@matchID`

	const flipStatus = `UPDATE matches SET status='prematch', updated=@now
		WHERE id=@matchID AND status='scheduled'
			AND home_prematch_ready AND away_prematch_ready`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := db.now()
	args := pgx.NamedArgs{
		"matchID":   matchID,
		"teamID":    teamID,
		"totalCost": totalCost,
		"now":       now,
	}
	if _, err := tx.Exec(ctx, upsertSubmission, args); err != nil {
		return fmt.Errorf("error recording submission for team %d: %w", teamID, err)
	}

	if treasuryDebit > 0 {
		_, err := tx.Exec(ctx, debitTreasury, pgx.NamedArgs{
			"teamID": teamID, "debit": treasuryDebit, "now": now,
		})
		if err != nil {
			return fmt.Errorf("error debiting treasury for team %d: %w", teamID, err)
		}
	}

	if _, err := tx.Exec(ctx, setReady, args); err != nil {
		return fmt.Errorf("error setting ready flag on match %d: %w", matchID, err)
	}
	if _, err := tx.Exec(ctx, flipStatus, args); err != nil {
		return fmt.Errorf("error updating match %d status: %w", matchID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing pre-match submission: %w", err)
	}
	return nil
}

func scanInducement(row pgx.Row) (*model.MatchInducement, error) {
	var mi model.MatchInducement
	var created pgtype.Timestamptz
	err := row.Scan(&mi.ID, &mi.MatchID, &mi.TeamID, &mi.InducementID, &mi.Name,
		&mi.Quantity, &mi.CostPerUnit, &mi.TotalCost, &mi.StarPlayerID, &created)
	if err != nil {
		return nil, err
	}
	mi.Created = created.Time
	return &mi, nil
}
