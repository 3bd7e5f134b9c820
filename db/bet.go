package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/manugarri/bb-league/model"
)

const betColumns = `id, user_id, match_id, team_id, kind, target_value, description,
		amount, status, payout, multiplier, confidence, rationale, placed, resolved`

func (db *postgresDB) AddBet(ctx context.Context, b *model.Bet) error {
	const query = `INSERT INTO bets (user_id, match_id, team_id, kind, target_value,
			description, amount, status, multiplier, confidence, rationale)
		VALUES (@userID, @matchID, @teamID, @kind, @targetValue,
			@description, @amount, @status, @multiplier, @confidence, @rationale)
		RETURNING id, placed`

	args := namedArgsForBet(b)
	var placed pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query, args).Scan(&b.ID, &placed); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBet
		}
		return fmt.Errorf("error inserting bet: %w", err)
	}
	b.Placed = placed.Time
	return nil
}

func (db *postgresDB) GetBet(ctx context.Context, id int32) (*model.Bet, error) {
	const query = `SELECT ` + betColumns + ` FROM bets WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	b, err := scanBet(row)
	if err != nil {
		return nil, notFound(err, ErrBetNotFound)
	}
	return b, nil
}

// SaveBetEstimate persists the cached multiplier estimate of an AI bet.
func (db *postgresDB) SaveBetEstimate(ctx context.Context, b *model.Bet) error {
	const query = `UPDATE bets
		SET multiplier=@multiplier, confidence=@confidence, rationale=@rationale
		WHERE id=@id`

	args := pgx.NamedArgs{
		"id":         b.ID,
		"multiplier": estimateFloat(b, func(e *model.MultiplierEstimate) float64 { return e.Multiplier }),
		"confidence": estimateFloat(b, func(e *model.MultiplierEstimate) float64 { return e.Confidence }),
		"rationale":  estimateRationale(b),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error saving estimate for bet %d: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBetNotFound
	}
	return nil
}

func (db *postgresDB) ListMatchBets(ctx context.Context, matchID int32) ([]model.Bet, error) {
	const query = `SELECT ` + betColumns + ` FROM bets WHERE match_id=@matchID ORDER BY placed`
	return db.listBets(ctx, query, pgx.NamedArgs{"matchID": matchID})
}

func (db *postgresDB) ListUserBets(ctx context.Context, userID int32) ([]model.Bet, error) {
	const query = `SELECT ` + betColumns + ` FROM bets WHERE user_id=@userID ORDER BY placed DESC`
	return db.listBets(ctx, query, pgx.NamedArgs{"userID": userID})
}

func (db *postgresDB) listBets(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Bet, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing bets: %w", err)
	}

	bets := make([]model.Bet, 0, 8)
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, *b)
	}
	return bets, nil
}

// ResolveBet persists a settled bet together with its notification.
func (db *postgresDB) ResolveBet(ctx context.Context, b *model.Bet, n *model.BetNotification) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := db.saveBetResolution(ctx, tx, b); err != nil {
		return err
	}
	if n != nil {
		if err := db.insertNotification(ctx, tx, n); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing bet resolution: %w", err)
	}
	return nil
}

func (db *postgresDB) saveBetResolution(ctx context.Context, tx pgx.Tx, b *model.Bet) error {
	const query = `UPDATE bets SET status=@status, payout=@payout, resolved=@resolved WHERE id=@id`

	args := pgx.NamedArgs{
		"id":     b.ID,
		"status": string(b.Status),
		"payout": b.Payout,
		"resolved": pgtype.Timestamptz{
			Time:             b.Resolved,
			InfinityModifier: pgtype.Finite,
			Valid:            !b.Resolved.IsZero(),
		},
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error resolving bet %d: %w", b.ID, err)
	}
	return nil
}

func (db *postgresDB) insertNotification(ctx context.Context, tx pgx.Tx, n *model.BetNotification) error {
	const query = `INSERT INTO bet_notifications (user_id, bet_id, message)
					VALUES (@userID, @betID, @message)`

	args := pgx.NamedArgs{
		"userID":  n.UserID,
		"betID":   n.BetID,
		"message": n.Message,
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting notification for bet %d: %w", n.BetID, err)
	}
	return nil
}

func (db *postgresDB) ListNotifications(ctx context.Context, userID int32, unreadOnly bool) ([]model.BetNotification, error) {
	const query = `SELECT id, user_id, bet_id, message, read, created, read_at
					FROM bet_notifications
					WHERE user_id=@userID AND (NOT @unreadOnly OR NOT read)
					ORDER BY created DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"userID": userID, "unreadOnly": unreadOnly})
	if err != nil {
		return nil, fmt.Errorf("error listing notifications for user %d: %w", userID, err)
	}

	notes := make([]model.BetNotification, 0, 8)
	for rows.Next() {
		var n model.BetNotification
		var created, readAt pgtype.Timestamptz
		err := rows.Scan(&n.ID, &n.UserID, &n.BetID, &n.Message, &n.Read, &created, &readAt)
		if err != nil {
			return nil, err
		}
		n.Created = created.Time
		n.ReadAt = readAt.Time
		notes = append(notes, n)
	}
	return notes, nil
}

func (db *postgresDB) MarkNotificationRead(ctx context.Context, id int32) error {
	const query = `UPDATE bet_notifications SET read=TRUE, read_at=@now WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id, "now": db.now()})
	if err != nil {
		return fmt.Errorf("error marking notification %d read: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBetNotFound
	}
	return nil
}

func scanBet(row pgx.Row) (*model.Bet, error) {
	var b model.Bet
	var kind, status string
	var multiplier, confidence sql.NullFloat64
	var rationale string
	var placed, resolved pgtype.Timestamptz
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.MatchID,
		&b.TeamID,
		&kind,
		&b.TargetValue,
		&b.Description,
		&b.Amount,
		&status,
		&b.Payout,
		&multiplier,
		&confidence,
		&rationale,
		&placed,
		&resolved)
	if err != nil {
		return nil, err
	}
	b.Kind = model.BetKind(kind)
	b.Status = model.BetStatus(status)
	b.Placed = placed.Time
	b.Resolved = resolved.Time
	if multiplier.Valid {
		b.Estimate = &model.MultiplierEstimate{
			Multiplier: multiplier.Float64,
			Confidence: confidence.Float64,
			Rationale:  rationale,
		}
	}
	return &b, nil
}

func namedArgsForBet(b *model.Bet) pgx.NamedArgs {
	return pgx.NamedArgs{
		"userID":      b.UserID,
		"matchID":     b.MatchID,
		"teamID":      b.TeamID,
		"kind":        string(b.Kind),
		"targetValue": b.TargetValue,
		"description": b.Description,
		"amount":      b.Amount,
		"status":      string(b.Status),
		"multiplier":  estimateFloat(b, func(e *model.MultiplierEstimate) float64 { return e.Multiplier }),
		"confidence":  estimateFloat(b, func(e *model.MultiplierEstimate) float64 { return e.Confidence }),
		"rationale":   estimateRationale(b),
	}
}

func estimateFloat(b *model.Bet, f func(*model.MultiplierEstimate) float64) sql.NullFloat64 {
	if b.Estimate == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f(b.Estimate), Valid: true}
}

func estimateRationale(b *model.Bet) string {
	if b.Estimate == nil {
		return ""
	}
	return b.Estimate.Rationale
}
