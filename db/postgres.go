package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manugarri/bb-league/model"
)

var (
	ErrUserNotFound       error = errors.New("user not found")
	ErrRaceNotFound       error = errors.New("race not found")
	ErrTeamNotFound       error = errors.New("team not found")
	ErrPlayerNotFound     error = errors.New("player not found")
	ErrSkillNotFound      error = errors.New("skill not found")
	ErrStarPlayerNotFound error = errors.New("star player not found")
	ErrLeagueNotFound     error = errors.New("league not found")
	ErrSeasonNotFound     error = errors.New("season not found")
	ErrMatchNotFound      error = errors.New("match not found")
	ErrInducementNotFound error = errors.New("inducement not found")
	ErrBetNotFound        error = errors.New("bet not found")
	ErrDuplicateBet       error = errors.New("user already has a bet on this match")
	ErrAlreadySubmitted   error = errors.New("inducements already submitted")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// queryExecer is satisfied by both *pgxpool.Pool and pgx.Tx, letting
// helpers run inside or outside a transaction.
type queryExecer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type rowQueryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func checkChange(changes []model.Change, clock clock.Clock, prop, old, new string) []model.Change {
	if old != new {
		c := model.Change{
			Time:         clock.Now().UTC(),
			PropertyName: prop,
			OldValue:     old,
			NewValue:     new,
		}
		changes = append(changes, c)
	}
	return changes
}

func checkChangeInt(changes []model.Change, clock clock.Clock, prop string, old, new int) []model.Change {
	return checkChange(changes, clock, prop, fmt.Sprintf("%d", old), fmt.Sprintf("%d", new))
}

func (db *postgresDB) now() pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

// isUniqueViolation reports whether err is a postgres unique constraint
// failure (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}
